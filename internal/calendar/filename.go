package calendar

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// NameMode selects how export file names are built.
type NameMode string

const (
	// NameWeekOf names the file after the first shift's date.
	NameWeekOf NameMode = "week-of"
	// NameAsOf names the file after the last shift's date, for accumulated sessions.
	NameAsOf NameMode = "as-of"
)

// DefaultFilenamePrefix starts every generated file name.
const DefaultFilenamePrefix = "Target Shifts"

// ParseNameMode validates a mode name. Empty means NameWeekOf.
func ParseNameMode(s string) (NameMode, error) {
	switch NameMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", NameWeekOf:
		return NameWeekOf, nil
	case NameAsOf:
		return NameAsOf, nil
	default:
		return "", fmt.Errorf("invalid filename mode: %s (must be 'week-of' or 'as-of')", s)
	}
}

// Filename builds an export file name without extension, e.g.
// "Target Shifts week of Monday October 9". With no shifts it is just the
// prefix. Export rejects an empty set, so no file is ever written under that name.
func Filename(mode NameMode, prefix string, shifts []shift.Shift) string {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	if len(shifts) == 0 {
		return SanitizeFilename(prefix)
	}

	var name string
	switch mode {
	case NameAsOf:
		name = fmt.Sprintf("%s as of %s", prefix, shifts[len(shifts)-1].DisplayDate)
	default:
		name = fmt.Sprintf("%s week of %s", prefix, shifts[0].DisplayDate)
	}
	return SanitizeFilename(name)
}

// SanitizeFilename replaces characters that are not allowed in file names on
// common platforms with "-".
func SanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < 0x20 {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
}
