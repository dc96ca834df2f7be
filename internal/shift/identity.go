package shift

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf16"
)

// isoMillis is the UTC timestamp form used in identity serialization.
const isoMillis = "2006-01-02T15:04:05.000Z"

// identityRecord fixes the field order and names of the canonical serialization.
type identityRecord struct {
	Job         string  `json:"job"`
	Location    string  `json:"location"`
	StartDate   isoTime `json:"startDate"`
	EndDate     isoTime `json:"endDate"`
	DisplayDate string  `json:"displayDate"`
	DisplayTime string  `json:"displayTime"`
}

type isoTime time.Time

func (t isoTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(isoMillis) + `"`), nil
}

// Canonical returns the serialization of s that DeriveIdentity hashes: compact
// JSON with keys job, location, startDate, endDate, displayDate, displayTime in
// that order, instants in UTC with millisecond precision, and no HTML escaping.
func Canonical(s Shift) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	rec := identityRecord{
		Job:         s.Job,
		Location:    s.Location,
		StartDate:   isoTime(s.Start),
		EndDate:     isoTime(s.End),
		DisplayDate: s.DisplayDate,
		DisplayTime: s.DisplayTime,
	}
	// Strings and the fixed-format timestamps always encode.
	_ = enc.Encode(rec)

	return rawSeparators(strings.TrimSuffix(buf.String(), "\n"))
}

// rawSeparators turns the \u2028 and \u2029 escapes encoding/json always emits
// back into raw characters. Line and paragraph separators are legal raw in JSON
// text and earlier exports hashed them unescaped.
func rawSeparators(js string) string {
	if !strings.Contains(js, `\u202`) {
		return js
	}
	var b strings.Builder
	b.Grow(len(js))
	for i := 0; i < len(js); i++ {
		if js[i] != '\\' {
			b.WriteByte(js[i])
			continue
		}
		switch esc := js[i:min(i+6, len(js))]; esc {
		case `\u2028`:
			b.WriteString("\u2028")
			i += 5
		case `\u2029`:
			b.WriteString("\u2029")
			i += 5
		default:
			// Copy the escaped byte too so an escaped backslash is never
			// read as the start of another escape.
			b.WriteByte(js[i])
			if i+1 < len(js) {
				i++
				b.WriteByte(js[i])
			}
		}
	}
	return b.String()
}

// DeriveIdentity fingerprints an ordered set of shifts. The canonical forms are
// joined with "," and hashed with HashCode. Equal sets in equal order give equal
// identities; any field change is very likely to give a different one. It is not
// a cryptographic hash and collisions are acceptable.
func DeriveIdentity(shifts []Shift) int32 {
	parts := make([]string, len(shifts))
	for i, s := range shifts {
		parts[i] = Canonical(s)
	}
	return HashCode(strings.Join(parts, ","))
}

// HashCode is the 31-multiplier polynomial string hash over UTF-16 code units,
// wrapped to a signed 32-bit integer at every step:
//
//	h = 0; for each unit c: h = int32(h*31 + c)
func HashCode(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}
	return h
}
