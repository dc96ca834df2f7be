package shift

import "time"

// Shift is one scheduled work period recovered from a schedule page.
//
// Shifts are values: they are built once by Assemble and never modified. Label is
// the raw shift label the shift was parsed from and is the deduplication key used
// by the scanner; it does not take part in identity derivation.
type Shift struct {
	Job         string    `json:"job"`
	Location    string    `json:"location"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DisplayDate string    `json:"displayDate"`
	DisplayTime string    `json:"displayTime"`
	Label       string    `json:"label"`
}

// Duration returns End minus Start. It may be negative: the page is trusted and
// end-before-start shifts are not rejected.
func (s Shift) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
