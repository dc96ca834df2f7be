package scanner

import (
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

const (
	DefaultDayCount      = 7
	DefaultLabelAttr     = "aria-label"
	DefaultShiftSelector = `[aria-label*="shift from"]`
)

// Layout describes where the schedule lives in the page.
type Layout struct {
	// DayCount is how many day containers, with ids 0..DayCount-1, to visit.
	DayCount int
	// LabelAttr is the attribute holding accessibility labels.
	LabelAttr string
	// ShiftSelector selects shift elements inside a day container.
	ShiftSelector string
}

// DefaultLayout returns the layout of the myTime weekly view.
func DefaultLayout() Layout {
	return Layout{
		DayCount:      DefaultDayCount,
		LabelAttr:     DefaultLabelAttr,
		ShiftSelector: DefaultShiftSelector,
	}
}

// Scanner extracts shifts from a schedule document. It holds no state between
// calls; see Session for deduplication across scans.
type Scanner struct {
	layout       Layout
	assembleOpts []shift.AssembleOption
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLayout overrides the page layout. Zero fields keep their defaults.
func WithLayout(l Layout) Option {
	return func(s *Scanner) {
		if l.DayCount > 0 {
			s.layout.DayCount = l.DayCount
		}
		if l.LabelAttr != "" {
			s.layout.LabelAttr = l.LabelAttr
		}
		if l.ShiftSelector != "" {
			s.layout.ShiftSelector = l.ShiftSelector
		}
	}
}

// WithAssembleOptions passes options such as shift.WithLocation to every Assemble call.
func WithAssembleOptions(opts ...shift.AssembleOption) Option {
	return func(s *Scanner) {
		s.assembleOpts = append(s.assembleOpts, opts...)
	}
}

// New creates a Scanner for the default layout.
func New(opts ...Option) *Scanner {
	s := &Scanner{layout: DefaultLayout()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the effective layout.
func (s *Scanner) Layout() Layout {
	return s.layout
}

// Pass is the outcome of one walk over the day containers.
type Pass struct {
	// Shifts in page order: day 0 first, then document order within a day.
	Shifts []shift.Shift
	// DaysScanned counts the day containers found before the walk stopped.
	DaysScanned int
}

// Scan visits day containers 0, 1, ... in order. Containers are assumed to be
// contiguous: the walk stops at the first missing id, so a gap at day k hides
// days k and later even if they exist.
//
// Any label that fails to parse aborts the pass and no shifts are returned.
func (s *Scanner) Scan(doc *goquery.Document) (Pass, error) {
	var pass Pass

	for i := 0; i < s.layout.DayCount; i++ {
		day := dayContainer(doc, i)
		if day == nil {
			break
		}
		pass.DaysScanned++

		// A missing label reads as empty text and fails date parsing.
		dayLabel, _ := day.Attr(s.layout.LabelAttr)

		var scanErr error
		day.Find(s.layout.ShiftSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			shiftLabel, _ := el.Attr(s.layout.LabelAttr)
			sh, err := shift.Assemble(dayLabel, shiftLabel, s.assembleOpts...)
			if err != nil {
				scanErr = fmt.Errorf("day %d: %w", i, err)
				return false
			}
			pass.Shifts = append(pass.Shifts, sh)
			return true
		})
		if scanErr != nil {
			return Pass{}, scanErr
		}
	}

	return pass, nil
}

// HasSchedule reports whether doc contains the first day container, i.e. whether
// it shows the weekly view at all.
func HasSchedule(doc *goquery.Document) bool {
	return dayContainer(doc, 0) != nil
}

func dayContainer(doc *goquery.Document, index int) *goquery.Selection {
	// Numeric ids are not valid CSS id selectors, so match the attribute instead.
	sel := doc.Find(`[id="` + strconv.Itoa(index) + `"]`).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}
