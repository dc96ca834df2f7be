package scanner

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// ScanResult summarizes one Session.Scan call.
type ScanResult struct {
	// Added holds shifts new to the session, in page order.
	Added []shift.Shift
	// Skipped counts shift labels that were already in the session.
	Skipped int
	// DaysScanned counts the day containers found.
	DaysScanned int
}

// Session accumulates shifts across scans of a page that changes over time, such
// as a user paging between weeks. Shifts are keyed by their raw label text: a label
// already in the session is not added again, while two different labels that parse
// to the same shift are both kept.
//
// A Session lives for one page session and is discarded (or Reset) on navigation.
// It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	scanner *Scanner
	seen    map[string]struct{}
	shifts  []shift.Shift
}

// NewSession creates an empty session that scans with sc. A nil sc uses New().
func NewSession(sc *Scanner) *Session {
	if sc == nil {
		sc = New()
	}
	return &Session{
		scanner: sc,
		seen:    make(map[string]struct{}),
	}
}

// Scan runs one pass over doc and adds shifts not seen before. On a parse error
// the session is left exactly as it was.
func (s *Session) Scan(doc *goquery.Document) (ScanResult, error) {
	started := time.Now()
	logger.IncrCounter("scan.passes")

	pass, err := s.scanner.Scan(doc)
	if err != nil {
		logger.IncrCounter("scan.errors")
		logger.Error("schedule scan failed", nil, err)
		return ScanResult{}, err
	}

	s.mu.Lock()
	result := ScanResult{DaysScanned: pass.DaysScanned}
	for _, sh := range pass.Shifts {
		if _, ok := s.seen[sh.Label]; ok {
			result.Skipped++
			continue
		}
		s.seen[sh.Label] = struct{}{}
		s.shifts = append(s.shifts, sh)
		result.Added = append(result.Added, sh)
	}
	total := len(s.shifts)
	s.mu.Unlock()

	elapsed := time.Since(started)
	logger.AddCounter("scan.shifts_added", int64(len(result.Added)))
	logger.RecordTiming("scan.duration", elapsed)
	logger.Debug("schedule scanned", logger.Fields{
		"days":    result.DaysScanned,
		"added":   len(result.Added),
		"skipped": result.Skipped,
		"total":   total,
		"elapsed": elapsed.String(),
	})

	return result, nil
}

// ScanHTML parses r as HTML and scans it.
func (s *Session) ScanHTML(r io.Reader) (ScanResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ScanResult{}, fmt.Errorf("parsing HTML: %w", err)
	}
	return s.Scan(doc)
}

// Shifts returns a copy of the session's shifts in insertion order.
func (s *Session) Shifts() []shift.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]shift.Shift, len(s.shifts))
	copy(out, s.shifts)
	return out
}

// Len returns the number of shifts in the session.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shifts)
}

// Reset forgets every shift.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = make(map[string]struct{})
	s.shifts = nil
}
