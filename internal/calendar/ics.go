package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/pfrederiksen/mytime-ics/internal/download"
	"github.com/pfrederiksen/mytime-ics/internal/logger"
	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

const (
	DefaultLocationPrefix = "Target #"
	DefaultProductID      = "mytime-ics"
	fileExtension         = ".ics"
)

// Options configures an Exporter.
type Options struct {
	// Downloader receives the serialized calendar. Required by Export.
	Downloader download.Downloader
	// StableUID derives event UIDs from the shift list so re-exports match.
	// When false every Build gets a fresh random UID domain.
	StableUID bool
	// LocationPrefix is prepended to the store number. Default "Target #".
	LocationPrefix string
	// ProductID is the service name in PRODID. Default "mytime-ics".
	ProductID string
	// CalendarName sets X-WR-CALNAME when non-empty.
	CalendarName string
	// Now supplies DTSTAMP. Default time.Now.
	Now func() time.Time
}

// Exporter writes shifts as iCalendar files.
type Exporter struct {
	opts Options
}

// NewExporter creates an Exporter, filling unset options with defaults.
func NewExporter(opts Options) *Exporter {
	if opts.LocationPrefix == "" {
		opts.LocationPrefix = DefaultLocationPrefix
	}
	if opts.ProductID == "" {
		opts.ProductID = DefaultProductID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Exporter{opts: opts}
}

// Build creates a calendar with one event per shift, in the given order.
//
// Events are titled "<job> shift", have an empty description and are located at
// LocationPrefix plus the store number. Start and end are written in UTC.
func (e *Exporter) Build(shifts []shift.Shift) (*ics.Calendar, error) {
	if len(shifts) == 0 {
		return nil, &ExportError{Kind: EmptyShiftSet}
	}

	domain := e.uidDomain(shifts)
	stamp := e.opts.Now()

	cal := ics.NewCalendarFor(e.opts.ProductID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetCalscale("GREGORIAN")
	if e.opts.CalendarName != "" {
		cal.SetXWRCalName(e.opts.CalendarName)
	}

	for i, s := range shifts {
		event := cal.AddEvent(fmt.Sprintf("%d@%s", i, domain))
		event.SetDtStampTime(stamp)
		event.SetStartAt(s.Start)
		event.SetEndAt(s.End)
		event.SetSummary(s.Job + " shift")
		event.SetDescription("")
		event.SetLocation(e.opts.LocationPrefix + s.Location)
	}

	return cal, nil
}

func (e *Exporter) uidDomain(shifts []shift.Shift) string {
	if e.opts.StableUID {
		return strconv.FormatInt(int64(shift.DeriveIdentity(shifts)), 10)
	}
	return uuid.NewString()
}

// Render builds and serializes the calendar.
func (e *Exporter) Render(shifts []shift.Shift) ([]byte, error) {
	cal, err := e.Build(shifts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf, ics.WithNewLineWindows); err != nil {
		return nil, fmt.Errorf("serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders shifts and downloads them as "<filename>.ics". An empty shift
// list returns an EmptyShiftSet error and nothing is downloaded.
func (e *Exporter) Export(filename string, shifts []shift.Shift) error {
	data, err := e.Render(shifts)
	if err != nil {
		logger.IncrCounter("export.errors")
		return err
	}

	if e.opts.Downloader == nil {
		return errors.New("no downloader configured")
	}

	name := SanitizeFilename(filename) + fileExtension
	if err := e.opts.Downloader.Download(name, data); err != nil {
		logger.IncrCounter("export.errors")
		return fmt.Errorf("downloading %s: %w", name, err)
	}

	logger.IncrCounter("export.files")
	logger.AddCounter("export.events", int64(len(shifts)))
	logger.Debug("calendar exported", logger.Fields{
		"file":   name,
		"events": len(shifts),
	})
	return nil
}
