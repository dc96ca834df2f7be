package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	ScannedAt   time.Time     `json:"scanned_at"`
	Source      string        `json:"source"`
	DaysScanned int           `json:"days_scanned"`
	Identity    int32         `json:"identity"`
	ShiftCount  int           `json:"shift_count"`
	Shifts      []shift.Shift `json:"shifts"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.ShiftCount == 0 {
		fmt.Fprintf(w, "No shifts found (%d days scanned).\n", result.DaysScanned)
		return nil
	}

	for _, s := range result.Shifts {
		fmt.Fprintf(w, " • %s at %s: %s (location %s)\n", s.DisplayDate, s.DisplayTime, s.Job, s.Location)
		if verbose {
			fmt.Fprintf(w, "     Start: %s\n", s.Start.Format(time.RFC3339))
			fmt.Fprintf(w, "     End:   %s\n", s.End.Format(time.RFC3339))
			fmt.Fprintf(w, "     Label: %s\n", s.Label)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d shifts across %d days\n", result.ShiftCount, result.DaysScanned)
	fmt.Fprintf(w, "Identity: %d\n", result.Identity)
	return nil
}
