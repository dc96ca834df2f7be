package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/mytime-ics/internal/shift"
)

func testShifts() []shift.Shift {
	return []shift.Shift{
		{
			Job:         "Tech",
			Location:    "1234",
			Start:       time.Date(2023, 10, 13, 12, 0, 0, 0, time.UTC),
			End:         time.Date(2023, 10, 13, 20, 30, 0, 0, time.UTC),
			DisplayDate: "Friday October 13",
			DisplayTime: "12:00PM–08:30PM",
			Label:       "Tech shift from 12:00PM to 08:30PM at location 1234 on Friday October 13. Click to view daily view",
		},
		{
			Job:         "cashier",
			Location:    "1234",
			Start:       time.Date(2023, 10, 11, 8, 0, 0, 0, time.UTC),
			End:         time.Date(2023, 10, 11, 12, 30, 0, 0, time.UTC),
			DisplayDate: "Wednesday October 11",
			DisplayTime: "08:00AM–12:30PM",
			Label:       "cashier shift from 08:00AM to 12:30PM at location 1234 on Wednesday October 11. Click to view daily view",
		},
	}
}

func TestWriteOutput(t *testing.T) {
	result := &OutputResult{
		ScannedAt:   time.Date(2023, 10, 8, 12, 0, 0, 0, time.UTC),
		Source:      "week.html",
		DaysScanned: 7,
		Identity:    42,
		ShiftCount:  2,
		Shifts:      testShifts(),
	}

	tests := []struct {
		name     string
		format   OutputFormat
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:   "text",
			format: FormatText,
			contains: []string{
				" • Friday October 13 at 12:00PM–08:30PM: Tech (location 1234)",
				"Total: 2 shifts across 7 days",
				"Identity: 42",
			},
			excludes: []string{"Label:"},
		},
		{
			name:    "text verbose",
			format:  FormatText,
			verbose: true,
			contains: []string{
				"Start: 2023-10-13T12:00:00Z",
				"End:   2023-10-13T20:30:00Z",
				"Label: Tech shift from 12:00PM",
			},
		},
		{
			name:   "json",
			format: FormatJSON,
			contains: []string{
				`"shift_count": 2`,
				`"identity": 42`,
				`"displayTime": "12:00PM–08:30PM"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteOutput(&buf, result, tt.format, tt.verbose); err != nil {
				t.Fatalf("WriteOutput() error = %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWriteOutput_JSONDecodes(t *testing.T) {
	var buf bytes.Buffer
	result := &OutputResult{ShiftCount: 2, Shifts: testShifts()}
	if err := WriteOutput(&buf, result, FormatJSON, false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}

	var decoded OutputResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Shifts[0].Start.Equal(result.Shifts[0].Start) {
		t.Errorf("start = %v, want %v", decoded.Shifts[0].Start, result.Shifts[0].Start)
	}
}

func TestWriteOutput_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, &OutputResult{DaysScanned: 7}, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No shifts found (7 days scanned).") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, &OutputResult{}, OutputFormat("yaml"), false); err == nil {
		t.Error("expected error for unknown format")
	}
}
