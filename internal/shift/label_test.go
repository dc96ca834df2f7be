package shift

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleLabel = "Tech shift from 05:00PM to 10:00PM at location 1234 on Monday October 12. Click to view daily view"

func TestParseShiftLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    LabelFields
		wantErr bool
	}{
		{
			name:  "weekly view label",
			label: sampleLabel,
			want: LabelFields{
				Job:         "Tech",
				StartText:   "05:00PM",
				EndText:     "10:00PM",
				Location:    "1234",
				DisplayDate: "Monday October 12",
			},
		},
		{
			name:  "multi word job",
			label: "Guest Advocate shift from 08:00AM to 12:30PM at location 0042 on Tuesday October 10. Click to view daily view",
			want: LabelFields{
				Job:         "Guest Advocate",
				StartText:   "08:00AM",
				EndText:     "12:30PM",
				Location:    "0042",
				DisplayDate: "Tuesday October 10",
			},
		},
		{
			name:  "location is not validated",
			label: "Tech shift from 05:00PM to 10:00PM at location North Side on Monday October 12. Click to view daily view",
			want: LabelFields{
				Job:         "Tech",
				StartText:   "05:00PM",
				EndText:     "10:00PM",
				Location:    "North Side",
				DisplayDate: "Monday October 12",
			},
		},
		{
			name:    "missing trailing phrase",
			label:   "Tech shift from 05:00PM to 10:00PM at location 1234 on Monday October 12.",
			wantErr: true,
		},
		{
			name:    "different trailing phrase",
			label:   "Tech shift from 05:00PM to 10:00PM at location 1234 on Monday October 12. Click to view weekly view",
			wantErr: true,
		},
		{
			name:    "extra text after trailing phrase",
			label:   sampleLabel + ".",
			wantErr: true,
		},
		{
			name:    "missing location segment",
			label:   "Tech shift from 05:00PM to 10:00PM on Monday October 12. Click to view daily view",
			wantErr: true,
		},
		{
			name:    "missing job",
			label:   " shift from 05:00PM to 10:00PM at location 1234 on Monday October 12. Click to view daily view",
			wantErr: true,
		},
		{
			name:    "empty",
			label:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShiftLabel(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedShiftLabel) {
					t.Fatalf("ParseShiftLabel() error = %v, want MalformedShiftLabel", err)
				}
				var perr *ParseError
				if !errors.As(err, &perr) || perr.Input != tt.label {
					t.Errorf("ParseError should carry the offending label, got %+v", perr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseShiftLabel() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseShiftLabel() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabelFieldsDisplayTime(t *testing.T) {
	f := LabelFields{StartText: "05:00PM", EndText: "10:00PM"}
	if got := f.DisplayTime(); got != "05:00PM–10:00PM" {
		t.Errorf("DisplayTime() = %q, want %q", got, "05:00PM–10:00PM")
	}
}

func TestNewRegexpGrammar(t *testing.T) {
	t.Run("custom grammar", func(t *testing.T) {
		g, err := NewRegexpGrammar("test-v2",
			`^(?P<job>.+?): (?P<start>\S+)-(?P<end>\S+) @(?P<location>\d+) \((?P<date>.+)\)$`)
		if err != nil {
			t.Fatalf("NewRegexpGrammar() unexpected error: %v", err)
		}

		got, err := g.Parse("Tech: 05:00PM-10:00PM @1234 (Monday October 12)")
		if err != nil {
			t.Fatalf("Parse() unexpected error: %v", err)
		}
		want := LabelFields{Job: "Tech", StartText: "05:00PM", EndText: "10:00PM", Location: "1234", DisplayDate: "Monday October 12"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing group", func(t *testing.T) {
		_, err := NewRegexpGrammar("broken", `^(?P<job>.+) shift from (?P<start>.+) to (?P<end>.+)$`)
		if err == nil || !strings.Contains(err.Error(), "location") {
			t.Errorf("expected missing group error, got %v", err)
		}
	})

	t.Run("invalid expression", func(t *testing.T) {
		if _, err := NewRegexpGrammar("broken", `(`); err == nil {
			t.Error("expected compile error")
		}
	})

	t.Run("must panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustRegexpGrammar should panic on a bad pattern")
			}
		}()
		MustRegexpGrammar("broken", `(`)
	})
}

func TestParseErrorMessages(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Kind: MalformedDate, Input: "x"}, `could not parse date from "x"`},
		{&ParseError{Kind: MalformedTime, Input: "5PM"}, `could not parse "5PM" as time`},
		{&ParseError{Kind: MalformedShiftLabel, Input: "y"}, `couldn't parse shift info from "y"`},
		{&ParseError{Kind: InvalidDateConstruction, Input: "2023-02-30", Err: errors.New("day 30 out of range")}, `error parsing dates for "2023-02-30": day 30 out of range`},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if errors.Is(&ParseError{Kind: MalformedDate}, ErrMalformedTime) {
		t.Error("kinds must not match each other")
	}
}
