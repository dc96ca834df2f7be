package shift

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateComponents(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    DateComponents
		wantErr bool
	}{
		{
			name:  "day label from weekly view",
			label: "schedule for 2023-12-31 with 1 shifts",
			want:  DateComponents{Year: 2023, MonthIndex: 11, Day: 31},
		},
		{
			name:  "january is month index zero",
			label: "schedule for 2024-01-05 with 0 shifts",
			want:  DateComponents{Year: 2024, MonthIndex: 0, Day: 5},
		},
		{
			name:  "first match wins",
			label: "2023-10-09 then 2023-10-10",
			want:  DateComponents{Year: 2023, MonthIndex: 9, Day: 9},
		},
		{
			name:  "bare date",
			label: "2023-10-09",
			want:  DateComponents{Year: 2023, MonthIndex: 9, Day: 9},
		},
		{
			name:    "missing date",
			label:   "schedule with 1 shifts",
			wantErr: true,
		},
		{
			name:    "slash delimited",
			label:   "schedule for 2023/12/31",
			wantErr: true,
		},
		{
			name:    "single digit month",
			label:   "schedule for 2023-1-31",
			wantErr: true,
		},
		{
			name:    "empty label",
			label:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateComponents(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedDate) {
					t.Fatalf("ParseDateComponents(%q) error = %v, want MalformedDate", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateComponents(%q) unexpected error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateComponents(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
		})
	}
}

func TestParseTimeComponents(t *testing.T) {
	tests := []struct {
		text    string
		want    TimeComponents
		wantErr bool
	}{
		{text: "05:00PM", want: TimeComponents{Hour: 17, Minute: 0}},
		{text: "10:30PM", want: TimeComponents{Hour: 22, Minute: 30}},
		{text: "12:00PM", want: TimeComponents{Hour: 12, Minute: 0}},
		{text: "12:45PM", want: TimeComponents{Hour: 12, Minute: 45}},
		{text: "08:15AM", want: TimeComponents{Hour: 8, Minute: 15}},
		// Midnight hour is not special-cased: 12AM stays 12.
		{text: "12:00AM", want: TimeComponents{Hour: 12, Minute: 0}},
		{text: "12:30AM", want: TimeComponents{Hour: 12, Minute: 30}},
		{text: "5:00PM", wantErr: true},
		{text: "05:00", wantErr: true},
		{text: "05:00pm", wantErr: true},
		{text: "05-00PM", wantErr: true},
		{text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseTimeComponents(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedTime) {
					t.Fatalf("ParseTimeComponents(%q) error = %v, want MalformedTime", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeComponents(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeComponents(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDateComponentsAt(t *testing.T) {
	tests := []struct {
		name    string
		date    DateComponents
		tc      TimeComponents
		want    time.Time
		wantErr bool
	}{
		{
			name: "regular evening",
			date: DateComponents{Year: 2023, MonthIndex: 9, Day: 9},
			tc:   TimeComponents{Hour: 17},
			want: time.Date(2023, time.October, 9, 17, 0, 0, 0, time.UTC),
		},
		{
			name: "leap day",
			date: DateComponents{Year: 2024, MonthIndex: 1, Day: 29},
			tc:   TimeComponents{Hour: 8, Minute: 30},
			want: time.Date(2024, time.February, 29, 8, 30, 0, 0, time.UTC),
		},
		{
			name:    "february 30",
			date:    DateComponents{Year: 2023, MonthIndex: 1, Day: 30},
			tc:      TimeComponents{Hour: 8},
			wantErr: true,
		},
		{
			name:    "month index 12",
			date:    DateComponents{Year: 2023, MonthIndex: 12, Day: 1},
			wantErr: true,
		},
		{
			name:    "day zero",
			date:    DateComponents{Year: 2023, MonthIndex: 0, Day: 0},
			wantErr: true,
		},
		{
			name:    "hour 24",
			date:    DateComponents{Year: 2023, MonthIndex: 0, Day: 1},
			tc:      TimeComponents{Hour: 24},
			wantErr: true,
		},
		{
			name:    "minute 60",
			date:    DateComponents{Year: 2023, MonthIndex: 0, Day: 1},
			tc:      TimeComponents{Hour: 9, Minute: 60},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.date.At(tt.tc, time.UTC)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateConstruction) {
					t.Fatalf("At() error = %v, want InvalidDateConstruction", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("At() unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("At() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateComponentsAt_NilLocationUsesLocal(t *testing.T) {
	d := DateComponents{Year: 2023, MonthIndex: 9, Day: 9}
	got, err := d.At(TimeComponents{Hour: 9}, nil)
	if err != nil {
		t.Fatalf("At() unexpected error: %v", err)
	}
	if got.Location() != time.Local {
		t.Errorf("At(nil) location = %v, want Local", got.Location())
	}
}

func TestComponentsString(t *testing.T) {
	if got := (DateComponents{Year: 2023, MonthIndex: 9, Day: 9}).String(); got != "2023-10-09" {
		t.Errorf("DateComponents.String() = %q, want 2023-10-09", got)
	}
	if got := (TimeComponents{Hour: 7, Minute: 5}).String(); got != "07:05" {
		t.Errorf("TimeComponents.String() = %q, want 07:05", got)
	}
}
