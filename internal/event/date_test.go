package event

import (
	"testing"
	"time"
)

func TestParseStart(t *testing.T) {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	tests := []struct {
		name    string
		dateStr string
		timeStr string
		want    time.Time
	}{
		{
			name:    "API datetime with PM time",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "5:30 PM",
			want:    time.Date(2024, 3, 19, 17, 30, 0, 0, loc),
		},
		{
			name:    "lowercase meridiem",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "9:00 am",
			want:    time.Date(2024, 3, 19, 9, 0, 0, 0, loc),
		},
		{
			name:    "no space before meridiem",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "5:30PM",
			want:    time.Date(2024, 3, 19, 17, 30, 0, 0, loc),
		},
		{
			name:    "24-hour time",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "17:30",
			want:    time.Date(2024, 3, 19, 17, 30, 0, 0, loc),
		},
		{
			name:    "empty time falls back to midnight",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "",
			want:    time.Date(2024, 3, 19, 0, 0, 0, 0, loc),
		},
		{
			name:    "junk time falls back to midnight",
			dateStr: "2024-03-19T00:00:00",
			timeStr: "Canceled",
			want:    time.Date(2024, 3, 19, 0, 0, 0, 0, loc),
		},
		{
			name:    "date-only layout",
			dateStr: "2024-03-19",
			timeStr: "5:30 PM",
			want:    time.Date(2024, 3, 19, 17, 30, 0, 0, loc),
		},
		{
			name:    "unparseable date yields zero time",
			dateStr: "next Tuesday",
			timeStr: "5:30 PM",
			want:    time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseStart(tt.dateStr, tt.timeStr, loc)
			if !got.Equal(tt.want) {
				t.Errorf("ParseStart(%q, %q) = %v, expected %v", tt.dateStr, tt.timeStr, got, tt.want)
			}
		})
	}
}

func TestParseStartNilLocation(t *testing.T) {
	got := ParseStart("2024-03-19T00:00:00", "5:30 PM", nil)
	want := time.Date(2024, 3, 19, 17, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected UTC fallback %v, got %v", want, got)
	}
}
