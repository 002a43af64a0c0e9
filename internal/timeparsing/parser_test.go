package timeparsing

import (
	"testing"
	"time"
)

func TestParseCompactDuration(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.Local)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"+6h", now.Add(6 * time.Hour)},
		{"-1d", now.AddDate(0, 0, -1)},
		{"+2w", now.AddDate(0, 0, 14)},
		{"3m", now.AddDate(0, 3, 0)},
		{"1y", now.AddDate(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, now)
			if err != nil {
				t.Fatalf("ParseCompactDuration(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseCompactDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCompactDurationRejects(t *testing.T) {
	now := time.Now()
	for _, input := range []string{"", "6", "h", "+6x", "tomorrow", "6h30m"} {
		if _, err := ParseCompactDuration(input, now); err == nil {
			t.Errorf("ParseCompactDuration(%q) expected error", input)
		}
	}
}

func TestIsCompactDuration(t *testing.T) {
	if !IsCompactDuration("+1d") {
		t.Error("IsCompactDuration(+1d) = false, want true")
	}
	if IsCompactDuration("2026-01-01") {
		t.Error("IsCompactDuration(2026-01-01) = true, want false")
	}
}

func TestParseRelativeTimeLayers(t *testing.T) {
	// Fixed reference: Wednesday, January 14, 2026.
	now := time.Date(2026, 1, 14, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		input     string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{"compact +1d", "+1d", 2026, time.January, 15, false},
		{"NLP tomorrow", "tomorrow", 2026, time.January, 15, false},
		{"NLP next monday", "next monday", 2026, time.January, 19, false},
		{"date-only", "2026-02-01", 2026, time.February, 1, false},
		{"RFC3339", "2026-03-15T14:30:00Z", 2026, time.March, 15, false},
		{"invalid", "not-a-date", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelativeTime(tt.input, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRelativeTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseRelativeTime(%q) = %v, want %d-%02d-%02d", tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 1, 14, 10, 0, 0, 0, time.Local)
	got, err := ParseDate("+1d", now)
	if err != nil {
		t.Fatalf("ParseDate(+1d) error: %v", err)
	}
	if got != "2026-01-15" {
		t.Errorf("ParseDate(+1d) = %q, want 2026-01-15", got)
	}
}
