package pnl

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-01-05", NewDate(2024, time.January, 5)},
		{"2024-1-5", NewDate(2024, time.January, 5)}, // permissive form
		{"2023-12-31", NewDate(2023, time.December, 31)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate(not-a-date) expected an error")
	}
}

func TestDate_OnOrAfter(t *testing.T) {
	cutoff := NewDate(2024, time.January, 10)

	if NewDate(2024, time.January, 9).OnOrAfter(cutoff) {
		t.Error("day before cutoff reported on-or-after")
	}
	if !cutoff.OnOrAfter(cutoff) {
		t.Error("cutoff day itself must be on-or-after (inclusive compare)")
	}
	if !NewDate(2024, time.January, 11).OnOrAfter(cutoff) {
		t.Error("day after cutoff reported before")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.February, 29)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2024-02-29"` {
		t.Errorf("MarshalJSON() = %s, want \"2024-02-29\"", data)
	}

	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}
