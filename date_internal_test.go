package minwage

import (
	"testing"
	"time"
)

func TestParseEffectiveDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only is JST midnight", "2024-10-01", time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)},
		{"surrounding space", " 2024-10-01\n", time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)},
		{"slash form", "2024/10/1", time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)},
		{"RFC 3339 JST", "2024-10-01T00:00:00+09:00", time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)},
		{"no offset is local wall clock", "2024-10-01T00:00:00", time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)},
		{"space separated no offset", "2024-10-01 09:30:00", time.Date(2024, time.October, 1, 9, 30, 0, 0, jstZone)},
		{
			// 2024-09-30T15:00:00Z = 2024-10-01 00:00 JST
			"RFC 3339 UTC keeps its instant",
			"2024-09-30T15:00:00Z",
			time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseEffectiveDate(tt.input, jstZone)
			if err != nil {
				t.Fatalf("parseEffectiveDate(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseEffectiveDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != jstZone {
				t.Errorf("location = %v, want %v", got.Location(), jstZone)
			}
		})
	}
}

func TestParseEffectiveDate_Invalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "2024-13-01", "2024-02-30", "令和6年10月1日", "tomorrow"} {
		if _, err := parseEffectiveDate(input, jstZone); err == nil {
			t.Errorf("parseEffectiveDate(%q) should fail", input)
		}
	}
}

func TestParseEffectiveDate_OtherLocation(t *testing.T) {
	t.Parallel()

	got, err := parseEffectiveDate("2024-10-01", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := d(2024, time.October, 1); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEffectiveAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.October, 1, 0, 0, 0, 0, jstZone)
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"equal instant", start, true},
		{"equal instant in UTC", start.UTC(), true},
		{"one nanosecond before", start.Add(-time.Nanosecond), false},
		{"one day after", start.AddDate(0, 0, 1), true},
		{"one day before", start.AddDate(0, 0, -1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := effectiveAt(tt.at, start, jstZone); got != tt.want {
				t.Errorf("effectiveAt(%s) = %v, want %v", tt.at.Format(time.RFC3339Nano), got, tt.want)
			}
		})
	}
}

func TestJST(t *testing.T) {
	t.Parallel()

	_, offset := time.Date(2024, time.January, 1, 0, 0, 0, 0, JST()).Zone()
	if offset != 9*60*60 {
		t.Errorf("JST offset = %d, want %d", offset, 9*60*60)
	}
}
