package minwage

import (
	"fmt"
	"strings"
	"time"
)

// jstZone is the Asia/Tokyo timezone (UTC+9). Effective-start dates and
// reference times are compared in this zone unless a Source is configured
// with another location.
var jstZone = time.FixedZone("Asia/Tokyo", 9*60*60)

// JST returns the default reference location used by New.
func JST() *time.Location { return jstZone }

// localLayouts are timestamp forms without an offset; they are read as
// wall-clock time in the reference location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	time.DateTime,
	"2006/1/2",
}

// parseEffectiveDate parses an effective-start date in loc.
// A bare calendar date ("2024-10-01") means midnight in loc; a full
// RFC 3339 timestamp keeps its instant and is converted to loc; a
// timestamp without an offset is wall-clock time in loc.
func parseEffectiveDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid effective start date %q", s)
}

// effectiveAt reports whether a record starting at start is in force at t.
// The boundary is inclusive: a record is effective on its start instant.
func effectiveAt(t, start time.Time, loc *time.Location) bool {
	return !t.In(loc).Before(start.In(loc))
}
