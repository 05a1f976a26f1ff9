// Package slotclock maps between slot indices and wall-clock times.
//
// A day is discretized into 48 half-hour slots numbered 0-47:
//   slot 0  = 12:00am - 12:30am
//   slot 24 = 12:00pm - 12:30pm
//   slot 47 = 11:30pm - 12:00am
//
// The package also owns day normalization: every day value used as
// part of a slot or booking identity is a calendar date at UTC
// midnight, regardless of how the caller spelled it.
package slotclock

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SlotsPerDay is the number of 30-minute slots in a calendar day.
const SlotsPerDay = 48

// Valid reports whether idx is a usable slot index.
func Valid(idx int) bool {
	return idx >= 0 && idx < SlotsPerDay
}

// Time returns the hour and minute at which the given slot begins.
// Slot i begins at i/2 hours and (i%2)*30 minutes past midnight.
func Time(idx int) (hour, minute int) {
	return idx / 2, (idx % 2) * 30
}

// FromTime returns the slot index beginning at the given wall-clock
// time.  Minutes in [0,30) map to the on-the-hour slot, [30,60) to
// the half-past slot.
func FromTime(hour, minute int) int {
	idx := hour * 2
	if minute >= 30 {
		idx++
	}
	return idx
}

// Format renders a slot's start time in 12-hour am/pm notation, e.g.
// slot 36 -> "6:00pm".  Hour 0 displays as 12.
func Format(idx int) string {
	hour, minute := Time(idx)
	display := hour % 12
	if display == 0 {
		display = 12
	}
	amPm := "am"
	if hour >= 12 {
		amPm = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, amPm)
}

// NormalizeDay parses a day value and truncates it to UTC midnight.
// Accepted forms are a plain calendar date ("2024-06-01") or an ISO
// timestamp with or without an offset.  Timestamps are converted to
// UTC before truncation, so two literals denoting the same UTC
// calendar day normalize to the identical key.
func NormalizeDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("invalid day %q", s)
}

// DayString renders a normalized day as its calendar date.
func DayString(day time.Time) string {
	return day.UTC().Format("2006-01-02")
}

// FormatRange renders a set of slot indices for display.  A single
// contiguous run renders as "start to end", where end is the start of
// the slot after the last one (wrapping past 11:30pm to 12:00am).
// Anything else renders as a comma-separated list of individual slot
// times.  Display-only; scheduling logic never consumes this.
func FormatRange(indices []int) string {
	if len(indices) == 0 {
		return ""
	}
	sorted := make([]int, len(indices))
	copy(sorted, indices)
	sort.Ints(sorted)

	contiguous := true
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			contiguous = false
			break
		}
	}
	if contiguous {
		end := (sorted[len(sorted)-1] + 1) % SlotsPerDay
		return Format(sorted[0]) + " to " + Format(end)
	}

	parts := make([]string, 0, len(sorted))
	for _, idx := range sorted {
		parts = append(parts, Format(idx))
	}
	return strings.Join(parts, ", ")
}
