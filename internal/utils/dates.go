package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDottedDate parses a DD.MM.YYYY date as midnight UTC.
func ParseDottedDate(s string) (time.Time, error) {
	return time.Parse("02.01.2006", s)
}

// ParseFlexibleDate accepts either an RFC 3339 timestamp or a plain
// YYYY-MM-DD date, which front-ends send interchangeably.
func ParseFlexibleDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// StartOfDay returns midnight UTC on t's calendar date, read in t's own
// location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the [midnight, next midnight) window around t in t's
// own location.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// UTCDayWindow returns the UTC [midnight, next midnight) window around t.
func UTCDayWindow(t time.Time) (time.Time, time.Time) {
	return DayWindow(t.UTC())
}

// SlotHourAfterBuffer reports whether an HH:MM slot label lies strictly after
// "now plus one hour and one minute". The buffer keeps same-day bookings from
// landing on a slot the desk can no longer honor.
func SlotHourAfterBuffer(hour string, now time.Time) bool {
	hh, mm, err := splitHourMinute(hour)
	if err != nil {
		return false
	}
	return hh > now.Hour()+1 || (hh == now.Hour()+1 && mm > now.Minute()+1)
}

func splitHourMinute(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed hour label %q", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return hh, mm, nil
}
