// Package calendar contains weekday and minute-of-day arithmetic used by the scheduling engine.
// All functions are pure; callers pass the single working location explicitly.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinutesPerDay = 24 * 60

	// DateFormat YYYY-MM-DD
	DateFormat = "2006-01-02"
	// TimeFormat HH:MM
	TimeFormat = "15:04"
)

// ErrInvalidTimeOfDay is returned when an HH:MM string cannot be parsed
var ErrInvalidTimeOfDay = errors.New("calendar: invalid time of day")

// DayBounds returns the start of the calendar day containing date and the start of the next day,
// both in loc. Using time.Date for the next midnight keeps the bounds correct on DST transitions.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
	return start, end
}

// DateOnly truncates t to midnight in loc
func DateOnly(t time.Time, loc *time.Location) time.Time {
	start, _ := DayBounds(t, loc)
	return start
}

// WeekdayIndex returns 0 for Monday through 6 for Sunday.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and [bStart, bEnd) share an instant.
// Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsMinutes is Overlaps for minute-of-day integers
func OverlapsMinutes(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// AtMinute returns the instant minute minutes after midnight of date's day in loc
func AtMinute(date time.Time, minute int, loc *time.Location) time.Time {
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, minute, 0, 0, loc)
}

// MinuteOfDay returns minutes since midnight of t in its own location
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SameDate reports whether a and b fall on the same calendar date in loc
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// ParseHHMM parses "HH:MM" into minutes since midnight
func ParseHHMM(s string) (int, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHHMM formats minutes since midnight as "HH:MM"
func FormatHHMM(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ParseDate parses YYYY-MM-DD as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, loc)
}

// AddMonthsClamped returns anchor moved by n months keeping the anchor's day-of-month
// when the target month has it, otherwise the last day of the target month.
// Jan 31 + 1 month = Feb 28 (or 29), Jan 31 + 2 months = Mar 31.
func AddMonthsClamped(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()
	firstOfTarget := time.Date(y, m+time.Month(n), 1, anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
	lastDay := daysIn(firstOfTarget.Year(), firstOfTarget.Month())
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d,
		anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(), anchor.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
