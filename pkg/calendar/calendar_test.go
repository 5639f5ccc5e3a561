package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayIndex_MondayIsZero(t *testing.T) {
	// 2026-10-12 is a Monday
	monday := time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		assert.Equal(t, i, WeekdayIndex(monday.AddDate(0, 0, i)))
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	base := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	assert.True(t, Overlaps(at(0), at(30), at(15), at(45)))
	assert.True(t, Overlaps(at(15), at(45), at(0), at(30)))
	assert.True(t, Overlaps(at(0), at(60), at(10), at(20)))
	assert.False(t, Overlaps(at(0), at(30), at(30), at(60)), "touching endpoints must not overlap")
	assert.False(t, Overlaps(at(30), at(60), at(0), at(30)))
	assert.False(t, Overlaps(at(0), at(15), at(45), at(60)))
}

func TestDayBounds_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// 2026-03-29 has 23 hours in Berlin
	start, end := DayBounds(time.Date(2026, 3, 29, 12, 0, 0, 0, loc), loc)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 30, end.Day())
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestDayBounds_ConvertsIntoLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC is already the next day at UTC+3
	start, end := DayBounds(time.Date(2026, 10, 12, 22, 30, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), end)
}

func TestParseAndFormatHHMM(t *testing.T) {
	m, err := ParseHHMM("09:15")
	require.NoError(t, err)
	assert.Equal(t, 555, m)
	assert.Equal(t, "09:15", FormatHHMM(m))

	_, err = ParseHHMM("9h15")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)

	_, err = ParseHHMM("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestAtMinute(t *testing.T) {
	date := time.Date(2026, 10, 12, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC), AtMinute(date, 540, time.UTC))
}

func TestAddMonthsClamped(t *testing.T) {
	anchor := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC), AddMonthsClamped(anchor, 1))
	assert.Equal(t, time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), AddMonthsClamped(anchor, 2))
	assert.Equal(t, time.Date(2026, 4, 30, 10, 0, 0, 0, time.UTC), AddMonthsClamped(anchor, 3))
	assert.Equal(t, time.Date(2027, 1, 31, 10, 0, 0, 0, time.UTC), AddMonthsClamped(anchor, 12))

	leap := time.Date(2028, 1, 30, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2028, 2, 29, 8, 0, 0, 0, time.UTC), AddMonthsClamped(leap, 1))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	b := time.Date(2026, 10, 12, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b, time.UTC))
	assert.False(t, SameDate(b, c, time.UTC))
}
