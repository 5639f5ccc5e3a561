package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("%w: staff 7 is busy", ErrOverlap)

	assert.Equal(t, ErrOverlap, KindOf(wrapped))
	assert.True(t, IsDomainError(wrapped))
	assert.Nil(t, KindOf(fmt.Errorf("db down")))
	assert.Nil(t, KindOf(nil))
}

func TestActor_CanActFor(t *testing.T) {
	customer := Actor{Role: RoleCustomer, Email: "Ann@Example.com "}
	admin := Actor{Role: RoleAdmin, Email: "boss@example.com"}

	assert.True(t, customer.CanActFor("ann@example.com"))
	assert.False(t, customer.CanActFor("bob@example.com"))
	assert.True(t, admin.CanActFor("bob@example.com"))
}

func TestSeriesStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, SeriesActive.CanTransitionTo(SeriesPaused))
	assert.True(t, SeriesPaused.CanTransitionTo(SeriesActive))
	assert.True(t, SeriesPaused.CanTransitionTo(SeriesCancelled))
	assert.False(t, SeriesActive.CanTransitionTo(SeriesCompleted))
	assert.False(t, SeriesActive.CanTransitionTo(SeriesActive))
	assert.False(t, SeriesCancelled.CanTransitionTo(SeriesActive))
	assert.False(t, SeriesCompleted.CanTransitionTo(SeriesPaused))
}

func TestSchedule_Overlaps(t *testing.T) {
	morning := &Schedule{Weekday: 0, StartMin: 540, EndMin: 720}

	assert.True(t, morning.Overlaps(&Schedule{Weekday: 0, StartMin: 700, EndMin: 800}))
	assert.False(t, morning.Overlaps(&Schedule{Weekday: 0, StartMin: 720, EndMin: 800}))
	assert.False(t, morning.Overlaps(&Schedule{Weekday: 1, StartMin: 600, EndMin: 700}))
}

func TestTimeOff_Covers(t *testing.T) {
	off := &TimeOff{
		DateFrom: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, off.Covers(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, off.Covers(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)))
	assert.False(t, off.Covers(time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)))
}
