package domain

import "time"

// Frequency of a recurring series
type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// IsValid reports whether f is a known frequency
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// SeriesStatus of a recurring series
type SeriesStatus string

const (
	SeriesActive    SeriesStatus = "active"
	SeriesPaused    SeriesStatus = "paused"
	SeriesCompleted SeriesStatus = "completed"
	SeriesCancelled SeriesStatus = "cancelled"
)

// IsValid reports whether s is a known series status
func (s SeriesStatus) IsValid() bool {
	switch s {
	case SeriesActive, SeriesPaused, SeriesCompleted, SeriesCancelled:
		return true
	}
	return false
}

// IsTerminal returns true for completed and cancelled series
func (s SeriesStatus) IsTerminal() bool {
	return s == SeriesCompleted || s == SeriesCancelled
}

// CanTransitionTo reports whether a series may move from s to next.
// active and paused swap freely, any non-terminal status may be cancelled,
// completed is reached by materialisation only.
func (s SeriesStatus) CanTransitionTo(next SeriesStatus) bool {
	if s.IsTerminal() || s == next {
		return false
	}
	switch next {
	case SeriesActive, SeriesPaused, SeriesCancelled:
		return true
	}
	return false
}

// InstanceStatus of a recurring instance
type InstanceStatus string

const (
	InstanceScheduled InstanceStatus = "scheduled"
	InstanceConfirmed InstanceStatus = "confirmed"
	InstanceSkipped   InstanceStatus = "skipped"
	InstanceCancelled InstanceStatus = "cancelled"
)

// RecurringSeries is the template that owns generated instances
type RecurringSeries struct {
	ID             int64
	TenantID       string
	ServiceID      int64
	StaffID        int64
	CustomerEmail  string
	StartDate      time.Time
	Frequency      Frequency
	TimeSlot       string // HH:MM
	EndDate        *time.Time
	MaxOccurrences *int
	Status         SeriesStatus
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RecurringInstance is a provisional placeholder until materialised through the ledger
type RecurringInstance struct {
	ID          int64
	TenantID    string
	SeriesID    int64
	ScheduledAt time.Time
	Status      InstanceStatus
	BookingID   *int64
	SkipReason  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsScheduled returns true while the instance waits for materialisation
func (i *RecurringInstance) IsScheduled() bool {
	return i.Status == InstanceScheduled
}
