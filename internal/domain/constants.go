package domain

import "time"

// Scheduling constants
const (
	// SlotStepMinutes is the availability grid granularity
	SlotStepMinutes = 15

	// MaxRecurringInstances is the hard ceiling on a single series expansion
	MaxRecurringInstances = 100

	MinGroupParticipants = 1
	MaxGroupParticipants = 50

	// MaxTimeOffInvalidationDays bounds cache invalidation for long time-off ranges
	MaxTimeOffInvalidationDays = 62
)

// Defaults for values that come from configuration
const (
	DefaultCancellationWindow = 24 * time.Hour
	DefaultEarlierRequestTTL  = 30 * 24 * time.Hour
	DefaultTimezone           = "UTC"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
