package domain

import "time"

// Slot is a bookable start time for a staff member
type Slot struct {
	StaffID int64
	Start   time.Time
}
