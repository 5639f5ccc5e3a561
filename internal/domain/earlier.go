package domain

import "time"

// RequestPriority of an earlier appointment request
type RequestPriority string

const (
	PriorityNormal RequestPriority = "normal"
	PriorityUrgent RequestPriority = "urgent"
)

// IsValid reports whether p is a known priority
func (p RequestPriority) IsValid() bool {
	return p == PriorityNormal || p == PriorityUrgent
}

// RequestStatus of an earlier appointment request
type RequestStatus string

const (
	RequestActive    RequestStatus = "active"
	RequestFulfilled RequestStatus = "fulfilled"
	RequestExpired   RequestStatus = "expired"
)

// EarlierAppointmentRequest is a standing wish to move CurrentBookingID to an earlier freed slot
type EarlierAppointmentRequest struct {
	ID               int64
	TenantID         string
	CustomerEmail    string
	CurrentBookingID int64
	DesiredDate      *time.Time
	FlexibleTiming   bool
	Priority         RequestPriority
	Status           RequestStatus
	ExpiresAt        time.Time

	OfferedStartAt *time.Time
	OfferedStaffID *int64
	FulfilledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpiredAt reports whether the request is past its expiry at now
func (r *EarlierAppointmentRequest) IsExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// EarlierCandidate joins an active request with its current booking
type EarlierCandidate struct {
	Request        *EarlierAppointmentRequest
	CurrentStartAt time.Time
	CurrentEndAt   time.Time
	StaffID        int64
}

// FreedSlot is the interval released by a cancelled booking
type FreedSlot struct {
	TenantID  string
	BookingID int64
	StaffID   int64
	ServiceID int64
	StartAt   time.Time
	EndAt     time.Time
}
