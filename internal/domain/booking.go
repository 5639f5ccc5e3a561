package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	return s == BookingConfirmed || s == BookingCancelled
}

// Booking occupies the staff calendar on [StartAt, EndAt) while CONFIRMED
type Booking struct {
	ID            int64
	TenantID      string
	ServiceID     int64
	StaffID       int64
	CustomerEmail string
	StartAt       time.Time
	EndAt         time.Time
	Status        BookingStatus
	CreatedBy     string

	CancelledBy *string
	CancelledAt *time.Time

	// Source links, set when the booking backs a group or a recurring instance
	GroupBookingID      *int64
	RecurringInstanceID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking holds its interval
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == BookingCancelled
}

// Duration returns EndAt - StartAt
func (b *Booking) Duration() time.Duration {
	return b.EndAt.Sub(b.StartAt)
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	TenantID      string         // Обязательный параметр
	StaffID       *int64         // Фильтр по мастеру
	CustomerEmail *string        // Фильтр по клиенту
	Status        *BookingStatus // Фильтр по статусу
	From          *time.Time     // StartAt >= From
	To            *time.Time     // StartAt < To
}

// BookingSource identifies what created a booking
type BookingSource string

const (
	SourceSingle    BookingSource = "single"
	SourceGroup     BookingSource = "group"
	SourceRecurring BookingSource = "recurring"
)
