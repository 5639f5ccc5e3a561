package domain

import "time"

// Service is a bookable salon service
type Service struct {
	ID              int64
	TenantID        string
	Name            string
	DurationMinutes int
	PriceCents      int64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// StaffMember performs services
type StaffMember struct {
	ID        int64
	TenantID  string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedule is a weekly working interval of a staff member.
// Weekday is 0 for Monday through 6 for Sunday; StartMin/EndMin are minutes since midnight.
type Schedule struct {
	ID       int64
	TenantID string
	StaffID  int64
	Weekday  int
	StartMin int
	EndMin   int
}

// Overlaps reports whether two schedules share a weekday and an instant
func (s *Schedule) Overlaps(other *Schedule) bool {
	return s.Weekday == other.Weekday && s.StartMin < other.EndMin && other.StartMin < s.EndMin
}

// TimeOff makes a staff member unavailable for every date in [DateFrom, DateTo]
type TimeOff struct {
	ID       int64
	TenantID string
	StaffID  int64
	DateFrom time.Time
	DateTo   time.Time
	Reason   *string
}

// Covers reports whether the calendar date of date falls inside the range.
// Dates are compared as YYYY-MM-DD in their own locations, DATE columns come back as UTC midnight.
func (t *TimeOff) Covers(date time.Time) bool {
	d := date.Format(DateFormat)
	return d >= t.DateFrom.Format(DateFormat) && d <= t.DateTo.Format(DateFormat)
}
