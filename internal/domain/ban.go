package domain

import "time"

// CustomerBan blocks new bookings for an email within a tenant
type CustomerBan struct {
	TenantID  string
	Email     string
	Reason    *string
	CreatedBy string
	CreatedAt time.Time
}
