package request_earlier_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	requestEarlierSlot "github.com/m04kA/SMC-SalonScheduler/internal/usecase/request_earlier_slot"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// EarlierSlotRequest HTTP request model
type EarlierSlotRequest struct {
	CurrentBookingID int64   `json:"currentBookingId"`
	DesiredDate      *string `json:"desiredDate,omitempty"` // "2026-10-20"
	FlexibleTiming   bool    `json:"flexibleTiming"`
	Priority         string  `json:"priority,omitempty"` // normal | urgent
}

// EarlierSlotResponse HTTP response model
type EarlierSlotResponse struct {
	ID               int64      `json:"id"`
	CurrentBookingID int64      `json:"currentBookingId"`
	CustomerEmail    string     `json:"customerEmail"`
	DesiredDate      *string    `json:"desiredDate,omitempty"`
	FlexibleTiming   bool       `json:"flexibleTiming"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	ExpiresAt        time.Time  `json:"expiresAt"`
	OfferedStartAt   *time.Time `json:"offeredStartAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EarlierSlotRequest) ToUseCaseRequest(tenantID string, actor domain.Actor, loc *time.Location) (*requestEarlierSlot.Request, error) {
	req := &requestEarlierSlot.Request{
		TenantID:         tenantID,
		Actor:            actor,
		CurrentBookingID: r.CurrentBookingID,
		FlexibleTiming:   r.FlexibleTiming,
		Priority:         domain.RequestPriority(r.Priority),
	}

	if r.DesiredDate != nil {
		desired, err := calendar.ParseDate(*r.DesiredDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid desiredDate: %w", err)
		}
		req.DesiredDate = &desired
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestEarlierSlot.Response) *EarlierSlotResponse {
	req := resp.Request
	out := &EarlierSlotResponse{
		ID:               req.ID,
		CurrentBookingID: req.CurrentBookingID,
		CustomerEmail:    req.CustomerEmail,
		FlexibleTiming:   req.FlexibleTiming,
		Priority:         string(req.Priority),
		Status:           string(req.Status),
		ExpiresAt:        req.ExpiresAt.UTC(),
		CreatedAt:        req.CreatedAt.UTC(),
	}
	if req.DesiredDate != nil {
		out.DesiredDate = ptr.Ptr(req.DesiredDate.Format(domain.DateFormat))
	}
	if req.OfferedStartAt != nil {
		out.OfferedStartAt = ptr.Ptr(req.OfferedStartAt.UTC())
	}
	return out
}
