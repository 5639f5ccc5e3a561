package request_earlier_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	earlierRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/earlier"
)

// UseCase use case для постановки в очередь на более раннюю запись
type UseCase struct {
	bookingRepo  BookingRepository
	earlierRepo  EarlierRepository
	ttl          time.Duration
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	earlierRepo EarlierRepository,
	ttl time.Duration,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		earlierRepo:  earlierRepo,
		ttl:          ttl,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания запроса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestEarlierSlot: tenant=%s, booking=%d, priority=%s, flexible=%t, actor=%s",
		req.TenantID, req.CurrentBookingID, req.Priority, req.FlexibleTiming, req.Actor.Email)

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RequestEarlierSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Текущее бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.TenantID, req.CurrentBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RequestEarlierSlot: booking id=%d not found", req.CurrentBookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RequestEarlierSlot: failed to get booking id=%d: %v", req.CurrentBookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !req.Actor.CanActFor(booking.CustomerEmail) {
		uc.logger.Warn("RequestEarlierSlot: %s does not own booking id=%d", req.Actor.Email, booking.ID)
		return nil, ErrNotOwner
	}

	if !booking.IsConfirmed() || !booking.StartAt.After(now) {
		uc.logger.Warn("RequestEarlierSlot: booking id=%d is not eligible (status=%s)", booking.ID, booking.Status)
		return nil, ErrBookingNotEligible
	}

	expires := expiresAt(req.DesiredDate, now, uc.ttl, uc.location)
	if !expires.After(now) {
		uc.logger.Warn("RequestEarlierSlot: desired date is in the past")
		return nil, fmt.Errorf("%w: desiredDate is in the past", ErrInvalidInput)
	}

	// 3. Не больше одного активного запроса на бронирование
	exists, err := uc.earlierRepo.HasActiveForBooking(ctx, req.TenantID, booking.ID)
	if err != nil {
		uc.logger.Error("RequestEarlierSlot: failed to check active requests: %v", err)
		return nil, fmt.Errorf("%w: failed to check active requests: %w", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("RequestEarlierSlot: booking id=%d already has an active request", booking.ID)
		return nil, ErrAlreadyRequested
	}

	// 4. Сохраняем
	created, err := uc.earlierRepo.Create(ctx, &domain.EarlierAppointmentRequest{
		TenantID:         req.TenantID,
		CustomerEmail:    booking.CustomerEmail,
		CurrentBookingID: booking.ID,
		DesiredDate:      req.DesiredDate,
		FlexibleTiming:   req.FlexibleTiming,
		Priority:         req.Priority,
		Status:           domain.RequestActive,
		ExpiresAt:        expires.UTC(),
	})
	if err != nil {
		if errors.Is(err, earlierRepo.ErrActiveRequestExists) {
			return nil, ErrAlreadyRequested
		}
		uc.logger.Error("RequestEarlierSlot: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	uc.logger.Info("RequestEarlierSlot: request id=%d created, expires at %s", created.ID, created.ExpiresAt.Format(time.RFC3339))

	return &Response{Request: created}, nil
}
