package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, администратор любые в салоне
func (s *Service) GetByID(ctx context.Context, tenantID string, actor domain.Actor, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s", id, actor.Email)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if !actor.CanActFor(booking.CustomerEmail) {
		s.logger.Warn("GetByID: access denied for %s to booking id=%d", actor.Email, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListForAdmin возвращает бронирования салона по фильтру, упорядоченные по StartAt
func (s *Service) ListForAdmin(ctx context.Context, tenantID string, actor domain.Actor, req *models.ListAdminRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("ListForAdmin: tenant=%s", tenantID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))
	}
	s.logger.Info(logMsg)

	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{
		TenantID: tenantID,
		StaffID:  req.StaffID,
		From:     req.From,
		To:       req.To,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForAdmin: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForAdmin - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListForAdmin: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// ListForCustomer возвращает бронирования клиента
// По умолчанию только будущие и не отмененные
func (s *Service) ListForCustomer(ctx context.Context, tenantID string, actor domain.Actor, req *models.ListMyRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForCustomer: tenant=%s, customer=%s, includePast=%t, includeCancelled=%t",
		tenantID, actor.Email, req.IncludePast, req.IncludeCancelled)

	email := domain.NormalizeEmail(actor.Email)
	filter := domain.BookingsFilter{
		TenantID:      tenantID,
		CustomerEmail: &email,
	}

	if !req.IncludePast {
		filter.From = ptr.Ptr(s.timeProvider.Now())
	}

	if !req.IncludeCancelled {
		filter.Status = ptr.Ptr(domain.BookingConfirmed)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListForCustomer: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForCustomer - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListForCustomer: fetched %d bookings for %s", len(bookings), email)
	return models.FromDomainBookingList(bookings), nil
}
