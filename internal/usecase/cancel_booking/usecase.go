package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	recurringRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	instanceRepo InstanceRepository
	txManager    TransactionManager
	cache        AvailabilityInvalidator
	publisher    EventPublisher
	watcher      FreedSlotWatcher
	metrics      Metrics
	window       time.Duration
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// instanceRepo, cache, publisher и watcher могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	instanceRepo InstanceRepository,
	txManager TransactionManager,
	cache AvailabilityInvalidator,
	publisher EventPublisher,
	watcher FreedSlotWatcher,
	metrics Metrics,
	window time.Duration,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		instanceRepo: instanceRepo,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		watcher:      watcher,
		metrics:      metrics,
		window:       window,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
// Повторная отмена возвращает ErrAlreadyCancelled и не меняет состояние.
// Если ctx уже содержит транзакцию, уведомления остаются вызывающему (см. NotifyCancelled).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: tenant=%s, booking=%d, actor=%s(%s)",
		req.TenantID, req.BookingID, req.Actor.Email, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	nested := dbmetrics.IsInTransaction(ctx)
	now := uc.timeProvider.Now()

	var result *domain.Booking
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой строки
		booking, err := uc.bookingRepo.GetByID(txCtx, req.TenantID, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2. Проверяем статус и права
		if err := checkPermission(booking, req, now, uc.window); err != nil {
			uc.logger.Warn("CancelBooking: booking id=%d rejected: %v", req.BookingID, err)
			return err
		}

		// 3. Отменяем
		if err := uc.bookingRepo.Cancel(txCtx, req.TenantID, req.BookingID, req.Actor.Email, now); err != nil {
			if errors.Is(err, bookingRepo.ErrNotCancellable) {
				return ErrAlreadyCancelled
			}
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
		}

		// 4. Экземпляр серии освобождается вместе с бронированием
		if err := uc.releaseInstance(txCtx, booking); err != nil {
			return err
		}

		booking.Status = domain.BookingCancelled
		booking.CancelledAt = ptr.Ptr(now.UTC())
		booking.CancelledBy = ptr.Ptr(req.Actor.Email)
		result = booking
		return nil
	})
	if err != nil {
		if kind := domain.KindOf(err); kind != nil {
			uc.metrics.IncBookingRejected(kind.Error())
		}
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled by %s", result.ID, req.Actor.Email)

	if !nested {
		uc.NotifyCancelled(ctx, result, req.Actor)
	}

	return &Response{Booking: result}, nil
}

// releaseInstance переводит подтвержденный экземпляр серии в cancelled
func (uc *UseCase) releaseInstance(ctx context.Context, booking *domain.Booking) error {
	if booking.RecurringInstanceID == nil || uc.instanceRepo == nil {
		return nil
	}
	instanceID := *booking.RecurringInstanceID

	inst, err := uc.instanceRepo.GetInstance(ctx, booking.TenantID, instanceID)
	if err != nil {
		if errors.Is(err, recurringRepo.ErrInstanceNotFound) {
			uc.logger.Warn("CancelBooking: instance id=%d of booking id=%d not found", instanceID, booking.ID)
			return nil
		}
		uc.logger.Error("CancelBooking: failed to get instance id=%d: %v", instanceID, err)
		return fmt.Errorf("%w: failed to get instance: %w", ErrInternal, err)
	}

	if inst.Status != domain.InstanceConfirmed || inst.BookingID == nil || *inst.BookingID != booking.ID {
		return nil
	}

	inst.Status = domain.InstanceCancelled
	if err := uc.instanceRepo.UpdateInstance(ctx, inst); err != nil {
		uc.logger.Error("CancelBooking: failed to cancel instance id=%d: %v", instanceID, err)
		return fmt.Errorf("%w: failed to cancel instance: %w", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: instance id=%d cancelled with booking id=%d", instanceID, booking.ID)
	return nil
}

// NotifyCancelled сбрасывает кэш, публикует booking.cancelled и передает интервал
// поиску более ранних записей. Ошибки только логируются, отмена не откатывается.
func (uc *UseCase) NotifyCancelled(ctx context.Context, booking *domain.Booking, actor domain.Actor) {
	uc.metrics.IncBookingCancelled(string(actor.Role))

	if uc.cache != nil {
		if err := uc.cache.InvalidateDay(ctx, booking.TenantID, booking.StaffID, booking.StartAt.In(uc.location)); err != nil {
			uc.logger.Warn("CancelBooking: failed to invalidate availability for staff=%d: %v", booking.StaffID, err)
		}
	}

	if uc.publisher != nil {
		event := events.NewEvent(events.TypeBookingCancelled, uc.timeProvider.Now())
		event.TenantID = booking.TenantID
		event.StaffID = booking.StaffID
		event.BookingID = booking.ID
		event.Email = booking.CustomerEmail
		event.StartAt = booking.StartAt
		event.EndAt = booking.EndAt
		event.Actor = actor.Email

		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("CancelBooking: failed to publish %s for booking id=%d: %v", event.Type, booking.ID, err)
		}
	}

	if uc.watcher != nil {
		slot := domain.FreedSlot{
			TenantID:  booking.TenantID,
			BookingID: booking.ID,
			StaffID:   booking.StaffID,
			ServiceID: booking.ServiceID,
			StartAt:   booking.StartAt,
			EndAt:     booking.EndAt,
		}
		if err := uc.watcher.OnBookingCancelled(ctx, slot); err != nil {
			uc.logger.Error("CancelBooking: earlier-slot evaluation failed for booking id=%d: %v", booking.ID, err)
		}
	}
}

type nopMetrics struct{}

func (nopMetrics) IncBookingCancelled(string) {}
func (nopMetrics) IncBookingRejected(string)  {}
