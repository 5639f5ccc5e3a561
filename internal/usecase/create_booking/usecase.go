package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	lockRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/lock"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
)

// UseCase журнал бронирований: единственная точка создания бронирований
// Через него проходят одиночные, групповые и регулярные бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	banRepo      BanRepository
	lockRepo     LockRepository
	locker       KeyLocker
	txManager    TransactionManager
	cache        AvailabilityInvalidator
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	banRepo BanRepository,
	lockRepo LockRepository,
	locker KeyLocker,
	txManager TransactionManager,
	cache AvailabilityInvalidator,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		banRepo:      banRepo,
		lockRepo:     lockRepo,
		locker:       locker,
		txManager:    txManager,
		cache:        cache,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверки идут в фиксированном порядке, до прохождения всех проверок ничего не пишется.
// Если ctx уже содержит транзакцию, бронирование создается в ней, а уведомления
// остаются вызывающему (см. NotifyCreated).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: tenant=%s, service=%d, staff=%d, start=%s, customer=%s, actor=%s",
		req.TenantID, req.ServiceID, req.StaffID, req.StartAt.Format(time.RFC3339), req.CustomerEmail, req.Actor.Email)

	if req.Source == "" {
		req.Source = domain.SourceSingle
	}
	nested := dbmetrics.IsInTransaction(ctx)
	now := uc.timeProvider.Now()

	resp, err := uc.create(ctx, req, now)
	if err != nil {
		if kind := domain.KindOf(err); kind != nil {
			uc.metrics.IncBookingRejected(kind.Error())
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", resp.Booking.ID)

	if !nested {
		uc.NotifyCreated(ctx, resp.Booking, req.Source)
	}

	return resp, nil
}

func (uc *UseCase) create(ctx context.Context, req *Request, now time.Time) (*Response, error) {
	// 0. Валидация входных данных и прав
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	email := domain.NormalizeEmail(req.CustomerEmail)

	// 1. Проверяем блокировку клиента
	banned, err := uc.banRepo.IsBanned(ctx, req.TenantID, email)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check ban for %s: %v", email, err)
		return nil, fmt.Errorf("%w: failed to check ban: %w", ErrInternal, err)
	}
	if banned {
		uc.logger.Warn("CreateBooking: customer %s is banned in tenant %s", email, req.TenantID)
		return nil, ErrCustomerBanned
	}

	// 2. Получаем услугу и мастера
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.TenantID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("CreateBooking: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 3. Конец интервала
	startAt := req.StartAt.UTC()
	endAt := startAt.Add(service.Duration())

	// 4-5. Проверка пересечений и запись под блокировкой календаря мастера
	unlock := uc.locker.Lock(lockRepo.StaffLockKey(req.TenantID, req.StaffID))
	defer unlock()

	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.lockRepo.LockStaff(txCtx, req.TenantID, req.StaffID); err != nil {
			uc.logger.Error("CreateBooking: failed to lock staff=%d: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to lock staff calendar: %w", ErrInternal, err)
		}

		existing, err := uc.bookingRepo.ListConfirmedOverlapping(txCtx, req.TenantID, req.StaffID, startAt, endAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		if conflict := findOverlap(startAt, endAt, existing); conflict != nil {
			uc.logger.Warn("CreateBooking: staff=%d is busy, overlaps booking id=%d", req.StaffID, conflict.ID)
			return ErrSlotOverlap
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			TenantID:            req.TenantID,
			ServiceID:           req.ServiceID,
			StaffID:             req.StaffID,
			CustomerEmail:       email,
			StartAt:             startAt,
			EndAt:               endAt,
			Status:              domain.BookingConfirmed,
			CreatedBy:           req.Actor.Email,
			GroupBookingID:      req.GroupBookingID,
			RecurringInstanceID: req.RecurringInstanceID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{Booking: result, Service: service}, nil
}

// NotifyCreated сбрасывает кэш доступности и публикует booking.created
// Вызывается после фиксации транзакции; ошибки только логируются
func (uc *UseCase) NotifyCreated(ctx context.Context, booking *domain.Booking, source domain.BookingSource) {
	uc.metrics.IncBookingCreated(string(source))

	if uc.cache != nil {
		if err := uc.cache.InvalidateDay(ctx, booking.TenantID, booking.StaffID, booking.StartAt.In(uc.location)); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate availability for staff=%d: %v", booking.StaffID, err)
		}
	}

	if uc.publisher == nil {
		return
	}

	event := events.NewEvent(events.TypeBookingCreated, uc.timeProvider.Now())
	event.TenantID = booking.TenantID
	event.StaffID = booking.StaffID
	event.BookingID = booking.ID
	event.Email = booking.CustomerEmail
	event.StartAt = booking.StartAt
	event.EndAt = booking.EndAt
	event.Actor = booking.CreatedBy

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish %s for booking id=%d: %v", event.Type, booking.ID, err)
	}
}

type nopMetrics struct{}

func (nopMetrics) IncBookingCreated(string)  {}
func (nopMetrics) IncBookingRejected(string) {}
