package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
)

// UseCase use case для получения свободных слотов мастеров
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	cache        AvailabilityCache
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil, тогда слоты всегда рассчитываются заново
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		cache:        cache,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%s, service=%d, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	dayStart, dayEnd := calendar.DayBounds(req.Date, uc.location)

	// 2. Получаем услугу
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Определяем мастеров-кандидатов
	staff, err := uc.candidateStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Рассчитываем слоты каждого мастера
	slots := make([]domain.Slot, 0)
	for _, member := range staff {
		starts, err := uc.staffStarts(ctx, req.TenantID, member.ID, dayStart, dayEnd, service.DurationMinutes)
		if err != nil {
			return nil, err
		}

		for _, start := range dropPast(starts, now) {
			slots = append(slots, domain.Slot{StaffID: member.ID, Start: start})
		}
	}

	uc.logger.Info("GetAvailability: found %d slots for service=%d, date=%s",
		len(slots), req.ServiceID, dayStart.Format(domain.DateFormat))

	return &Response{
		Date:      dayStart,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// candidateStaff возвращает указанного мастера или всех активных мастеров по возрастанию id
func (uc *UseCase) candidateStaff(ctx context.Context, req *Request) ([]*domain.StaffMember, error) {
	if req.StaffID == nil {
		staff, err := uc.catalogRepo.ListActiveStaff(ctx, req.TenantID)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list staff: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff: %w", ErrInternal, err)
		}
		return staff, nil
	}

	member, err := uc.catalogRepo.GetStaff(ctx, req.TenantID, *req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailability: staff id=%d not found", *req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !member.Active {
		uc.logger.Warn("GetAvailability: staff id=%d is inactive", *req.StaffID)
		return nil, ErrStaffNotFound
	}

	return []*domain.StaffMember{member}, nil
}

// staffStarts возвращает все начала слотов мастера на день, включая прошедшие
// Результат берется из кэша, а при промахе рассчитывается и сохраняется,
// если за время расчета день мастера не инвалидировали
func (uc *UseCase) staffStarts(
	ctx context.Context,
	tenantID string,
	staffID int64,
	dayStart, dayEnd time.Time,
	durationMinutes int,
) ([]time.Time, error) {
	var version int64
	if uc.cache != nil {
		cached, v, found, err := uc.cache.Get(ctx, tenantID, staffID, dayStart, durationMinutes)
		version = v
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailability: cache get failed for staff=%d: %v", staffID, err)
			uc.metrics.IncCache("error")
		case found:
			uc.metrics.IncCache("hit")
			return cached, nil
		default:
			uc.metrics.IncCache("miss")
		}
	}

	starts, err := uc.computeStarts(ctx, tenantID, staffID, dayStart, dayEnd, durationMinutes)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		stored, err := uc.cache.Set(ctx, tenantID, staffID, dayStart, durationMinutes, version, starts)
		switch {
		case err != nil:
			uc.logger.Warn("GetAvailability: cache set failed for staff=%d: %v", staffID, err)
		case !stored:
			uc.logger.Info("GetAvailability: calendar of staff=%d changed during computation, cache not updated", staffID)
		}
	}

	return starts, nil
}

func (uc *UseCase) computeStarts(
	ctx context.Context,
	tenantID string,
	staffID int64,
	dayStart, dayEnd time.Time,
	durationMinutes int,
) ([]time.Time, error) {
	// Мастер в отпуске не принимает
	off, err := uc.catalogRepo.HasTimeOff(ctx, tenantID, staffID, dayStart)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to check time off for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to check time off: %w", ErrInternal, err)
	}
	if off {
		return []time.Time{}, nil
	}

	schedules, err := uc.catalogRepo.ListSchedules(ctx, tenantID, staffID, calendar.WeekdayIndex(dayStart))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get schedules for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get schedules: %w", ErrInternal, err)
	}
	if len(schedules) == 0 {
		return []time.Time{}, nil
	}

	bookings, err := uc.bookingRepo.ListConfirmedOverlapping(ctx, tenantID, staffID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	return generateStarts(dayStart, uc.location, schedules, durationMinutes, bookings), nil
}

type nopMetrics struct{}

func (nopMetrics) IncCache(string) {}
