package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// Service сервис администрирования услуг, мастеров и их календарей
// Все операции доступны только администратору салона
type Service struct {
	catalogRepo  CatalogRepository
	lockRepo     LockRepository
	txManager    TransactionManager
	cache        AvailabilityInvalidator
	location     *time.Location
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса
// cache может быть nil
func NewService(
	catalogRepo CatalogRepository,
	lockRepo LockRepository,
	txManager TransactionManager,
	cache AvailabilityInvalidator,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		lockRepo:     lockRepo,
		txManager:    txManager,
		cache:        cache,
		location:     location,
		logger:       logger,
		timeProvider: realTimeProvider{},
	}
}

// Услуги

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, tenantID string, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: tenant=%s, name=%q by %s", tenantID, req.Name, actor.Email)

	if err := s.requireAdmin("CreateService", actor); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.catalogRepo.CreateService(ctx, req.ToDomainService(tenantID))
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, tenantID string, actor domain.Actor, id int64) (*models.ServiceResponse, error) {
	if err := s.requireAdmin("GetService", actor); err != nil {
		return nil, err
	}

	service, err := s.getService(ctx, "GetService", tenantID, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(service), nil
}

// UpdateService частично обновляет услугу
// Новая длительность действует только для будущих бронирований
func (s *Service) UpdateService(ctx context.Context, tenantID string, actor domain.Actor, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: tenant=%s, service=%d by %s", tenantID, id, actor.Email)

	if err := s.requireAdmin("UpdateService", actor); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	service, err := s.getService(ctx, "UpdateService", tenantID, id)
	if err != nil {
		return nil, err
	}

	req.ApplyToService(service)

	if err := s.catalogRepo.UpdateService(ctx, service); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", id)
	return models.FromDomainService(service), nil
}

// Мастера

// CreateStaff создает мастера
func (s *Service) CreateStaff(ctx context.Context, tenantID string, actor domain.Actor, req *models.CreateStaffRequest) (*models.StaffResponse, error) {
	s.logger.Info("CreateStaff: tenant=%s, name=%q by %s", tenantID, req.Name, actor.Email)

	if err := s.requireAdmin("CreateStaff", actor); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("CreateStaff: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.catalogRepo.CreateStaff(ctx, &domain.StaffMember{
		TenantID: tenantID,
		Name:     req.Name,
		Active:   true,
	})
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: successfully created staff id=%d", created.ID)
	return models.FromDomainStaff(created), nil
}

// ListStaff возвращает активных мастеров салона
func (s *Service) ListStaff(ctx context.Context, tenantID string, actor domain.Actor) ([]*models.StaffResponse, error) {
	if err := s.requireAdmin("ListStaff", actor); err != nil {
		return nil, err
	}

	staff, err := s.catalogRepo.ListActiveStaff(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainStaffList(staff), nil
}

// SetStaffActive включает или выключает мастера
// Неактивный мастер не попадает в расчет доступности и не принимает новые записи
func (s *Service) SetStaffActive(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, active bool) error {
	s.logger.Info("SetStaffActive: tenant=%s, staff=%d, active=%t by %s", tenantID, staffID, active, actor.Email)

	if err := s.requireAdmin("SetStaffActive", actor); err != nil {
		return err
	}

	if err := s.catalogRepo.SetStaffActive(ctx, tenantID, staffID, active); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("SetStaffActive: staff id=%d not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("SetStaffActive: repository error for staff id=%d: %v", staffID, err)
		return fmt.Errorf("%w: SetStaffActive - repository error: %w", ErrInternal, err)
	}

	return nil
}

// Расписания

// ListSchedules возвращает недельное расписание мастера
func (s *Service) ListSchedules(ctx context.Context, tenantID string, actor domain.Actor, staffID int64) ([]*models.ScheduleResponse, error) {
	if err := s.requireAdmin("ListSchedules", actor); err != nil {
		return nil, err
	}
	if _, err := s.getStaff(ctx, "ListSchedules", tenantID, staffID); err != nil {
		return nil, err
	}

	schedules, err := s.catalogRepo.ListStaffSchedules(ctx, tenantID, staffID)
	if err != nil {
		s.logger.Error("ListSchedules: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainScheduleList(schedules), nil
}

// AddSchedule добавляет рабочий интервал мастеру
func (s *Service) AddSchedule(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("AddSchedule: tenant=%s, staff=%d, weekday=%d, %s-%s", tenantID, staffID, req.Weekday, req.StartTime, req.EndTime)

	if err := s.requireAdmin("AddSchedule", actor); err != nil {
		return nil, err
	}

	schedule, err := parseSchedule(req)
	if err != nil {
		s.logger.Warn("AddSchedule: validation failed: %v", err)
		return nil, err
	}
	schedule.TenantID = tenantID
	schedule.StaffID = staffID

	var created *domain.Schedule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.lockStaffCalendar(txCtx, "AddSchedule", tenantID, staffID); err != nil {
			return err
		}
		if err := s.checkScheduleOverlap(txCtx, "AddSchedule", schedule); err != nil {
			return err
		}

		created, err = s.catalogRepo.CreateSchedule(txCtx, schedule)
		if err != nil {
			s.logger.Error("AddSchedule: repository error: %v", err)
			return fmt.Errorf("%w: AddSchedule - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWeekday(ctx, tenantID, staffID, created.Weekday)

	s.logger.Info("AddSchedule: successfully created schedule id=%d", created.ID)
	return models.FromDomainSchedule(created), nil
}

// UpdateSchedule изменяет рабочий интервал
func (s *Service) UpdateSchedule(ctx context.Context, tenantID string, actor domain.Actor, scheduleID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: tenant=%s, schedule=%d", tenantID, scheduleID)

	if err := s.requireAdmin("UpdateSchedule", actor); err != nil {
		return nil, err
	}

	updated, err := parseSchedule(req)
	if err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	var previousWeekday int
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.getSchedule(txCtx, "UpdateSchedule", tenantID, scheduleID)
		if err != nil {
			return err
		}
		previousWeekday = existing.Weekday

		updated.ID = existing.ID
		updated.TenantID = existing.TenantID
		updated.StaffID = existing.StaffID

		if err := s.lockStaffCalendar(txCtx, "UpdateSchedule", tenantID, existing.StaffID); err != nil {
			return err
		}
		if err := s.checkScheduleOverlap(txCtx, "UpdateSchedule", updated); err != nil {
			return err
		}

		if err := s.catalogRepo.UpdateSchedule(txCtx, updated); err != nil {
			if errors.Is(err, catalogRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			s.logger.Error("UpdateSchedule: repository error: %v", err)
			return fmt.Errorf("%w: UpdateSchedule - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWeekday(ctx, tenantID, updated.StaffID, previousWeekday)
	if previousWeekday != updated.Weekday {
		s.invalidateWeekday(ctx, tenantID, updated.StaffID, updated.Weekday)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule id=%d", scheduleID)
	return models.FromDomainSchedule(updated), nil
}

// DeleteSchedule удаляет рабочий интервал
func (s *Service) DeleteSchedule(ctx context.Context, tenantID string, actor domain.Actor, scheduleID int64) error {
	s.logger.Info("DeleteSchedule: tenant=%s, schedule=%d", tenantID, scheduleID)

	if err := s.requireAdmin("DeleteSchedule", actor); err != nil {
		return err
	}

	existing, err := s.getSchedule(ctx, "DeleteSchedule", tenantID, scheduleID)
	if err != nil {
		return err
	}

	if err := s.catalogRepo.DeleteSchedule(ctx, tenantID, scheduleID); err != nil {
		if errors.Is(err, catalogRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error: %v", err)
		return fmt.Errorf("%w: DeleteSchedule - repository error: %w", ErrInternal, err)
	}

	s.invalidateWeekday(ctx, tenantID, existing.StaffID, existing.Weekday)
	return nil
}

// Отсутствия

// ListTimeOff возвращает отсутствия мастера
func (s *Service) ListTimeOff(ctx context.Context, tenantID string, actor domain.Actor, staffID int64) ([]*models.TimeOffResponse, error) {
	if err := s.requireAdmin("ListTimeOff", actor); err != nil {
		return nil, err
	}
	if _, err := s.getStaff(ctx, "ListTimeOff", tenantID, staffID); err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.ListTimeOff(ctx, tenantID, staffID)
	if err != nil {
		s.logger.Error("ListTimeOff: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ListTimeOff - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainTimeOffList(items), nil
}

// AddTimeOff добавляет отсутствие мастера на диапазон дат
func (s *Service) AddTimeOff(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, req *models.TimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("AddTimeOff: tenant=%s, staff=%d, %s..%s", tenantID, staffID, req.DateFrom, req.DateTo)

	if err := s.requireAdmin("AddTimeOff", actor); err != nil {
		return nil, err
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	from, err := calendar.ParseDate(req.DateFrom, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: dateFrom must be YYYY-MM-DD", ErrInvalidInput)
	}
	to, err := calendar.ParseDate(req.DateTo, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: dateTo must be YYYY-MM-DD", ErrInvalidInput)
	}
	if from.After(to) {
		s.logger.Warn("AddTimeOff: dateFrom %s is after dateTo %s", req.DateFrom, req.DateTo)
		return nil, fmt.Errorf("%w: dateFrom must not be after dateTo", ErrInvalidInput)
	}

	if _, err := s.getStaff(ctx, "AddTimeOff", tenantID, staffID); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateTimeOff(ctx, &domain.TimeOff{
		TenantID: tenantID,
		StaffID:  staffID,
		DateFrom: from,
		DateTo:   to,
		Reason:   req.Reason,
	})
	if err != nil {
		s.logger.Error("AddTimeOff: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddTimeOff - repository error: %w", ErrInternal, err)
	}

	s.invalidateRange(ctx, tenantID, staffID, from, to)

	s.logger.Info("AddTimeOff: successfully created time off id=%d", created.ID)
	return models.FromDomainTimeOff(created), nil
}

// DeleteTimeOff удаляет отсутствие
func (s *Service) DeleteTimeOff(ctx context.Context, tenantID string, actor domain.Actor, id int64) error {
	s.logger.Info("DeleteTimeOff: tenant=%s, timeOff=%d", tenantID, id)

	if err := s.requireAdmin("DeleteTimeOff", actor); err != nil {
		return err
	}

	existing, err := s.catalogRepo.GetTimeOff(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrTimeOffNotFound) {
			s.logger.Warn("DeleteTimeOff: time off id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %w", ErrInternal, err)
	}

	if err := s.catalogRepo.DeleteTimeOff(ctx, tenantID, id); err != nil {
		if errors.Is(err, catalogRepo.ErrTimeOffNotFound) {
			return ErrTimeOffNotFound
		}
		s.logger.Error("DeleteTimeOff: repository error: %v", err)
		return fmt.Errorf("%w: DeleteTimeOff - repository error: %w", ErrInternal, err)
	}

	s.invalidateRange(ctx, tenantID, existing.StaffID, existing.DateFrom, existing.DateTo)
	return nil
}

// Вспомогательные методы

func (s *Service) requireAdmin(op string, actor domain.Actor) error {
	if !actor.IsAdmin() {
		s.logger.Warn("%s: %s is not an admin", op, actor.Email)
		return ErrAccessDenied
	}
	return nil
}

func (s *Service) getService(ctx context.Context, op, tenantID string, id int64) (*domain.Service, error) {
	service, err := s.catalogRepo.GetService(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get service: %w", ErrInternal, op, err)
	}
	return service, nil
}

func (s *Service) getStaff(ctx context.Context, op, tenantID string, id int64) (*domain.StaffMember, error) {
	staff, err := s.catalogRepo.GetStaff(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, id)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get staff: %w", ErrInternal, op, err)
	}
	return staff, nil
}

func (s *Service) getSchedule(ctx context.Context, op, tenantID string, id int64) (*domain.Schedule, error) {
	schedule, err := s.catalogRepo.GetSchedule(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrScheduleNotFound) {
			s.logger.Warn("%s: schedule id=%d not found", op, id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("%s: failed to get schedule id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get schedule: %w", ErrInternal, op, err)
	}
	return schedule, nil
}

// lockStaffCalendar проверяет мастера и сериализует изменения его расписания
func (s *Service) lockStaffCalendar(ctx context.Context, op, tenantID string, staffID int64) error {
	if _, err := s.getStaff(ctx, op, tenantID, staffID); err != nil {
		return err
	}
	if err := s.lockRepo.LockStaff(ctx, tenantID, staffID); err != nil {
		s.logger.Error("%s: failed to lock staff id=%d: %v", op, staffID, err)
		return fmt.Errorf("%w: %s - lock staff: %w", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) checkScheduleOverlap(ctx context.Context, op string, schedule *domain.Schedule) error {
	existing, err := s.catalogRepo.ListStaffSchedules(ctx, schedule.TenantID, schedule.StaffID)
	if err != nil {
		s.logger.Error("%s: failed to list schedules of staff id=%d: %v", op, schedule.StaffID, err)
		return fmt.Errorf("%w: %s - list schedules: %w", ErrInternal, op, err)
	}

	for _, other := range existing {
		if other.ID == schedule.ID {
			continue
		}
		if schedule.Overlaps(other) {
			s.logger.Warn("%s: %s-%s overlaps schedule id=%d on weekday %d", op,
				calendar.FormatHHMM(schedule.StartMin), calendar.FormatHHMM(schedule.EndMin), other.ID, other.Weekday)
			return ErrScheduleOverlap
		}
	}
	return nil
}

// invalidateWeekday сбрасывает кэш ближайших дат с данным днем недели
// Более дальние даты устаревают по TTL
func (s *Service) invalidateWeekday(ctx context.Context, tenantID string, staffID int64, weekday int) {
	if s.cache == nil {
		return
	}
	for _, date := range upcomingWeekdayDates(s.timeProvider.Now().In(s.location), weekday, domain.MaxTimeOffInvalidationDays) {
		if err := s.cache.InvalidateDay(ctx, tenantID, staffID, date); err != nil {
			s.logger.Warn("invalidateWeekday: staff=%d, date=%s: %v", staffID, date.Format(domain.DateFormat), err)
			return
		}
	}
}

func (s *Service) invalidateRange(ctx context.Context, tenantID string, staffID int64, from, to time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRange(ctx, tenantID, staffID, from, to); err != nil {
		s.logger.Warn("invalidateRange: staff=%d, %s..%s: %v", staffID,
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
	}
}

// parseSchedule проверяет границы интервала: 0 <= start < end <= 1440
func parseSchedule(req *models.ScheduleRequest) (*domain.Schedule, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	start, err := calendar.ParseHHMM(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime must be HH:MM", ErrInvalidInput)
	}

	end := calendar.MinutesPerDay
	if req.EndTime != "24:00" {
		end, err = calendar.ParseHHMM(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime must be HH:MM", ErrInvalidInput)
		}
	}

	if start >= end {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return &domain.Schedule{
		Weekday:  req.Weekday,
		StartMin: start,
		EndMin:   end,
	}, nil
}

// upcomingWeekdayDates даты с указанным днем недели в пределах horizonDays начиная с today
func upcomingWeekdayDates(today time.Time, weekday, horizonDays int) []time.Time {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	offset := (weekday - calendar.WeekdayIndex(start) + 7) % 7

	dates := make([]time.Time, 0, horizonDays/7+1)
	for d := offset; d < horizonDays; d += 7 {
		dates = append(dates, start.AddDate(0, 0, d))
	}
	return dates
}
