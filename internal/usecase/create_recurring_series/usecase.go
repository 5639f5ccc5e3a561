package create_recurring_series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
)

// UseCase use case для создания регулярной серии
// Вхождения создаются заготовками (scheduled) без проверки пересечений,
// бронирования появляются только при материализации через журнал бронирований.
type UseCase struct {
	catalogRepo   CatalogRepository
	recurringRepo RecurringRepository
	txManager     TransactionManager
	location      *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	recurringRepo RecurringRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:   catalogRepo,
		recurringRepo: recurringRepo,
		txManager:     txManager,
		location:      location,
		logger:        logger,
	}
}

// Execute выполняет use case создания серии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringSeries: tenant=%s, service=%d, staff=%d, start=%s, frequency=%s, slot=%s",
		req.TenantID, req.ServiceID, req.StaffID, req.StartDate.Format(domain.DateFormat), req.Frequency, req.TimeSlot)

	// 1. Валидация шаблона
	minute, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateRecurringSeries: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем услугу и мастера
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateRecurringSeries: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateRecurringSeries: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.Active {
		return nil, ErrServiceNotFound
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.TenantID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateRecurringSeries: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateRecurringSeries: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
	}
	if !staff.Active {
		return nil, ErrStaffNotFound
	}

	// 3. Разворачиваем шаблон
	occurrences := expand(req.StartDate, minute, req.Frequency, req.EndDate, req.MaxOccurrences, uc.location)

	// 4. Сохраняем серию и заготовки в одной транзакции
	var result *Response
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		series, err := uc.recurringRepo.CreateSeries(txCtx, &domain.RecurringSeries{
			TenantID:       req.TenantID,
			ServiceID:      req.ServiceID,
			StaffID:        req.StaffID,
			CustomerEmail:  domain.NormalizeEmail(req.CustomerEmail),
			StartDate:      req.StartDate,
			Frequency:      req.Frequency,
			TimeSlot:       req.TimeSlot,
			EndDate:        req.EndDate,
			MaxOccurrences: req.MaxOccurrences,
			Status:         domain.SeriesActive,
			CreatedBy:      req.Actor.Email,
		})
		if err != nil {
			uc.logger.Error("CreateRecurringSeries: failed to create series: %v", err)
			return fmt.Errorf("%w: failed to create series: %w", ErrInternal, err)
		}

		instances := make([]*domain.RecurringInstance, len(occurrences))
		for i, at := range occurrences {
			instances[i] = &domain.RecurringInstance{
				TenantID:    req.TenantID,
				SeriesID:    series.ID,
				ScheduledAt: at.UTC(),
				Status:      domain.InstanceScheduled,
			}
		}

		if err := uc.recurringRepo.CreateInstances(txCtx, instances); err != nil {
			uc.logger.Error("CreateRecurringSeries: failed to create instances: %v", err)
			return fmt.Errorf("%w: failed to create instances: %w", ErrInternal, err)
		}

		result = &Response{Series: series, Instances: instances}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRecurringSeries: series id=%d created with %d instances", result.Series.ID, len(result.Instances))

	return result, nil
}
