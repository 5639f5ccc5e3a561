package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	recurringRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/recurring/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
)

// Service сервис регулярных серий: материализация, отмена вхождений, статусы
// Материализация проходит через журнал бронирований; доменный отказ
// переводит вхождение в skipped с причиной, инфраструктурная ошибка возвращается.
type Service struct {
	recurringRepo  RecurringRepository
	bookingCreator BookingCreator
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	recurringRepo RecurringRepository,
	bookingCreator BookingCreator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		recurringRepo:  recurringRepo,
		bookingCreator: bookingCreator,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetSeries возвращает серию с вхождениями
func (s *Service) GetSeries(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64) (*models.SeriesResponse, error) {
	s.logger.Info("GetSeries: tenant=%s, series=%d", tenantID, seriesID)

	series, err := s.loadSeries(ctx, tenantID, actor, seriesID)
	if err != nil {
		return nil, err
	}

	instances, err := s.recurringRepo.ListInstances(ctx, tenantID, seriesID)
	if err != nil {
		s.logger.Error("GetSeries: failed to list instances of series=%d: %v", seriesID, err)
		return nil, fmt.Errorf("%w: GetSeries - list instances: %w", ErrInternal, err)
	}

	return models.FromDomainSeries(series, instances), nil
}

// MaterializeInstance превращает заготовку в бронирование
func (s *Service) MaterializeInstance(ctx context.Context, tenantID string, actor domain.Actor, instanceID int64) (*models.InstanceResponse, error) {
	s.logger.Info("MaterializeInstance: tenant=%s, instance=%d, actor=%s", tenantID, instanceID, actor.Email)

	var booking *domain.Booking
	var result *domain.RecurringInstance
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		inst, err := s.recurringRepo.GetInstance(txCtx, tenantID, instanceID)
		if err != nil {
			if errors.Is(err, recurringRepo.ErrInstanceNotFound) {
				s.logger.Warn("MaterializeInstance: instance id=%d not found", instanceID)
				return ErrInstanceNotFound
			}
			s.logger.Error("MaterializeInstance: failed to get instance id=%d: %v", instanceID, err)
			return fmt.Errorf("%w: MaterializeInstance - get instance: %w", ErrInternal, err)
		}

		series, err := s.loadSeries(txCtx, tenantID, actor, inst.SeriesID)
		if err != nil {
			return err
		}

		if !inst.IsScheduled() {
			s.logger.Warn("MaterializeInstance: instance id=%d is %s", inst.ID, inst.Status)
			return ErrInstanceNotScheduled
		}
		if series.Status != domain.SeriesActive {
			s.logger.Warn("MaterializeInstance: series id=%d is %s", series.ID, series.Status)
			return ErrSeriesNotActive
		}

		booking, err = s.materialize(txCtx, actor, series, inst)
		if err != nil {
			return err
		}

		result = inst
		return nil
	})
	if err != nil {
		return nil, err
	}

	if booking != nil {
		s.bookingCreator.NotifyCreated(ctx, booking, domain.SourceRecurring)
	}

	s.logger.Info("MaterializeInstance: instance id=%d is %s", result.ID, result.Status)
	return models.FromDomainInstance(result), nil
}

// MaterializeSeries материализует все заготовки серии по порядку
// Когда заготовок не остается, серия переходит в completed
func (s *Service) MaterializeSeries(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64) (*models.MaterializeResponse, error) {
	s.logger.Info("MaterializeSeries: tenant=%s, series=%d, actor=%s", tenantID, seriesID, actor.Email)

	series, err := s.loadSeries(ctx, tenantID, actor, seriesID)
	if err != nil {
		return nil, err
	}
	if series.Status != domain.SeriesActive {
		s.logger.Warn("MaterializeSeries: series id=%d is %s", seriesID, series.Status)
		return nil, ErrSeriesNotActive
	}

	instances, err := s.recurringRepo.ListInstances(ctx, tenantID, seriesID)
	if err != nil {
		s.logger.Error("MaterializeSeries: failed to list instances of series=%d: %v", seriesID, err)
		return nil, fmt.Errorf("%w: MaterializeSeries - list instances: %w", ErrInternal, err)
	}

	resp := &models.MaterializeResponse{SeriesID: seriesID, Outcomes: make([]*models.InstanceResponse, 0)}
	for _, inst := range instances {
		if !inst.IsScheduled() {
			continue
		}

		outcome, err := s.MaterializeInstance(ctx, tenantID, actor, inst.ID)
		if err != nil {
			// изменено параллельным запросом
			if errors.Is(err, ErrInstanceNotScheduled) {
				continue
			}
			return nil, err
		}

		resp.Outcomes = append(resp.Outcomes, outcome)
		switch domain.InstanceStatus(outcome.Status) {
		case domain.InstanceConfirmed:
			resp.Confirmed++
		case domain.InstanceSkipped:
			resp.Skipped++
		}
	}

	status, err := s.completeIfDone(ctx, tenantID, seriesID)
	if err != nil {
		return nil, err
	}
	resp.SeriesStatus = string(status)

	s.logger.Info("MaterializeSeries: series id=%d confirmed=%d skipped=%d status=%s",
		seriesID, resp.Confirmed, resp.Skipped, resp.SeriesStatus)
	return resp, nil
}

// CancelInstance отменяет заготовку; материализованные вхождения отменяются через бронирование
func (s *Service) CancelInstance(ctx context.Context, tenantID string, actor domain.Actor, instanceID int64) error {
	s.logger.Info("CancelInstance: tenant=%s, instance=%d, actor=%s", tenantID, instanceID, actor.Email)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		inst, err := s.recurringRepo.GetInstance(txCtx, tenantID, instanceID)
		if err != nil {
			if errors.Is(err, recurringRepo.ErrInstanceNotFound) {
				return ErrInstanceNotFound
			}
			s.logger.Error("CancelInstance: failed to get instance id=%d: %v", instanceID, err)
			return fmt.Errorf("%w: CancelInstance - get instance: %w", ErrInternal, err)
		}

		if _, err := s.loadSeries(txCtx, tenantID, actor, inst.SeriesID); err != nil {
			return err
		}

		if !inst.IsScheduled() {
			s.logger.Warn("CancelInstance: instance id=%d is %s", inst.ID, inst.Status)
			return ErrInstanceNotScheduled
		}

		inst.Status = domain.InstanceCancelled
		if err := s.recurringRepo.UpdateInstance(txCtx, inst); err != nil {
			s.logger.Error("CancelInstance: failed to update instance id=%d: %v", inst.ID, err)
			return fmt.Errorf("%w: CancelInstance - update instance: %w", ErrInternal, err)
		}
		return nil
	})
}

// UpdateSeriesStatus меняет статус серии: active и paused меняются местами,
// незавершенная серия может быть отменена. Вхождения не затрагиваются.
func (s *Service) UpdateSeriesStatus(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64, status string) (*models.SeriesResponse, error) {
	s.logger.Info("UpdateSeriesStatus: tenant=%s, series=%d, status=%s", tenantID, seriesID, status)

	next := domain.SeriesStatus(status)
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var series *domain.RecurringSeries
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		series, err = s.loadSeries(txCtx, tenantID, actor, seriesID)
		if err != nil {
			return err
		}

		if !series.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateSeriesStatus: series id=%d cannot move from %s to %s", seriesID, series.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, series.Status, next)
		}

		if err := s.recurringRepo.UpdateSeriesStatus(txCtx, tenantID, seriesID, next); err != nil {
			s.logger.Error("UpdateSeriesStatus: failed to update series id=%d: %v", seriesID, err)
			return fmt.Errorf("%w: UpdateSeriesStatus - update: %w", ErrInternal, err)
		}
		series.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	instances, err := s.recurringRepo.ListInstances(ctx, tenantID, seriesID)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSeriesStatus - list instances: %w", ErrInternal, err)
	}

	return models.FromDomainSeries(series, instances), nil
}

// materialize создает бронирование вхождения через журнал
// Возвращает nil-бронирование, если вхождение пропущено
func (s *Service) materialize(
	ctx context.Context,
	actor domain.Actor,
	series *domain.RecurringSeries,
	inst *domain.RecurringInstance,
) (*domain.Booking, error) {
	created, err := s.bookingCreator.Execute(ctx, &create_booking.Request{
		TenantID:            series.TenantID,
		Actor:               actor,
		ServiceID:           series.ServiceID,
		StaffID:             series.StaffID,
		StartAt:             inst.ScheduledAt,
		CustomerEmail:       series.CustomerEmail,
		Source:              domain.SourceRecurring,
		RecurringInstanceID: &inst.ID,
	})

	switch {
	case err == nil:
		inst.Status = domain.InstanceConfirmed
		inst.BookingID = &created.Booking.ID
		inst.SkipReason = nil
	case domain.IsDomainError(err):
		reason := err.Error()
		s.logger.Warn("MaterializeInstance: instance id=%d skipped: %s", inst.ID, reason)
		inst.Status = domain.InstanceSkipped
		inst.SkipReason = &reason
	default:
		s.logger.Error("MaterializeInstance: booking failed for instance id=%d: %v", inst.ID, err)
		return nil, err
	}

	if err := s.recurringRepo.UpdateInstance(ctx, inst); err != nil {
		s.logger.Error("MaterializeInstance: failed to update instance id=%d: %v", inst.ID, err)
		return nil, fmt.Errorf("%w: MaterializeInstance - update instance: %w", ErrInternal, err)
	}

	if created == nil {
		return nil, nil
	}
	return created.Booking, nil
}

// completeIfDone переводит активную серию в completed, когда не осталось заготовок
func (s *Service) completeIfDone(ctx context.Context, tenantID string, seriesID int64) (domain.SeriesStatus, error) {
	var status domain.SeriesStatus
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		series, err := s.recurringRepo.GetSeries(txCtx, tenantID, seriesID)
		if err != nil {
			return fmt.Errorf("%w: completeIfDone - get series: %w", ErrInternal, err)
		}
		status = series.Status

		instances, err := s.recurringRepo.ListInstances(txCtx, tenantID, seriesID)
		if err != nil {
			return fmt.Errorf("%w: completeIfDone - list instances: %w", ErrInternal, err)
		}
		for _, inst := range instances {
			if inst.IsScheduled() {
				return nil
			}
		}

		if series.Status != domain.SeriesActive {
			return nil
		}
		if err := s.recurringRepo.UpdateSeriesStatus(txCtx, tenantID, seriesID, domain.SeriesCompleted); err != nil {
			return fmt.Errorf("%w: completeIfDone - update series: %w", ErrInternal, err)
		}
		status = domain.SeriesCompleted
		return nil
	})
	return status, err
}

// loadSeries получает серию и проверяет доступ
func (s *Service) loadSeries(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64) (*domain.RecurringSeries, error) {
	series, err := s.recurringRepo.GetSeries(ctx, tenantID, seriesID)
	if err != nil {
		if errors.Is(err, recurringRepo.ErrSeriesNotFound) {
			s.logger.Warn("loadSeries: series id=%d not found", seriesID)
			return nil, ErrSeriesNotFound
		}
		s.logger.Error("loadSeries: failed to get series id=%d: %v", seriesID, err)
		return nil, fmt.Errorf("%w: get series: %w", ErrInternal, err)
	}

	if !actor.CanActFor(series.CustomerEmail) {
		s.logger.Warn("loadSeries: access denied for %s to series id=%d", actor.Email, seriesID)
		return nil, ErrAccessDenied
	}

	return series, nil
}
