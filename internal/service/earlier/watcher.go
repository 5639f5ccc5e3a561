package earlier

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
)

// Watcher подбирает освободившиеся интервалы для активных запросов на более раннюю запись
type Watcher struct {
	earlierRepo  EarlierRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	location     *time.Location
	logger       Logger
	timeProvider TimeProvider
}

// NewWatcher создает наблюдателя
// publisher может быть nil
func NewWatcher(
	earlierRepo EarlierRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Watcher {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Watcher{
		earlierRepo:  earlierRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		location:     location,
		logger:       logger,
		timeProvider: realTimeProvider{},
	}
}

// OnBookingCancelled выполняет не более одного запроса для освободившегося интервала.
// Просроченные кандидаты, найденные по пути, помечаются expired.
func (w *Watcher) OnBookingCancelled(ctx context.Context, slot domain.FreedSlot) error {
	now := w.timeProvider.Now()

	if !slot.StartAt.After(now) {
		w.logger.Info("EarlierWatch: freed slot %s is in the past, skipping", slot.StartAt.Format(time.RFC3339))
		return nil
	}

	var fulfilled *domain.EarlierCandidate
	err := w.txManager.Do(ctx, func(txCtx context.Context) error {
		candidates, err := w.earlierRepo.ListActiveCandidates(txCtx, slot.TenantID, slot.StaffID)
		if err != nil {
			w.logger.Error("EarlierWatch: failed to list candidates for staff=%d: %v", slot.StaffID, err)
			return fmt.Errorf("%w: OnBookingCancelled - list candidates: %w", ErrInternal, err)
		}

		expired := make([]int64, 0)
		for _, c := range candidates {
			if c.Request.IsExpiredAt(now) {
				expired = append(expired, c.Request.ID)
				continue
			}
			if fulfilled == nil && w.matches(c, slot) {
				fulfilled = c
			}
		}

		if len(expired) > 0 {
			if _, err := w.earlierRepo.MarkExpired(txCtx, slot.TenantID, expired, now); err != nil {
				w.logger.Error("EarlierWatch: failed to expire %d requests: %v", len(expired), err)
				return fmt.Errorf("%w: OnBookingCancelled - mark expired: %w", ErrInternal, err)
			}
			w.logger.Info("EarlierWatch: expired %d requests", len(expired))
		}

		if fulfilled == nil {
			return nil
		}

		err = w.earlierRepo.MarkFulfilled(txCtx, slot.TenantID, fulfilled.Request.ID, slot.StartAt.UTC(), slot.StaffID, now)
		if err != nil {
			w.logger.Error("EarlierWatch: failed to fulfil request id=%d: %v", fulfilled.Request.ID, err)
			return fmt.Errorf("%w: OnBookingCancelled - mark fulfilled: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if fulfilled == nil {
		w.logger.Info("EarlierWatch: no matching request for freed slot of staff=%d at %s", slot.StaffID, slot.StartAt.Format(time.RFC3339))
		return nil
	}

	w.logger.Info("EarlierWatch: request id=%d of %s offered slot %s", fulfilled.Request.ID, fulfilled.Request.CustomerEmail, slot.StartAt.Format(time.RFC3339))
	w.metrics.IncEarlierFulfilled()
	w.publish(ctx, fulfilled, slot, now)

	return nil
}

// ExpireStale помечает expired все активные запросы с истекшим сроком
func (w *Watcher) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	count, err := w.earlierRepo.ExpireStale(ctx, now)
	if err != nil {
		w.logger.Error("ExpireStale: failed: %v", err)
		return 0, fmt.Errorf("%w: ExpireStale: %w", ErrInternal, err)
	}
	if count > 0 {
		w.logger.Info("ExpireStale: %d requests expired", count)
	}
	return count, nil
}

// matches проверяет, подходит ли освободившийся интервал кандидату
func (w *Watcher) matches(c *domain.EarlierCandidate, slot domain.FreedSlot) bool {
	if c.StaffID != slot.StaffID {
		return false
	}
	if !c.CurrentStartAt.After(slot.StartAt) {
		return false
	}
	if c.CurrentEndAt.Sub(c.CurrentStartAt) > slot.EndAt.Sub(slot.StartAt) {
		return false
	}
	if !slot.StartAt.Before(c.Request.ExpiresAt) {
		return false
	}
	if c.Request.DesiredDate != nil && !c.Request.FlexibleTiming {
		freedDate := slot.StartAt.In(w.location).Format(domain.DateFormat)
		if freedDate != c.Request.DesiredDate.Format(domain.DateFormat) {
			return false
		}
	}
	return true
}

func (w *Watcher) publish(ctx context.Context, c *domain.EarlierCandidate, slot domain.FreedSlot, now time.Time) {
	if w.publisher == nil {
		return
	}

	event := events.NewEvent(events.TypeEarlierFulfilled, now)
	event.TenantID = slot.TenantID
	event.StaffID = slot.StaffID
	event.BookingID = c.Request.CurrentBookingID
	event.Email = c.Request.CustomerEmail
	event.StartAt = slot.StartAt.UTC()
	event.EndAt = slot.StartAt.Add(c.CurrentEndAt.Sub(c.CurrentStartAt)).UTC()
	event.RequestID = c.Request.ID

	if err := w.publisher.Publish(ctx, event); err != nil {
		w.logger.Warn("EarlierWatch: failed to publish %s for request id=%d: %v", event.Type, c.Request.ID, err)
	}
}
