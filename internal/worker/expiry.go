// Package worker содержит фоновые задачи сервиса.
package worker

import (
	"context"
	"time"
)

// Expirer помечает просроченные запросы на более раннюю запись
type Expirer interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

const defaultExpiryInterval = time.Minute

// ExpiryWorker периодически запускает очистку просроченных запросов
type ExpiryWorker struct {
	expirer  Expirer
	interval time.Duration
	logger   Logger
	now      func() time.Time
}

// NewExpiryWorker создает воркер, interval <= 0 заменяется на минуту
func NewExpiryWorker(expirer Expirer, interval time.Duration, logger Logger) *ExpiryWorker {
	if interval <= 0 {
		interval = defaultExpiryInterval
	}
	return &ExpiryWorker{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run выполняет очистку каждые interval до отмены ctx
func (w *ExpiryWorker) Run(ctx context.Context) {
	w.logger.Info("ExpiryWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ExpiryWorker: stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет одну итерацию очистки
func (w *ExpiryWorker) RunOnce(ctx context.Context) {
	if _, err := w.expirer.ExpireStale(ctx, w.now()); err != nil {
		w.logger.Error("ExpiryWorker: sweep failed: %v", err)
	}
}
