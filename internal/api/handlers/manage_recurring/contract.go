package manage_recurring

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/recurring/models"
)

type RecurringService interface {
	GetSeries(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64) (*models.SeriesResponse, error)
	MaterializeSeries(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64) (*models.MaterializeResponse, error)
	UpdateSeriesStatus(ctx context.Context, tenantID string, actor domain.Actor, seriesID int64, status string) (*models.SeriesResponse, error)
	MaterializeInstance(ctx context.Context, tenantID string, actor domain.Actor, instanceID int64) (*models.InstanceResponse, error)
	CancelInstance(ctx context.Context, tenantID string, actor domain.Actor, instanceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
