package manage_bans

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bans/models"
)

type BanService interface {
	Ban(ctx context.Context, tenantID string, actor domain.Actor, req *models.BanRequest) (*models.BanResponse, error)
	Unban(ctx context.Context, tenantID string, actor domain.Actor, email string) error
	List(ctx context.Context, tenantID string, actor domain.Actor) ([]*models.BanResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
