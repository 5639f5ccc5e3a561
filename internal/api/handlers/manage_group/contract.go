package manage_group

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups/models"
)

type GroupService interface {
	GetByID(ctx context.Context, tenantID string, actor domain.Actor, groupID int64) (*models.GroupResponse, error)
	AddParticipant(ctx context.Context, tenantID string, actor domain.Actor, groupID int64, req *models.ParticipantRequest) (*models.ParticipantResponse, error)
	CancelParticipant(ctx context.Context, tenantID string, actor domain.Actor, groupID, participantID int64) error
	Cancel(ctx context.Context, tenantID string, actor domain.Actor, groupID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
