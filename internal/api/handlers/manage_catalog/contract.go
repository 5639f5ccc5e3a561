package manage_catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/catalog/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, tenantID string, actor domain.Actor, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	GetService(ctx context.Context, tenantID string, actor domain.Actor, id int64) (*models.ServiceResponse, error)
	UpdateService(ctx context.Context, tenantID string, actor domain.Actor, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)

	CreateStaff(ctx context.Context, tenantID string, actor domain.Actor, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	ListStaff(ctx context.Context, tenantID string, actor domain.Actor) ([]*models.StaffResponse, error)
	SetStaffActive(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, active bool) error

	ListSchedules(ctx context.Context, tenantID string, actor domain.Actor, staffID int64) ([]*models.ScheduleResponse, error)
	AddSchedule(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, tenantID string, actor domain.Actor, scheduleID int64, req *models.ScheduleRequest) (*models.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, tenantID string, actor domain.Actor, scheduleID int64) error

	ListTimeOff(ctx context.Context, tenantID string, actor domain.Actor, staffID int64) ([]*models.TimeOffResponse, error)
	AddTimeOff(ctx context.Context, tenantID string, actor domain.Actor, staffID int64, req *models.TimeOffRequest) (*models.TimeOffResponse, error)
	DeleteTimeOff(ctx context.Context, tenantID string, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
