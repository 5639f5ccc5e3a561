package bans

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	banRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/ban"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bans/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// Service сервис блокировок клиентов салона
type Service struct {
	banRepo BanRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса
func NewService(banRepo BanRepository, logger Logger) *Service {
	return &Service{
		banRepo: banRepo,
		logger:  logger,
	}
}

// Ban блокирует email, новые бронирования для него отклоняются
func (s *Service) Ban(ctx context.Context, tenantID string, actor domain.Actor, req *models.BanRequest) (*models.BanResponse, error) {
	s.logger.Info("Ban: tenant=%s, email=%s by %s", tenantID, req.Email, actor.Email)

	if !actor.IsAdmin() {
		s.logger.Warn("Ban: %s is not an admin", actor.Email)
		return nil, ErrAccessDenied
	}

	req.Email = domain.NormalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		s.logger.Warn("Ban: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	created, err := s.banRepo.Create(ctx, &domain.CustomerBan{
		TenantID:  tenantID,
		Email:     req.Email,
		Reason:    req.Reason,
		CreatedBy: actor.Email,
	})
	if err != nil {
		if errors.Is(err, banRepo.ErrBanExists) {
			s.logger.Warn("Ban: %s is already banned", req.Email)
			return nil, ErrAlreadyBanned
		}
		s.logger.Error("Ban: repository error: %v", err)
		return nil, fmt.Errorf("%w: Ban - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Ban: %s banned", created.Email)
	return models.FromDomainBan(created), nil
}

// Unban снимает блокировку
func (s *Service) Unban(ctx context.Context, tenantID string, actor domain.Actor, email string) error {
	s.logger.Info("Unban: tenant=%s, email=%s by %s", tenantID, email, actor.Email)

	if !actor.IsAdmin() {
		s.logger.Warn("Unban: %s is not an admin", actor.Email)
		return ErrAccessDenied
	}

	email = domain.NormalizeEmail(email)
	if err := s.banRepo.Delete(ctx, tenantID, email); err != nil {
		if errors.Is(err, banRepo.ErrBanNotFound) {
			s.logger.Warn("Unban: %s is not banned", email)
			return ErrBanNotFound
		}
		s.logger.Error("Unban: repository error: %v", err)
		return fmt.Errorf("%w: Unban - repository error: %w", ErrInternal, err)
	}

	return nil
}

// List возвращает все блокировки салона
func (s *Service) List(ctx context.Context, tenantID string, actor domain.Actor) ([]*models.BanResponse, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	bans, err := s.banRepo.List(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListBans: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	return models.FromDomainBanList(bans), nil
}
