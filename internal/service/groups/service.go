package groups

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	groupRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/group"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups/models"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// Service сервис групповых записей
// Инвариант CurrentParticipants <= MaxParticipants держится условным UPDATE в репозитории
type Service struct {
	groupRepo        GroupRepository
	bookingCanceller BookingCanceller
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	groupRepo GroupRepository,
	bookingCanceller BookingCanceller,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		groupRepo:        groupRepo,
		bookingCanceller: bookingCanceller,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetByID возвращает группу с участниками
func (s *Service) GetByID(ctx context.Context, tenantID string, actor domain.Actor, groupID int64) (*models.GroupResponse, error) {
	s.logger.Info("GetGroup: tenant=%s, group=%d", tenantID, groupID)

	group, err := s.loadGroup(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	participants, err := s.groupRepo.ListParticipants(ctx, tenantID, groupID)
	if err != nil {
		s.logger.Error("GetGroup: failed to list participants of group=%d: %v", groupID, err)
		return nil, fmt.Errorf("%w: GetByID - list participants: %w", ErrInternal, err)
	}
	group.Participants = participants

	if !canView(actor, group) {
		s.logger.Warn("GetGroup: access denied for %s to group id=%d", actor.Email, groupID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainGroup(group), nil
}

// AddParticipant добавляет участника, если есть свободное место
func (s *Service) AddParticipant(ctx context.Context, tenantID string, actor domain.Actor, groupID int64, req *models.ParticipantRequest) (*models.ParticipantResponse, error) {
	s.logger.Info("AddParticipant: tenant=%s, group=%d, email=%s", tenantID, groupID, req.Email)

	name := strings.TrimSpace(req.Name)
	email := domain.NormalizeEmail(req.Email)
	if name == "" || !validate.Email(email) {
		return nil, fmt.Errorf("%w: name and a valid email are required", ErrInvalidInput)
	}

	var result *domain.Participant
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		group, err := s.loadGroup(txCtx, tenantID, groupID)
		if err != nil {
			return err
		}

		if !actor.CanActFor(group.PrimaryEmail) && !actor.Owns(email) {
			s.logger.Warn("AddParticipant: access denied for %s to group id=%d", actor.Email, groupID)
			return ErrAccessDenied
		}

		if group.IsCancelled() {
			return ErrGroupCancelled
		}

		exists, err := s.groupRepo.HasActiveParticipant(txCtx, tenantID, groupID, email)
		if err != nil {
			s.logger.Error("AddParticipant: failed to check participant: %v", err)
			return fmt.Errorf("%w: AddParticipant - check participant: %w", ErrInternal, err)
		}
		if exists {
			s.logger.Warn("AddParticipant: %s is already in group id=%d", email, groupID)
			return ErrDuplicateParticipant
		}

		current, err := s.groupRepo.IncrementParticipants(txCtx, tenantID, groupID)
		if err != nil {
			if errors.Is(err, groupRepo.ErrGroupFull) {
				s.logger.Warn("AddParticipant: group id=%d is full (%d/%d)", groupID, group.CurrentParticipants, group.MaxParticipants)
				return ErrGroupFull
			}
			s.logger.Error("AddParticipant: failed to reserve place in group id=%d: %v", groupID, err)
			return fmt.Errorf("%w: AddParticipant - increment: %w", ErrInternal, err)
		}

		added, err := s.groupRepo.AddParticipant(txCtx, &domain.Participant{
			TenantID: tenantID,
			GroupID:  groupID,
			Name:     name,
			Email:    email,
			Phone:    req.Phone,
			Status:   domain.ParticipantConfirmed,
		})
		if err != nil {
			s.logger.Error("AddParticipant: failed to add participant: %v", err)
			return fmt.Errorf("%w: AddParticipant - insert: %w", ErrInternal, err)
		}

		s.logger.Info("AddParticipant: group id=%d now has %d/%d participants", groupID, current, group.MaxParticipants)
		result = added
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainParticipant(result), nil
}

// CancelParticipant отменяет участие и освобождает место
func (s *Service) CancelParticipant(ctx context.Context, tenantID string, actor domain.Actor, groupID, participantID int64) error {
	s.logger.Info("CancelParticipant: tenant=%s, group=%d, participant=%d", tenantID, groupID, participantID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		group, err := s.loadGroup(txCtx, tenantID, groupID)
		if err != nil {
			return err
		}

		participant, err := s.groupRepo.GetParticipant(txCtx, tenantID, groupID, participantID)
		if err != nil {
			if errors.Is(err, groupRepo.ErrParticipantNotFound) {
				return ErrParticipantNotFound
			}
			return fmt.Errorf("%w: CancelParticipant - get participant: %w", ErrInternal, err)
		}

		if !actor.CanActFor(group.PrimaryEmail) && !actor.Owns(participant.Email) {
			return ErrAccessDenied
		}

		if group.IsCancelled() {
			return ErrGroupCancelled
		}

		if participant.Status == domain.ParticipantCancelled {
			return ErrParticipantCancelled
		}

		if err := s.groupRepo.CancelParticipant(txCtx, tenantID, groupID, participantID); err != nil {
			if errors.Is(err, groupRepo.ErrParticipantNotFound) {
				return ErrParticipantCancelled
			}
			return fmt.Errorf("%w: CancelParticipant - update participant: %w", ErrInternal, err)
		}

		if err := s.groupRepo.DecrementParticipants(txCtx, tenantID, groupID); err != nil {
			s.logger.Error("CancelParticipant: failed to release place in group id=%d: %v", groupID, err)
			return fmt.Errorf("%w: CancelParticipant - decrement: %w", ErrInternal, err)
		}

		return nil
	})
}

// Cancel отменяет группу вместе с опорным бронированием
func (s *Service) Cancel(ctx context.Context, tenantID string, actor domain.Actor, groupID int64) error {
	s.logger.Info("CancelGroup: tenant=%s, group=%d, actor=%s", tenantID, groupID, actor.Email)

	if !actor.IsAdmin() {
		return ErrAccessDenied
	}

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		group, err := s.loadGroup(txCtx, tenantID, groupID)
		if err != nil {
			return err
		}

		if group.IsCancelled() {
			return ErrGroupCancelled
		}

		if err := s.groupRepo.UpdateStatus(txCtx, tenantID, groupID, domain.GroupCancelled); err != nil {
			s.logger.Error("CancelGroup: failed to update group id=%d: %v", groupID, err)
			return fmt.Errorf("%w: Cancel - update status: %w", ErrInternal, err)
		}

		resp, err := s.bookingCanceller.Execute(txCtx, &cancel_booking.Request{
			TenantID:  tenantID,
			Actor:     actor,
			BookingID: group.BookingID,
			WithGroup: true,
		})
		switch {
		case err == nil:
			cancelled = resp.Booking
		case errors.Is(err, cancel_booking.ErrAlreadyCancelled):
			s.logger.Warn("CancelGroup: backing booking id=%d was already cancelled", group.BookingID)
		default:
			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	if cancelled != nil {
		s.bookingCanceller.NotifyCancelled(ctx, cancelled, actor)
	}

	s.logger.Info("CancelGroup: group id=%d cancelled", groupID)
	return nil
}

func (s *Service) loadGroup(ctx context.Context, tenantID string, groupID int64) (*domain.GroupBooking, error) {
	group, err := s.groupRepo.GetByID(ctx, tenantID, groupID)
	if err != nil {
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			s.logger.Warn("loadGroup: group id=%d not found", groupID)
			return nil, ErrGroupNotFound
		}
		s.logger.Error("loadGroup: failed to get group id=%d: %v", groupID, err)
		return nil, fmt.Errorf("%w: get group: %w", ErrInternal, err)
	}
	return group, nil
}

// canView администратор, организатор или участник группы
func canView(actor domain.Actor, group *domain.GroupBooking) bool {
	if actor.CanActFor(group.PrimaryEmail) {
		return true
	}
	for _, p := range group.Participants {
		if actor.Owns(p.Email) {
			return true
		}
	}
	return false
}
