package create_group_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
)

// UseCase use case для создания групповой записи
// Группа занимает один интервал мастера: опорное бронирование создается через журнал
// бронирований в той же транзакции, что и сама группа.
type UseCase struct {
	bookingCreator BookingCreator
	bookingRepo    BookingRepository
	groupRepo      GroupRepository
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingCreator BookingCreator,
	bookingRepo BookingRepository,
	groupRepo GroupRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingCreator: bookingCreator,
		bookingRepo:    bookingRepo,
		groupRepo:      groupRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет use case создания групповой записи
// Если валидных участников больше MaxParticipants, запрос отклоняется целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateGroupBooking: tenant=%s, service=%d, staff=%d, start=%s, max=%d, participants=%d",
		req.TenantID, req.ServiceID, req.StaffID, req.StartAt.Format(time.RFC3339), req.MaxParticipants, len(req.Participants))

	// 1. Валидация
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateGroupBooking: validation failed: %v", err)
		return nil, err
	}

	participants := validParticipants(req.Participants)
	if len(participants) > req.MaxParticipants {
		uc.logger.Warn("CreateGroupBooking: %d participants for %d places", len(participants), req.MaxParticipants)
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyParticipants, len(participants), req.MaxParticipants)
	}

	// 2. Опорное бронирование, группа и участники в одной транзакции
	var result *domain.GroupBooking
	var booking *domain.Booking
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingCreator.Execute(txCtx, &create_booking.Request{
			TenantID:      req.TenantID,
			Actor:         req.Actor,
			ServiceID:     req.ServiceID,
			StaffID:       req.StaffID,
			StartAt:       req.StartAt,
			CustomerEmail: req.PrimaryEmail,
			Source:        domain.SourceGroup,
		})
		if err != nil {
			return err
		}
		booking = created.Booking

		group, err := uc.groupRepo.Create(txCtx, &domain.GroupBooking{
			TenantID:            req.TenantID,
			ServiceID:           req.ServiceID,
			StaffID:             req.StaffID,
			BookingID:           booking.ID,
			PrimaryEmail:        booking.CustomerEmail,
			StartAt:             booking.StartAt,
			EndAt:               booking.EndAt,
			MaxParticipants:     req.MaxParticipants,
			CurrentParticipants: len(participants),
			PricePerPersonCents: req.PricePerPersonCents,
			Status:              domain.GroupConfirmed,
			CreatedBy:           req.Actor.Email,
		})
		if err != nil {
			uc.logger.Error("CreateGroupBooking: failed to create group: %v", err)
			return fmt.Errorf("%w: failed to create group: %w", ErrInternal, err)
		}

		if err := uc.bookingRepo.SetGroupBookingID(txCtx, req.TenantID, booking.ID, group.ID); err != nil {
			uc.logger.Error("CreateGroupBooking: failed to link booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to link booking: %w", ErrInternal, err)
		}
		booking.GroupBookingID = &group.ID

		group.Participants = make([]*domain.Participant, 0, len(participants))
		for _, p := range participants {
			added, err := uc.groupRepo.AddParticipant(txCtx, &domain.Participant{
				TenantID: req.TenantID,
				GroupID:  group.ID,
				Name:     p.Name,
				Email:    p.Email,
				Phone:    p.Phone,
				Status:   domain.ParticipantConfirmed,
			})
			if err != nil {
				uc.logger.Error("CreateGroupBooking: failed to add participant %s: %v", p.Email, err)
				return fmt.Errorf("%w: failed to add participant: %w", ErrInternal, err)
			}
			group.Participants = append(group.Participants, added)
		}

		result = group
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateGroupBooking: group id=%d created on booking id=%d with %d participants",
		result.ID, booking.ID, result.CurrentParticipants)

	uc.bookingCreator.NotifyCreated(ctx, booking, domain.SourceGroup)

	return &Response{Group: result}, nil
}
