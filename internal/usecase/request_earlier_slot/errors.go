package request_earlier_slot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid earlier appointment request", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда текущее бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: current booking not found", domain.ErrNotFound)

	// ErrNotOwner возвращается, когда клиент ссылается на чужое бронирование
	ErrNotOwner = fmt.Errorf("%w: booking belongs to another customer", domain.ErrForbidden)

	// ErrBookingNotEligible возвращается для отмененного или прошедшего бронирования
	ErrBookingNotEligible = fmt.Errorf("%w: booking must be confirmed and in the future", domain.ErrValidation)

	// ErrAlreadyRequested возвращается, когда для бронирования уже есть активный запрос
	ErrAlreadyRequested = fmt.Errorf("%w: an active request already exists for this booking", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_earlier_slot: internal error")
)
