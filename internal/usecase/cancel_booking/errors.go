package cancel_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено в салоне
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("%w: booking is already cancelled", domain.ErrConflict)

	// ErrPartOfGroup возвращается при прямой отмене опорного бронирования группы
	ErrPartOfGroup = fmt.Errorf("%w: booking backs a group booking", domain.ErrConflict)

	// ErrNotOwner возвращается, когда клиент отменяет чужое бронирование
	ErrNotOwner = fmt.Errorf("%w: booking belongs to another customer", domain.ErrForbidden)

	// ErrTooLateToCancel возвращается, когда до начала осталось меньше окна отмены
	ErrTooLateToCancel = fmt.Errorf("%w: cancellation window has passed", domain.ErrTooLate)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
