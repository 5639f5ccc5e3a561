package create_group_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном шаблоне группы
	ErrInvalidInput = fmt.Errorf("%w: invalid group booking", domain.ErrValidation)

	// ErrTooManyParticipants возвращается, когда участников больше, чем мест
	ErrTooManyParticipants = fmt.Errorf("%w: more participants than maxParticipants", domain.ErrCapacityExceeded)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_group_booking: internal error")
)
