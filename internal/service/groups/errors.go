package groups

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrGroupNotFound возвращается, когда групповая запись не найдена
	ErrGroupNotFound = fmt.Errorf("%w: group booking not found", domain.ErrNotFound)

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = fmt.Errorf("%w: participant not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на группу
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrForbidden)

	// ErrGroupCancelled возвращается при изменении отмененной группы
	ErrGroupCancelled = fmt.Errorf("%w: group booking is cancelled", domain.ErrConflict)

	// ErrDuplicateParticipant возвращается, когда email уже записан в группу
	ErrDuplicateParticipant = fmt.Errorf("%w: participant with this email is already in the group", domain.ErrConflict)

	// ErrParticipantCancelled возвращается при повторной отмене участия
	ErrParticipantCancelled = fmt.Errorf("%w: participant is already cancelled", domain.ErrConflict)

	// ErrGroupFull возвращается, когда свободных мест нет
	ErrGroupFull = fmt.Errorf("%w: group is full", domain.ErrCapacityExceeded)

	// ErrInvalidInput возвращается при некорректных данных участника
	ErrInvalidInput = fmt.Errorf("%w: invalid participant", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("groups.service: internal error")
)
