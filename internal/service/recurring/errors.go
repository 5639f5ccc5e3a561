package recurring

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrSeriesNotFound возвращается, когда серия не найдена
	ErrSeriesNotFound = fmt.Errorf("%w: recurring series not found", domain.ErrNotFound)

	// ErrInstanceNotFound возвращается, когда вхождение не найдено
	ErrInstanceNotFound = fmt.Errorf("%w: recurring instance not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда клиент обращается к чужой серии
	ErrAccessDenied = fmt.Errorf("%w: series belongs to another customer", domain.ErrForbidden)

	// ErrInstanceNotScheduled возвращается, когда вхождение уже материализовано, пропущено или отменено
	ErrInstanceNotScheduled = fmt.Errorf("%w: instance is not scheduled", domain.ErrConflict)

	// ErrSeriesNotActive возвращается при материализации приостановленной или завершенной серии
	ErrSeriesNotActive = fmt.Errorf("%w: series is not active", domain.ErrConflict)

	// ErrInvalidTransition возвращается при недопустимой смене статуса серии
	ErrInvalidTransition = fmt.Errorf("%w: series status transition is not allowed", domain.ErrConflict)

	// ErrInvalidStatus возвращается при неизвестном статусе серии
	ErrInvalidStatus = fmt.Errorf("%w: unknown series status", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("recurring.service: internal error")
)
