package create_recurring_series

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректном шаблоне серии
	ErrInvalidInput = fmt.Errorf("%w: invalid recurring template", domain.ErrValidation)

	// ErrForeignCustomer возвращается, когда клиент создает серию на чужой email
	ErrForeignCustomer = fmt.Errorf("%w: customers may only book for themselves", domain.ErrForbidden)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = fmt.Errorf("%w: staff member not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_series: internal error")
)
