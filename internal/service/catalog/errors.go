package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = fmt.Errorf("%w: staff member not found", domain.ErrNotFound)

	// ErrScheduleNotFound возвращается, когда интервал расписания не найден
	ErrScheduleNotFound = fmt.Errorf("%w: schedule not found", domain.ErrNotFound)

	// ErrTimeOffNotFound возвращается, когда отсутствие не найдено
	ErrTimeOffNotFound = fmt.Errorf("%w: time off not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = fmt.Errorf("%w: admin role required", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrScheduleOverlap возвращается, когда интервал пересекается с другим в тот же день недели
	ErrScheduleOverlap = fmt.Errorf("%w: schedule overlaps another interval on the same weekday", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog.service: internal error")
)
