package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrStartInPast возвращается, когда клиент бронирует прошедшее время
	ErrStartInPast = fmt.Errorf("%w: start is in the past", domain.ErrValidation)

	// ErrForeignCustomer возвращается, когда клиент бронирует на чужой email
	ErrForeignCustomer = fmt.Errorf("%w: customers may only book for themselves", domain.ErrForbidden)

	// ErrCustomerBanned возвращается, когда клиент заблокирован в салоне
	ErrCustomerBanned = fmt.Errorf("%w: customer is banned", domain.ErrBanned)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда мастер не найден или неактивен
	ErrStaffNotFound = fmt.Errorf("%w: staff member not found", domain.ErrNotFound)

	// ErrSlotOverlap возвращается, когда интервал пересекается с подтвержденным бронированием мастера
	ErrSlotOverlap = fmt.Errorf("%w: staff member is already booked for this time", domain.ErrOverlap)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
