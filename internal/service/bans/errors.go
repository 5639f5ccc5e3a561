package bans

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

var (
	// ErrBanNotFound возвращается, когда блокировка не найдена
	ErrBanNotFound = fmt.Errorf("%w: ban not found", domain.ErrNotFound)

	// ErrAlreadyBanned возвращается при повторной блокировке того же email
	ErrAlreadyBanned = fmt.Errorf("%w: customer is already banned", domain.ErrConflict)

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = fmt.Errorf("%w: admin role required", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректном email
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bans.service: internal error")
)
