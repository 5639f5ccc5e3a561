package ban

import "errors"

var (
	// ErrBanNotFound возвращается, когда блокировка не найдена
	ErrBanNotFound = errors.New("ban.repository: ban not found")

	// ErrBanExists возвращается при повторной блокировке того же email
	ErrBanExists = errors.New("ban.repository: ban already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ban.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ban.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ban.repository: failed to scan row")
)
