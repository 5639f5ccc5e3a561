package earlier

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос не найден или уже не активен
	ErrRequestNotFound = errors.New("earlier.repository: request not found")

	// ErrActiveRequestExists возвращается при нарушении уникальности активного запроса на бронирование
	ErrActiveRequestExists = errors.New("earlier.repository: active request already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("earlier.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("earlier.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("earlier.repository: failed to scan row")
)
