package group

import "errors"

var (
	// ErrGroupNotFound возвращается, когда групповая запись не найдена
	ErrGroupNotFound = errors.New("group.repository: group booking not found")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("group.repository: participant not found")

	// ErrGroupFull возвращается, когда в группе нет свободных мест или она отменена
	ErrGroupFull = errors.New("group.repository: no capacity left")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("group.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("group.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("group.repository: failed to scan row")
)
