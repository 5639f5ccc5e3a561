package lock

import "errors"

var (
	// ErrNoTransaction возвращается при попытке взять транзакционную блокировку вне транзакции
	ErrNoTransaction = errors.New("lock.repository: advisory lock requires a transaction")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("lock.repository: failed to execute query")
)
