package earlier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках наблюдателя
	ErrInternal = errors.New("earlier.watcher: internal error")
)
