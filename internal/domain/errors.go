package domain

import "errors"

// Error kinds. Every domain failure returned by a usecase or service wraps exactly one of them,
// handlers translate the kind into an HTTP status.
var (
	ErrValidation       = errors.New("ValidationError")
	ErrNotFound         = errors.New("NotFoundError")
	ErrConflict         = errors.New("ConflictError")
	ErrOverlap          = errors.New("Overlap")
	ErrBanned           = errors.New("Banned")
	ErrTooLate          = errors.New("TooLate")
	ErrForbidden        = errors.New("Forbidden")
	ErrCapacityExceeded = errors.New("CapacityExceeded")
)

var kinds = []error{
	ErrValidation,
	ErrNotFound,
	ErrConflict,
	ErrOverlap,
	ErrBanned,
	ErrTooLate,
	ErrForbidden,
	ErrCapacityExceeded,
}

// KindOf returns the error kind wrapped by err, or nil for infrastructure failures
func KindOf(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// IsDomainError reports whether err carries one of the error kinds
func IsDomainError(err error) bool {
	return KindOf(err) != nil
}
