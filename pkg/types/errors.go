package types

import "errors"

// Catalog operation errors. Operations wrap these with the offending key,
// so callers should compare with errors.Is.
var (
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyBorrowed = errors.New("book already borrowed by customer")
	ErrNotBorrowed     = errors.New("book not borrowed by customer")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Configuration errors.
var (
	ErrLateDaysNegative = errors.New("late_days must not be negative")
	ErrLogLevelUnknown  = errors.New("unknown log level")
)

// IsUserError reports whether err is one of the catalog errors caused by the
// caller's input rather than by the environment.
func IsUserError(err error) bool {
	for _, target := range []error{
		ErrDuplicateKey,
		ErrNotFound,
		ErrAlreadyBorrowed,
		ErrNotBorrowed,
		ErrInvalidArgument,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
