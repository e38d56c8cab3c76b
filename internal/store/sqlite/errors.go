package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
)

// Sentinel errors for common store conditions, grounded on the
// teacher's internal/storage/sqlite/errors.go.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID indicates an ID that is empty or otherwise malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrConflict indicates a unique constraint violation or
	// conflicting state (e.g. answering an already-answered question).
	ErrConflict = errors.New("conflict")

	// ErrCycle indicates a dependency edge would create a cycle.
	ErrCycle = errors.New("dependency cycle detected")
)

// wrapDBError wraps err with operation context, converting
// sql.ErrNoRows to ErrNotFound for consistent handling up the stack.
func wrapDBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func wrapDBErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	op := fmt.Sprintf(format, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsCycle reports whether err is or wraps ErrCycle.
func IsCycle(err error) bool { return errors.Is(err, ErrCycle) }

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
