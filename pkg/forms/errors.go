package forms

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Domain error kinds. Handlers map these onto HTTP statuses; the services
// themselves never retry, each operation is a single storage transaction.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)

// ValidationError carries a human-readable message for a client-error
// response (missing name, unknown field type, missing options, bad JSON).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isDuplicateKey detects a unique-constraint violation from the underlying
// driver. Postgres reports "duplicate key", sqlite "UNIQUE constraint".
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
