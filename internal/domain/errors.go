package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks errors caused by a bad request
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups of records that do not exist
	ErrNotFound = errors.New("not found")
)

// inputError carries a caller-facing message and matches ErrInvalidInput
type inputError struct {
	msg string
}

func (e *inputError) Error() string {
	return e.msg
}

func (e *inputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidInputf formats a validation error that matches ErrInvalidInput
// The message is kept as written so it can be shown to the caller
func InvalidInputf(format string, args ...any) error {
	return &inputError{msg: fmt.Sprintf(format, args...)}
}
