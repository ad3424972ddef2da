package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a model, variant or customer does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks errors caused by the request rather than the system.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned when a unique identifier is already taken.
	ErrConflict = errors.New("conflict")
)

// InputError is a rejected request. Its message is shown to the client as is
// and it matches ErrInvalidInput.
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *InputError) Unwrap() error { return e.Err }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(format string, args ...interface{}) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}
