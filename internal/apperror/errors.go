// Package apperror defines the error kinds shared by the ledger and the menu catalog.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a recoverable domain error.
type Kind int

const (
	// KindUnknown is any error that is not one of the domain kinds.
	KindUnknown Kind = iota
	// KindInvalidState is a mutation attempted on a bill that is not open.
	KindInvalidState
	// KindInvalidInput is a malformed or out-of-range argument.
	KindInvalidInput
	// KindNotFound is an unknown bill, bill line or menu item.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidState:
		return "InvalidState"
	case KindInvalidInput:
		return "InvalidInput"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Sentinels. Concrete errors wrap one of these; test with errors.Is.
var (
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// InvalidState returns an error wrapping ErrInvalidState.
func InvalidState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}

// InvalidInput returns an error wrapping ErrInvalidInput.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// KindOf reports the kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}
