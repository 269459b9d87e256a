// Package errors gives sprout's failures machine-readable codes.
//
// Core packages return *[Error] values. Callers branch on the code with [Is]
// instead of matching message text, and the CLI turns codes into exit
// statuses with [ExitCode].
//
// # Error Codes
//
//   - SEQUENCE_TOO_LARGE: a generation would exceed the length ceiling
//   - INVALID_*: bad flags, presets, actions or colors
//   - NOT_FOUND, FILE_NOT_FOUND: unknown preset or missing preset file
//   - UNBALANCED_STACK: a pop with no saved pose under strict brackets
//   - DISPLAY: the display surface failed to present a frame
//
// # Usage
//
//	seq, err := grammar.Expand(axiom, rules, n)
//	if errors.Is(err, errors.ErrCodeSequenceTooLarge) {
//		// ask for fewer generations
//	}
//
//	return errors.Wrap(errors.ErrCodeDisplay, err, "present frame %d", i)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Input validation
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"
	ErrCodeInvalidAction Code = "INVALID_ACTION"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"

	// Grammar
	ErrCodeSequenceTooLarge Code = "SEQUENCE_TOO_LARGE"

	// Turtle
	ErrCodeUnbalancedStack Code = "UNBALANCED_STACK"

	// Lookup
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Display
	ErrCodeDisplay Code = "DISPLAY"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Usage reports whether c blames the request rather than the run: a bad
// flag, preset or grammar that the user can fix and retry.
func (c Code) Usage() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidPreset, ErrCodeInvalidAction, ErrCodeInvalidColor,
		ErrCodeSequenceTooLarge, ErrCodeNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause, for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with code that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain has code, so a preset
// failure wrapping an INVALID_COLOR still matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes, for printing to a user.
// Causes are kept: "preset \"tree\": unknown action \"fly\"".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// ExitCode maps err to a process exit status: 0 for nil, 2 when the outermost
// code is a usage error, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case GetCode(err).Usage():
		return 2
	default:
		return 1
	}
}
