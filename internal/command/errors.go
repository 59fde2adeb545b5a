package command

import (
	"errors"
	"fmt"

	"github.com/nibzard/cathy-go/internal/datetime"
	"github.com/nibzard/cathy-go/internal/task"
)

// Kind classifies a command failure. Every kind is recoverable.
type Kind int

const (
	KindSyntax Kind = iota + 1
	KindValidation
	KindDateTime
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindValidation:
		return "validation"
	case KindDateTime:
		return "datetime"
	case KindPersistence:
		return "persistence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a user-facing failure with a kind. Msg is shown to the user; Err, when
// set, is the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Syntax returns a syntax error with msg.
func Syntax(msg string) *Error {
	return &Error{Kind: KindSyntax, Msg: msg}
}

// Syntaxf returns a syntax error with a formatted message.
func Syntaxf(format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Msg: fmt.Sprintf(format, args...)}
}

func validation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// dateTime wraps a datetime failure. The cause's message already carries guidance.
func dateTime(err error) *Error {
	return &Error{Kind: KindDateTime, Err: err}
}

// KindOf classifies err. Errors without an explicit kind count as validation errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	var pe *datetime.ParseError
	if errors.As(err, &pe) || errors.Is(err, task.ErrTimeBackwards) {
		return KindDateTime
	}
	return KindValidation
}
