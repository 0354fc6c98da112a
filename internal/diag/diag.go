// Package diag carries the two failure shapes of the evaluator: plain
// message-only errors for sequence-local conditions, and span-carrying
// errors for anything that flows through evaluation.
package diag

import (
	"fmt"
	"quill/internal/syntax"
)

// Error is a failure tied to a source span. Evaluation short-circuits on
// the first one; there is no partial-success variant.
type Error struct {
	Span    syntax.Span
	Message string
}

func (e *Error) Error() string {
	if e.Span.IsDetached() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Errorf creates a span-carrying error.
func Errorf(span syntax.Span, format string, a ...interface{}) *Error {
	return &Error{Span: span, Message: fmt.Sprintf(format, a...)}
}

// At lifts a message-only error to the given span. Errors that already
// carry a span keep it.
func At(err error, span syntax.Span) error {
	if err == nil {
		return nil
	}
	if spanned, ok := err.(*Error); ok {
		return spanned
	}
	return &Error{Span: span, Message: err.Error()}
}
