// Package errors wraps github.com/pkg/errors, so that errors created here
// carry a stack trace which is printed for unexpected failures.
package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// New creates a new error based on message.
var New = errors.New

// Errorf creates an error based on a format string and values.
var Errorf = errors.Errorf

// Wrap annotates err with a message and a stack trace. If err is nil, Wrap
// returns nil.
var Wrap = errors.Wrap

// WithStack annotates err with a stack trace at the point WithStack was called.
var WithStack = errors.WithStack

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
