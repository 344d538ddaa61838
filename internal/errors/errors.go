// Package errors wraps github.com/go-errors/errors so that errors created or
// wrapped inside the application carry a stack trace.
package errors

import (
	"fmt"

	"github.com/go-errors/errors"
)

// Errorf formats a new error with a stack trace.
func Errorf(format string, a ...interface{}) error {
	return errors.Errorf(format, a...)
}

// Wrap attaches a stack trace to err, skipping the wrapper frame.
func Wrap(err interface{}) error {
	if err == nil {
		return nil
	}

	return errors.Wrap(err, 1)
}

// Wrapf is Wrap with a formatted message prefix.
func Wrapf(err interface{}, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}

	return errors.WrapPrefix(err, fmt.Sprintf(format, a...), 1)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Stack returns the formatted stack trace of err, or "" when err was not
// created by this package.
func Stack(err error) string {
	var e *errors.Error
	if As(err, &e) {
		return string(e.Stack())
	}
	return ""
}
