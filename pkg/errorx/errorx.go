// Package errorx provides errors that carry a registered integer code.
// The code determines the HTTP status and the external message when the
// error reaches a response writer; the wrapped cause stays internal.
package errorx

import (
	"errors"
	"fmt"
)

type withCode struct {
	err   error
	code  int
	cause error
}

// WithCode returns a new error carrying code.
func WithCode(code int, format string, args ...any) error {
	return &withCode{
		err:  fmt.Errorf(format, args...),
		code: code,
	}
}

// WrapC wraps err with a code and an annotation message.
// It returns nil when err is nil.
func WrapC(err error, code int, format string, args ...any) error {
	if err == nil {
		return nil
	}

	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		cause: err,
	}
}

func (w *withCode) Error() string {
	if w.cause == nil {
		return w.err.Error()
	}
	return w.err.Error() + ": " + w.cause.Error()
}

func (w *withCode) Unwrap() error { return w.cause }

// Code returns the code carried by the outermost coded error in err's
// chain, or UnknownCode.
func Code(err error) int {
	var w *withCode
	if errors.As(err, &w) {
		return w.code
	}
	return UnknownCode
}

// FieldViolator is implemented by errors that describe per-field input
// problems.
type FieldViolator interface {
	FieldViolations() map[string][]string
}

// FieldViolations returns the per-field messages of the first error in
// err's chain that implements FieldViolator, or nil.
func FieldViolations(err error) map[string][]string {
	var fv FieldViolator
	if errors.As(err, &fv) {
		return fv.FieldViolations()
	}
	return nil
}
