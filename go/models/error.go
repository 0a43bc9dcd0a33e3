package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// The pipeline aborts at the first error; these types tell the caller
// which stage gave up. Unwrap with errors.Cause to test the kind.

// FormatError covers bad identification bytes and inconsistent or
// truncated program header table geometry.
type FormatError struct {
	msg string
}

func (e *FormatError) Error() string { return e.msg }

func Formatf(format string, args ...interface{}) error {
	return errors.WithStack(&FormatError{fmt.Sprintf(format, args...)})
}

// SelectionError means no segment satisfied the filter while the run
// required non-empty output.
type SelectionError struct {
	msg string
}

func (e *SelectionError) Error() string { return e.msg }

func Selectionf(format string, args ...interface{}) error {
	return errors.WithStack(&SelectionError{fmt.Sprintf(format, args...)})
}

// LayoutError covers degenerate or policy-violating address spans.
type LayoutError struct {
	msg string
}

func (e *LayoutError) Error() string { return e.msg }

func Layoutf(format string, args ...interface{}) error {
	return errors.WithStack(&LayoutError{fmt.Sprintf(format, args...)})
}

// IOError covers reads past the source buffer and sink write failures.
type IOError struct {
	msg string
}

func (e *IOError) Error() string { return e.msg }

func IOf(format string, args ...interface{}) error {
	return errors.WithStack(&IOError{fmt.Sprintf(format, args...)})
}
