package spajsonpo

import (
	"errors"
	"fmt"
)

// ErrNoInput is returned when extraction is asked to run without files.
var ErrNoInput = errors.New("no input files")

// ConversionError reports a converter run that could not start or exited
// non-zero. ExitCode is -1 when the process never produced an exit status.
type ConversionError struct {
	File      string
	Converter string
	ExitCode  int
	Stderr    string
	Err       error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s with %s: %v", e.File, e.Converter, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ParseError reports converter output that is not a well-formed tree.
type ParseError struct {
	File string // empty when the input did not come from a file
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parse converter output: %v", e.Err)
	}
	return fmt.Sprintf("parse converter output for %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PatternError reports a key pattern that is not a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid key pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}
