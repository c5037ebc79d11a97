package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnparseableDate      = errors.New("unparseable date value")
	ErrSourceUnreadable     = errors.New("source unreadable")

	// Shape errors
	ErrEmptyInput     = errors.New("empty input table")
	ErrUnknownTable   = errors.New("unknown table")
	ErrUnknownChannel = errors.New("unknown channel")
)

// NewMissingFieldError reports a required field that could not be located
// in a source after column normalization.
func NewMissingFieldError(source, field string) error {
	return fmt.Errorf("%w: %q in source %s", ErrMissingRequiredField, field, source)
}

// NewDateParseError reports a fatal date-parse failure during channel loading.
func NewDateParseError(source, raw string, row int) error {
	return fmt.Errorf("%w: %q at row %d in source %s", ErrUnparseableDate, raw, row, source)
}

// NewSourceError wraps a read failure with the source name.
func NewSourceError(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, source, err)
}

// Error checking helpers
func IsMissingFieldError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrMissingRequiredField) ||
		errors.Is(err, ErrUnparseableDate) ||
		errors.Is(err, ErrSourceUnreadable)
}
