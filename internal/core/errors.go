package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidScore is returned when a score cell is not a decimal number.
	ErrInvalidScore = errors.New("invalid score")

	// ErrMalformedTableLabel is returned when a table label does not look like
	// "<number>: <name>".
	ErrMalformedTableLabel = errors.New("malformed table label")

	// ErrMissingVendorConfiguration is returned when gift cards are allocated
	// with no vendors configured.
	ErrMissingVendorConfiguration = errors.New("missing vendor configuration")

	// ErrUnknownVendor is returned when an override names a vendor that was
	// not declared.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrMissingColumn is returned when the export header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnsupportedFormat is returned for input files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrEmptyInput is returned when the export has no header row.
	ErrEmptyInput = errors.New("empty file")
)

// RowError ties an ingestion failure to its source line and column.
type RowError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
