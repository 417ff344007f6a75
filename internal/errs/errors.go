package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrNoTable indicates an uploaded workbook has no parsable sheet.
	// It fails the whole batch, unlike per-row rejections which only drop the row.
	ErrNoTable = errors.New("no_table")
	// ErrUnprocessable is used for semantic validation failures (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable")
)
