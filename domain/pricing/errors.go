package pricing

import "errors"

// Domain errors. The adapters translate these to coded application errors;
// inside the domain they stay plain sentinels so errors.Is works across
// wrapping.
var (
	// ErrSchema marks a spreadsheet whose structure does not match the
	// expected monthly price layout.
	ErrSchema = errors.New("price sheet schema invalid")

	// ErrValidation marks bad cell values. A single bad cell fails the whole
	// load: partial or corrupt data never reaches the dashboard.
	ErrValidation = errors.New("price data validation failed")
)
