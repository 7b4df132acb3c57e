package scenario

import "errors"

var (
	// ErrHRDerivedExpense is returned when a caller tries to write one of the
	// operating expense rows computed from HR costs. It is a contract
	// violation by the caller, not a data-quality issue.
	ErrHRDerivedExpense = errors.New("expense row is derived from HR costs and cannot be edited")

	// ErrUnknownField is returned when a mutation path does not name an
	// editable field of the document.
	ErrUnknownField = errors.New("unknown scenario field")
)
