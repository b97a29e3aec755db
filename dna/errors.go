package dna

import "errors"

// Error classes shared by every coder in the module. Callers match them with
// errors.Is; the wrapping message carries the detail.
var (
	// ErrInvalidConfig marks parameter combinations rejected at construction.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrMalformed marks truncated or corrupt encoded input.
	ErrMalformed = errors.New("malformed sequence")
	// ErrExhausted marks a search that ran out of candidates, packets or orderings.
	ErrExhausted = errors.New("search exhausted")
)
