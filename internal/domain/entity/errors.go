package entity

import "errors"

var (
	// ErrStrategyContract is returned when a strategy produced a tree that does
	// not match the requested window count or whose traversal overrides cannot
	// be followed.
	ErrStrategyContract = errors.New("strategy contract violation")

	// ErrDegenerateSplit marks a split that left no room for its second half.
	// It is recovered locally and only used for diagnostics.
	ErrDegenerateSplit = errors.New("degenerate split")

	// ErrStaleResponse is returned when a response does not match the latest
	// outstanding request for its output.
	ErrStaleResponse = errors.New("stale layout response")

	// ErrProducerUnavailable is returned when the layout producer cannot be
	// reached or did not answer in time.
	ErrProducerUnavailable = errors.New("layout producer unavailable")

	// ErrMalformedMessage is returned when a protocol message fails to parse
	// against the expected shape.
	ErrMalformedMessage = errors.New("malformed layout message")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown layout strategy")

	// ErrInvalidGaps is returned for negative gap values.
	ErrInvalidGaps = errors.New("invalid gaps")
)
