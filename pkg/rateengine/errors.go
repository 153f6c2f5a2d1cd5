package rateengine

import (
	"errors"
	"fmt"
)

// InvalidWeightError indicates a non-positive dimension or weight was given
// to weight resolution. It is always surfaced to the caller and never
// retried.
type InvalidWeightError struct {
	Field string
	Value float64
}

// Error implements the error interface.
func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("invalid weight input: %s must be > 0, got %v", e.Field, e.Value)
}

// Is implements errors.Is for InvalidWeightError.
func (e *InvalidWeightError) Is(target error) bool {
	_, ok := target.(*InvalidWeightError)
	return ok || errors.Is(target, ErrInvalidWeight)
}

// MalformedQuoteError indicates a raw courier quote is missing a required
// field or carries an unparseable value. The offending quote is dropped from
// the aggregate result; partial results remain valid.
type MalformedQuoteError struct {
	CourierID string
	Path      string
	Message   string
}

// Error implements the error interface.
func (e *MalformedQuoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("malformed quote: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("malformed quote: missing required field %s", e.Path)
}

// Is implements errors.Is for MalformedQuoteError.
func (e *MalformedQuoteError) Is(target error) bool {
	_, ok := target.(*MalformedQuoteError)
	return ok || errors.Is(target, ErrMalformedQuote)
}

// UnsupportedZoneError indicates a zone value outside the five known tiers.
// Treated like a malformed quote: drop and log.
type UnsupportedZoneError struct {
	Zone string
}

// Error implements the error interface.
func (e *UnsupportedZoneError) Error() string {
	return fmt.Sprintf("unsupported zone %q", e.Zone)
}

// Is implements errors.Is for UnsupportedZoneError.
func (e *UnsupportedZoneError) Is(target error) bool {
	_, ok := target.(*UnsupportedZoneError)
	return ok || errors.Is(target, ErrUnsupportedZone)
}

// Sentinel errors for classification with errors.Is.
var (
	// ErrInvalidWeight matches any InvalidWeightError.
	ErrInvalidWeight = errors.New("invalid weight")

	// ErrMalformedQuote matches any MalformedQuoteError.
	ErrMalformedQuote = errors.New("malformed quote")

	// ErrUnsupportedZone matches any UnsupportedZoneError.
	ErrUnsupportedZone = errors.New("unsupported zone")

	// ErrInvalidRateCard indicates a courier pricing card violates its
	// invariants (missing zones, non-positive slab or increment).
	ErrInvalidRateCard = errors.New("invalid rate card")

	// ErrSourceNotFound indicates the requested courier source is not
	// registered.
	ErrSourceNotFound = errors.New("courier source not found")
)

// IsDroppable reports whether the error should drop a single courier's quote
// from the aggregate result instead of failing the whole request.
func IsDroppable(err error) bool {
	return errors.Is(err, ErrMalformedQuote) || errors.Is(err, ErrUnsupportedZone)
}
