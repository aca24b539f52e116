package services

import "errors"

// Failure kinds surfaced verbatim to callers. None are retried inside the
// core; handlers map them to response statuses with errors.Is.
var (
	// ErrNotFound covers unknown collections, unknown price references and
	// gameplay records that are missing or owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientCredits means the consumer's balance did not cover the
	// play cost, either at the initial check or at commit time.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrNoEligibleCard means the collection holds no card with a rarity.
	ErrNoEligibleCard = errors.New("no eligible card")

	// ErrUpstreamUnavailable means the price catalog could not be reached.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
