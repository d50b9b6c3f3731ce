package domain

import "errors"

var (
	// Validation errors raised at the use-case boundary.
	ErrSameParty             = errors.New("buyer and seller cannot be the same person")
	ErrNonPositivePrice      = errors.New("price must be positive")
	ErrReasonRequired        = errors.New("reason required for cancellation")
	ErrCannotRevertToPending = errors.New("cannot revert deal to pending")
	ErrUnknownStatus         = errors.New("unknown deal status")

	// Invariant errors raised by the aggregate itself.
	ErrAlreadyInStatus   = errors.New("deal already in this status")
	ErrInvalidTransition = errors.New("invalid deal status transition")

	ErrDealNotFound  = errors.New("deal not found")
	ErrTokenNotFound = errors.New("access token not found")
	ErrNotDealParty  = errors.New("not authorized to modify this deal")

	// ErrStaleDeal is returned by the repository when a save loses an
	// optimistic-concurrency race with another writer.
	ErrStaleDeal = errors.New("deal was modified concurrently")

	ErrInvalidID        = errors.New("identifier must be positive")
	ErrNegativeAmount   = errors.New("amount cannot be negative")
	ErrCurrencyMismatch = errors.New("cannot compare money of different currencies")
	ErrNotesTooLong     = errors.New("notes cannot exceed 1000 characters")
)
