package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgInvalidAmount = "invalid amount"
	ErrMsgNotApproved   = "operator not approved"
	ErrMsgPaused        = "rituals are paused"
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgUnknownRitual = "unknown ritual kind"

	// Rate-limit errors
	ErrMsgTooSoon = "action too soon"

	// Ledger errors
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgNotAuthorized       = "minter not authorized"
	ErrMsgSupplyExceeded      = "supply exceeded"
	ErrMsgTxClosed            = "tx is closed"

	// Configuration errors
	ErrMsgEmptyPool    = "pool is empty"
	ErrMsgZeroWeight   = "pool entry has zero weight"
	ErrMsgInvalidRatio = "invalid conversion ratio"
	ErrMsgUnknownPool  = "unknown pool"
	ErrMsgInvalidOdds  = "invalid odds configuration"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Validation errors: rejected before any mutation, retryable with corrected input
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)
	ErrNotApproved   = errors.New(ErrMsgNotApproved)
	ErrPaused        = errors.New(ErrMsgPaused)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrUnknownRitual = errors.New(ErrMsgUnknownRitual)

	// Rate-limit errors
	ErrTooSoon = errors.New(ErrMsgTooSoon)

	// Ledger errors: fatal to the action, surfaced verbatim
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)
	ErrNotAuthorized       = errors.New(ErrMsgNotAuthorized)
	ErrTxClosed            = errors.New(ErrMsgTxClosed)

	// Supply exhaustion: only ever seen by the supply guard
	ErrSupplyExceeded = errors.New(ErrMsgSupplyExceeded)

	// Configuration errors: rejected at admin-update time
	ErrEmptyPool    = errors.New(ErrMsgEmptyPool)
	ErrZeroWeight   = errors.New(ErrMsgZeroWeight)
	ErrInvalidRatio = errors.New(ErrMsgInvalidRatio)
	ErrUnknownPool  = errors.New(ErrMsgUnknownPool)
	ErrInvalidOdds  = errors.New(ErrMsgInvalidOdds)
)

// IsValidation reports whether err is a caller-correctable validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNotApproved) ||
		errors.Is(err, ErrPaused) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnknownRitual)
}

// IsLedger reports whether err came from the token ledger.
func IsLedger(err error) bool {
	return errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrSupplyExceeded)
}

// IsConfiguration reports whether err is an admin configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrEmptyPool) ||
		errors.Is(err, ErrZeroWeight) ||
		errors.Is(err, ErrInvalidRatio) ||
		errors.Is(err, ErrUnknownPool) ||
		errors.Is(err, ErrInvalidOdds)
}
