package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeNumericOutOfRange is raised when a balance would overflow BIGINT
	PgErrorCodeNumericOutOfRange = "22003"

	// PgErrorCodeCheckViolation is raised when a balance would go negative
	PgErrorCodeCheckViolation = "23514"
)

// StateKeyEngine is the engine_state row holding the live engine snapshot
const StateKeyEngine = "engine"

// advisoryLockName is hashed into the advisory lock key that serialises
// engine_state writers across processes.
const advisoryLockName = "mawritual.engine_state"

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
	ErrMsgFailedToRollback         = "Failed to rollback transaction"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToBurn         = "failed to burn"
	ErrMsgFailedToMint         = "failed to mint"
	ErrMsgFailedToReadBalance  = "failed to read balance"
	ErrMsgFailedToSetApproval  = "failed to set approval"
	ErrMsgFailedToReadApproval = "failed to read approval"
	ErrMsgFailedToGrant        = "failed to grant"
	ErrMsgAmountTooLarge       = "amount exceeds ledger range"
)

// Error Messages - State Operations
const (
	ErrMsgFailedToLockState = "failed to lock engine state"
	ErrMsgFailedToSaveState = "failed to save engine state"
	ErrMsgFailedToLoadState = "failed to load engine state"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToEncodePayload = "failed to encode event payload"
	ErrMsgFailedToLogEvent      = "failed to log event"
	ErrMsgFailedToQueryEvents   = "failed to query events"
)
