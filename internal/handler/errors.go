package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgRequestTooLarge       = "Request body too large"
	ErrMsgEmptyBody             = "Request body is empty"

	// Query and path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidItemList   = "Invalid items parameter (comma separated item ids)"
	ErrMsgInvalidSeed       = "Invalid seed (hex, optionally 0x prefixed)"
	ErrMsgInvalidLimit      = "Invalid 'limit' (must be 1-500)"
	ErrMsgInvalidWindow     = "'since' must not be after 'until'"
	ErrMsgInvalidSince      = "Invalid 'since' timestamp format (use RFC3339)"
	ErrMsgInvalidUntil      = "Invalid 'until' timestamp format (use RFC3339)"

	// Ritual operation error messages
	ErrMsgSacrificeFailed     = "Failed to sacrifice relics"
	ErrMsgCosmeticFailed      = "Failed to sacrifice for cosmetic"
	ErrMsgConvertFailed       = "Failed to convert items"
	ErrMsgGetPoolFailed       = "Failed to get pool"
	ErrMsgGetOddsFailed       = "Failed to get pool odds"
	ErrMsgGetSuccessCfgFailed = "Failed to get success config"
	ErrMsgPreviewFailed       = "Failed to preview roll"
	ErrMsgGetBalancesFailed   = "Failed to get balances"
	ErrMsgGetEventsFailed     = "Failed to retrieve events"

	// Admin error messages
	ErrMsgSetPoolFailed       = "Failed to update pool"
	ErrMsgSetCooldownFailed   = "Failed to update cooldown spacing"
	ErrMsgSetConversionFailed = "Failed to update conversion ratio"
	ErrMsgSetSupplyCapFailed  = "Failed to update supply cap"
	ErrMsgSetPausedFailed     = "Failed to update pause switch"
	ErrMsgSetSuccessCfgFailed = "Failed to update success config"
	ErrMsgSetRitualFailed     = "Failed to update ritual"
)

// Success messages for API responses
const (
	MsgPoolUpdated       = "Pool updated"
	MsgCooldownUpdated   = "Cooldown spacing updated"
	MsgConversionUpdated = "Conversion ratio updated"
	MsgSupplyCapUpdated  = "Supply cap updated"
	MsgSupplyCapRemoved  = "Supply cap removed"
	MsgRitualsPaused     = "Rituals paused"
	MsgRitualsResumed    = "Rituals resumed"
	MsgSuccessCfgUpdated = "Success config updated"
	MsgRitualUpdated     = "Ritual updated"
)

// Response headers
const (
	// HeaderRetryAfterBlocks carries the remaining cooldown in blocks
	HeaderRetryAfterBlocks = "Retry-After-Blocks"
)
