package supply

const (
	ErrMsgCapReached         = "%w: item %d wants %d, %d remaining"
	ErrMsgFallbackMintFailed = "fallback mint of item %d failed: %w"

	LogMsgFallbackMint = "Reward unavailable, minting fallback"
)
