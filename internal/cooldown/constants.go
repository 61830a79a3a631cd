package cooldown

const (
	LogMsgDevModeBypass    = "Dev mode, cooldown not enforced"
	LogMsgCooldownRejected = "Actor still cooling down"
	LogMsgCooldownRecorded = "Cooldown recorded"
)

// ErrFmtTooSoon takes the actor, blocks remaining and the last action height
const ErrFmtTooSoon = "too soon: %s must wait %d more block(s) after height %d"
