package logger

const (
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"

	LogFormatJSON = "json"
)

// environments whose records carry source locations
var sourceEnvironments = map[string]bool{
	"dev":         true,
	"development": true,
	"local":       true,
}

// Attribute keys shared by every package that logs
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyChainID     = "chain_id"
	AttrKeyRequestID   = "request_id"
	AttrKeyActionID    = "action_id"
	AttrKeyActor       = "actor"
)
