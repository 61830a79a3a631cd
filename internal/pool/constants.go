package pool

// Error context messages
const (
	ErrContextEntry = "entry %d (item %d)"
)

// Log field keys for structured logging
const (
	LogFieldPool    = "pool"
	LogFieldVersion = "version"
)
