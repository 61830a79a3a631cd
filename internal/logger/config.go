package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler and the attributes stamped on every record
type Config struct {
	Level       string // LOG_LEVEL, parsed by slog, "warning" is accepted as "warn"
	Format      string // "json" or "text"
	ServiceName string
	Version     string
	Environment string
	ChainID     string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// WithChain tags every record with the chain the engine reads entropy from
func (c Config) WithChain(chainID string) Config {
	c.ChainID = chainID
	return c
}

// SourceForEnvironment reports whether records should carry file:line for env
func SourceForEnvironment(env string) bool {
	return sourceEnvironments[strings.ToLower(env)]
}

// LogLevel parses Level. Unknown or empty values fall back to info.
func (c Config) LogLevel() slog.Level {
	name := strings.TrimSpace(c.Level)
	if strings.EqualFold(name, LogLevelWarning) {
		name = LogLevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes returns attributes added to every record. Empty values are
// left out.
func (c Config) BaseAttributes() []slog.Attr {
	var attrs []slog.Attr
	for _, kv := range [][2]string{
		{AttrKeyService, c.ServiceName},
		{AttrKeyVersion, c.Version},
		{AttrKeyEnvironment, c.Environment},
		{AttrKeyChainID, c.ChainID},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	return attrs
}
