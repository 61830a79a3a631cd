package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer

	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
	}
	InitLoggerWithWriter(config, &buf)

	Info("ritual completed", "actor", "alice", "nonce", 42)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, "1.0.0", entry["version"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, "ritual completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "alice", entry["actor"])
	assert.Equal(t, float64(42), entry["nonce"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "warn", Format: "text"}, &buf)

	Debug("hidden")
	Info("hidden")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, 1, strings.Count(out, "shown"))
}

func TestRequestIDContext(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "debug", Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "test-req-123")
	assert.Equal(t, "test-req-123", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))

	FromContext(ctx).Info("with id")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-req-123", entry[AttrKeyRequestID])
}

func TestActionContext(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "debug", Format: "json"}, &buf)

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithAction(ctx, "act-9", "alice")
	FromContext(ctx).Debug("phase transition", "to", "burning")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry[AttrKeyRequestID])
	assert.Equal(t, "act-9", entry[AttrKeyActionID])
	assert.Equal(t, "alice", entry[AttrKeyActor])
}

func TestBaseAttributes(t *testing.T) {
	cfg := NewConfig("info", "json", "mawritual", "1.2.3", "prod", false)
	assert.Len(t, cfg.BaseAttributes(), 3)

	var buf bytes.Buffer
	InitLoggerWithWriter(cfg.WithChain("maw-local"), &buf)
	Info("started")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "maw-local", entry[AttrKeyChainID])
	assert.Equal(t, "prod", entry[AttrKeyEnvironment])
}

func TestSourceForEnvironment(t *testing.T) {
	assert.True(t, SourceForEnvironment("dev"))
	assert.True(t, SourceForEnvironment("Development"))
	assert.False(t, SourceForEnvironment("prod"))
	assert.False(t, SourceForEnvironment("staging"))
}

func TestConfigLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info+2":  slog.LevelInfo + 2,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{Level: in}.LogLevel(), "level %q", in)
	}
}

func TestBaseAttributes_SkipsEmpty(t *testing.T) {
	attrs := Config{ServiceName: "mawritual"}.BaseAttributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, AttrKeyService, attrs[0].Key)
}
