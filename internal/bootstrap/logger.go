package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/osse101/MawRitual_Go/internal/config"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SetupLogger installs the default logger. With LOG_DIR set, records are
// also written to a per-process session file, and the returned Closer owns
// that file. Without LOG_DIR the logger writes to stdout only.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	logCfg := loggerConfig(cfg)

	if cfg.LogDir == "" {
		logger.InitLogger(logCfg)
		slog.Info(LogMsgLoggingStdoutOnly, "level", logCfg.LogLevel())
		logStartup(cfg)
		return nopCloser{}, nil
	}

	logFile, err := openSessionLog(cfg.LogDir, time.Now())
	if err != nil {
		return nil, err
	}
	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, logFile))
	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", logFile.Name())
	logStartup(cfg)
	return logFile, nil
}

func loggerConfig(cfg *config.Config) logger.Config {
	return logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment,
		logger.SourceForEnvironment(cfg.Environment)).WithChain(cfg.ChainID)
}

// openSessionLog prunes old session files in dir and opens a new one named
// after now.
func openSessionLog(dir string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateLogsDir, err)
	}
	cleanupLogs(dir, LogFileRetentionCount)

	name := filepath.Join(dir, fmt.Sprintf(LogFileNamePattern, now.Format(LogFileTimestampFormat)))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedOpenLogFile, err)
	}
	return f, nil
}

func logStartup(cfg *config.Config) {
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"storage_backend", cfg.StorageBackend,
		"db_host", cfg.DBHost,
		"db_name", cfg.DBName,
		"chain_id", cfg.ChainID,
		"block_interval", cfg.BlockInterval,
		"port", cfg.Port)
}

// cleanupLogs removes the oldest session logs so at most keep remain.
func cleanupLogs(logDir string, keep int) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	var sessions []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), LogFileExtension) {
			sessions = append(sessions, e.Name())
		}
	}
	if len(sessions) <= keep {
		return
	}

	// timestamped names sort chronologically
	slices.Sort(sessions)
	for _, name := range sessions[:len(sessions)-keep] {
		if err := os.Remove(filepath.Join(logDir, name)); err != nil {
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", LogMsgFailedDeleteOldLog, name, err)
		}
	}
}
