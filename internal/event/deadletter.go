package event

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/MawRitual_Go/internal/logger"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape
const DeadLetterSchemaVersion = "1.0"

// DeadLetterWriter appends undeliverable events to a JSON-lines file
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
	path string
	now  func() time.Time
}

// DeadLetterEntry is one line of the dead-letter file
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens path for appending, creating it when missing
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f, path: path, now: time.Now}, nil
}

// Write appends a failed event
func (dlw *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", event.Type,
		"attempts", attempts,
		"error", lastError)

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     dlw.now(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	_, err = dlw.file.Write(append(data, '\n'))
	return err
}

// Drain returns every entry in the file and truncates it. Lines that do not
// decode are logged and skipped.
func (dlw *DeadLetterWriter) Drain() ([]DeadLetterEntry, error) {
	dlw.mu.Lock()
	defer dlw.mu.Unlock()

	data, err := os.ReadFile(dlw.path)
	if err != nil {
		return nil, fmt.Errorf("read dead-letter file: %w", err)
	}

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), DeadLetterMaxLineSize)
	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			logger.Warn(LogMsgDeadLetterLineSkipped, "line", line, "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dead-letter file: %w", err)
	}

	if err := dlw.file.Truncate(0); err != nil {
		return nil, fmt.Errorf("truncate dead-letter file: %w", err)
	}
	return entries, nil
}

// Close closes the dead-letter file
func (dlw *DeadLetterWriter) Close() error {
	return dlw.file.Close()
}

// ReplayDeadLetters republishes events left in the dead-letter file by an
// earlier run. Events that fail again go back through the retry queue.
func (p *ResilientPublisher) ReplayDeadLetters(ctx context.Context) (int, error) {
	if p.deadLetter == nil {
		return 0, nil
	}
	entries, err := p.deadLetter.Drain()
	if err != nil {
		return 0, err
	}
	for _, entry := range entries {
		p.PublishWithRetry(ctx, entry.Event)
	}
	return len(entries), nil
}
