package repository

import (
	"encoding/json"
	"fmt"

	"github.com/osse101/MawRitual_Go/internal/state"
)

// StateSnapshot is the persisted form of the engine state. Data is the JSON
// encoding of state.EngineState at SchemaVersion.
type StateSnapshot struct {
	SchemaVersion int             `json:"schema_version"`
	Revision      uint64          `json:"revision"`
	Data          json.RawMessage `json:"data"`
}

// NewSnapshot encodes s
func NewSnapshot(s *state.EngineState) (*StateSnapshot, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode engine state: %w", err)
	}
	return &StateSnapshot{SchemaVersion: s.SchemaVersion, Revision: s.Revision, Data: data}, nil
}

// Decode restores and validates the engine state
func (s *StateSnapshot) Decode() (*state.EngineState, error) {
	restored := state.New()
	if err := json.Unmarshal(s.Data, restored); err != nil {
		return nil, fmt.Errorf("failed to decode engine state: %w", err)
	}
	if err := restored.Validate(); err != nil {
		return nil, fmt.Errorf("restored engine state is invalid: %w", err)
	}
	return restored, nil
}
