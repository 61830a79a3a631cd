package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/MawRitual_Go/internal/state"
	"github.com/osse101/MawRitual_Go/internal/validation"
)

// LoadRitualGenesis reads a ritual catalogue (JSON or YAML), validates it
// against the ritual schema and decodes it.
func LoadRitualGenesis(path string) (*state.Genesis, error) {
	return LoadRitualGenesisWithSchema(path, ConfigPathRitualsSchema)
}

// LoadRitualGenesisWithSchema is LoadRitualGenesis with an explicit schema path
func LoadRitualGenesisWithSchema(path, schemaPath string) (*state.Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ritual config %s: %w", path, err)
	}

	if validation.IsYAML(path) {
		if data, err = validation.YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("ritual config %s: %w", path, err)
		}
	}

	if err := validation.Shared().ValidateBytes(data, schemaPath); err != nil {
		return nil, fmt.Errorf("ritual config %s: %w", path, err)
	}

	var g state.Genesis
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode ritual config %s: %w", path, err)
	}
	return &g, nil
}

// LoadRitualState loads the catalogue at path and builds the genesis engine
// state through the same validation the admin surface applies.
func LoadRitualState(path string) (*state.Genesis, *state.EngineState, error) {
	g, err := LoadRitualGenesis(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := state.FromGenesis(*g)
	if err != nil {
		return nil, nil, fmt.Errorf("ritual config %s: %w", path, err)
	}
	return g, s, nil
}
