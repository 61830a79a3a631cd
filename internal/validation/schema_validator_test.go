package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poolSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"properties": {
		"kind": {"type": "string", "enum": ["relic", "cosmetic"]},
		"entries": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"item_id": {"type": "integer", "minimum": 1},
					"weight": {"type": "integer", "minimum": 1}
				},
				"required": ["item_id", "weight"]
			}
		}
	},
	"required": ["kind", "entries"]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator()
	tmpDir := t.TempDir()
	schemaPath := writeFile(t, tmpDir, "pool.schema.json", poolSchema)

	tests := []struct {
		name     string
		file     string
		data     string
		errorMsg string
	}{
		{
			name: "valid pool",
			file: "pool.json",
			data: `{"kind": "relic", "entries": [{"item_id": 1, "weight": 50}]}`,
		},
		{
			name: "valid yaml pool",
			file: "pool.yaml",
			data: "kind: cosmetic\nentries:\n  - item_id: 3\n    weight: 10\n",
		},
		{
			name:     "missing required field",
			file:     "missing.json",
			data:     `{"entries": [{"item_id": 1, "weight": 50}]}`,
			errorMsg: "required",
		},
		{
			name:     "zero weight",
			file:     "zero.json",
			data:     `{"kind": "relic", "entries": [{"item_id": 1, "weight": 0}]}`,
			errorMsg: "/entries/0/weight",
		},
		{
			name:     "unknown kind",
			file:     "kind.yml",
			data:     "kind: shoes\nentries:\n  - item_id: 1\n    weight: 1\n",
			errorMsg: "enum",
		},
		{
			name:     "invalid JSON",
			file:     "broken.json",
			data:     `{"kind": "relic", "entries": }`,
			errorMsg: "parse JSON",
		},
		{
			name:     "invalid YAML",
			file:     "broken.yaml",
			data:     "kind: [relic\n",
			errorMsg: "parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := writeFile(t, tmpDir, tt.file, tt.data)

			err := validator.ValidateFile(dataPath, schemaPath)

			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	validator := NewSchemaValidator()
	schemaPath := writeFile(t, t.TempDir(), "pool.schema.json", poolSchema)

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{"valid", `{"kind": "relic", "entries": [{"item_id": 2, "weight": 1}]}`, false},
		{"empty entries", `{"kind": "relic", "entries": []}`, true},
		{"string item id", `{"kind": "relic", "entries": [{"item_id": "two", "weight": 1}]}`, true},
		{"fractional weight", `{"kind": "relic", "entries": [{"item_id": 2, "weight": 1.5}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestYAMLToJSON_NumericKeys(t *testing.T) {
	out, err := YAMLToJSON([]byte("supply_caps:\n  9: 100\n  10: 5\n"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"supply_caps": {"9": 100, "10": 5}}`, string(out))
}

func TestIsYAML(t *testing.T) {
	assert.True(t, IsYAML("configs/rituals.yaml"))
	assert.True(t, IsYAML("RITUALS.YML"))
	assert.False(t, IsYAML("configs/rituals.json"))
}

func TestSchemaValidator_InvalidSchemaFile(t *testing.T) {
	validator := NewSchemaValidator()
	dataPath := writeFile(t, t.TempDir(), "data.json", `{}`)

	err := validator.ValidateFile(dataPath, "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}

func TestSchemaValidator_InvalidDataFile(t *testing.T) {
	validator := NewSchemaValidator()
	schemaPath := writeFile(t, t.TempDir(), "test.schema.json", `{"type": "object"}`)

	err := validator.ValidateFile("nonexistent.json", schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)
	schemaPath := writeFile(t, t.TempDir(), "test.schema.json", `{"type": "object"}`)

	data := []byte(`{"test": "value"}`)
	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.schemas, 1, "second validation should reuse the compiled schema")
}

func TestSchemaValidator_TypedViolations(t *testing.T) {
	schemaPath := writeFile(t, t.TempDir(), "pool.schema.json", poolSchema)

	err := NewSchemaValidator().ValidateBytes([]byte(`{"kind": "relic", "entries": [{"item_id": 0, "weight": 0}]}`), schemaPath)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	paths := make([]string, 0, len(serr.Violations))
	for _, v := range serr.Violations {
		paths = append(paths, v.Path)
	}
	assert.Contains(t, paths, "/entries/0/item_id")
	assert.Contains(t, paths, "/entries/0/weight")
}

func TestSchemaValidator_FindsSchemaFromPackageDir(t *testing.T) {
	// Package tests run from internal/validation; the schema lives at the module root
	err := NewSchemaValidator().ValidateBytes([]byte(`{}`), "configs/schemas/rituals.schema.json")
	var serr *SchemaError
	assert.ErrorAs(t, err, &serr, "schema is found and the empty document fails it")
}

func TestShared(t *testing.T) {
	assert.Same(t, Shared(), Shared())
}
