package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be set for every backend
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
	"OPERATOR_ID",
}

// PostgresEnvVars are only required when STORAGE_BACKEND is postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// exampleValues are the placeholders from .env.example
var exampleValues = []struct {
	key, value, hint string
}{
	{"DB_PASSWORD", "change_this_secure_password", "please use a secure password"},
	{"API_KEY", "generate_with_openssl_rand_hex_32", "generate a secure key with: openssl rand -hex 32"},
	{"OPERATOR_ID", "your_operator_address", "set it to the approved operator account"},
}

var errSchemaVersionUnset = errors.New("ENV_SCHEMA_VERSION is not set")

// ValidateEnv checks the schema version and that every variable the selected
// backend needs is present.
func ValidateEnv() error {
	switch v := os.Getenv("ENV_SCHEMA_VERSION"); v {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("%w - please update your .env file to include this field (expected: %s)", errSchemaVersionUnset, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, v)
	}

	missing := missingVars(RequiredEnvVars)
	if strings.EqualFold(os.Getenv("STORAGE_BACKEND"), StoragePostgres) {
		missing = append(missing, missingVars(PostgresEnvVars)...)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func missingVars(names []string) []string {
	var out []string
	for _, name := range names {
		if os.Getenv(name) == "" {
			out = append(out, name)
		}
	}
	return out
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// work but should not reach production.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, ex := range exampleValues {
		if os.Getenv(ex.key) == ex.value {
			warnings = append(warnings, fmt.Sprintf("%s appears to be using the example value - %s", ex.key, ex.hint))
		}
	}

	if dev, err := strconv.ParseBool(os.Getenv("DEV_MODE")); err == nil && dev {
		warnings = append(warnings, "DEV_MODE is enabled - actor cooldowns are not enforced")
	}
	return warnings, nil
}
