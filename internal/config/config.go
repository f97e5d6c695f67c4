// Package config loads the optional magicast.yaml file that points the
// CLI at the right ImageMagick binaries and supplies per-operation
// default options.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	mcerrors "github.com/magicast/magicast/internal/errors"
	"github.com/magicast/magicast/internal/logging"
	"github.com/magicast/magicast/pkg/magick"
)

// Config holds the runtime configuration assembled from global flags
// and the config file.
type Config struct {
	Path       string
	Logger     *logging.Logger
	Prefix     string // --prefix flag, overrides the file's prefix
	Definition *Definition
}

// Definition represents the magicast.yaml structure.
type Definition struct {
	// Prefix is prepended to every subcommand, e.g. "gm" or "magick".
	Prefix string `yaml:"prefix,omitempty"`
	// Binaries maps a subcommand to an explicit binary path.
	Binaries map[string]string `yaml:"binaries,omitempty"`
	// DefaultOptions maps an operation to option strings prepended to
	// every invocation, in the same "-switch value" form the --opt flag
	// accepts.
	DefaultOptions map[string][]string `yaml:"default_options,omitempty"`
}

// configSchema validates the raw config document before it is trusted.
// Unknown top-level keys are rejected so a typo does not silently turn
// a setting into a no-op.
const configSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"prefix": {"type": "string"},
		"binaries": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"default_options": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "string"}
			}
		}
	}
}`

// Load reads and validates the config file. A missing file is not an
// error: every setting has a working default.
func (c *Config) Load() error {
	c.Definition = &Definition{}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return mcerrors.UserError{
			Message:    fmt.Sprintf("Cannot read config file '%s'", c.Path),
			Suggestion: "Check the file's permissions, or pass a different path with --config",
			Err:        err,
		}
	}

	if err := validateSchema(data); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, c.Definition); err != nil {
		return mcerrors.ConfigError{
			Message:    fmt.Sprintf("invalid YAML in '%s': %v", c.Path, err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	known := make(map[string]bool)
	for _, sub := range magick.Subcommands() {
		known[sub] = true
	}
	for sub := range c.Definition.Binaries {
		if !known[sub] {
			return mcerrors.ConfigError{
				Field:      "binaries",
				Value:      sub,
				Message:    "unknown subcommand",
				Suggestion: fmt.Sprintf("Valid subcommands: %s", strings.Join(magick.Subcommands(), ", ")),
			}
		}
	}

	return nil
}

// EffectivePrefix returns the binary prefix, with the --prefix flag
// taking precedence over the config file.
func (c *Config) EffectivePrefix() string {
	if c.Prefix != "" {
		return c.Prefix
	}
	if c.Definition != nil {
		return c.Definition.Prefix
	}
	return ""
}

// DefaultOptionsFor returns the configured default option strings for
// an operation.
func (c *Config) DefaultOptionsFor(operation string) []string {
	if c.Definition == nil {
		return nil
	}
	return c.Definition.DefaultOptions[operation]
}

// validateSchema checks the raw YAML document against the embedded JSON
// schema. The document is decoded generically and round-tripped through
// JSON, since gojsonschema validates JSON, not YAML.
func validateSchema(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return mcerrors.ConfigError{
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}
	if doc == nil {
		return nil
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(jsonData)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errorMessages []string
		for _, desc := range result.Errors() {
			errorMessages = append(errorMessages, desc.String())
		}
		return mcerrors.ConfigError{
			Message:    fmt.Sprintf("config does not match schema:\n  - %s", strings.Join(errorMessages, "\n  - ")),
			Suggestion: "Valid keys are prefix, binaries, and default_options",
		}
	}

	return nil
}
