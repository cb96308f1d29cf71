package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the top-level configuration for dspy-introspect. Everything is
// optional; empty recognizer lists fall back to the stock DSPy names, so the
// zero config reproduces the reference behavior exactly.
type Config struct {
	// Recognize overrides the name sets the extractor matches against.
	Recognize RecognizeConfig `json:"recognize,omitempty"`
}

// RecognizeConfig lists the names the extractor recognizes structurally.
// Names match as bare identifiers or as the trailing name of a dotted
// reference; no import resolution is performed.
type RecognizeConfig struct {
	// Builders are predictor-builder constructors, e.g. "Predict".
	Builders []string `json:"builders,omitempty"`

	// SignatureBases are base class names marking a signature declaration.
	SignatureBases []string `json:"signatureBases,omitempty"`

	// InputFields are input field constructor names.
	InputFields []string `json:"inputFields,omitempty"`

	// OutputFields are output field constructor names.
	OutputFields []string `json:"outputFields,omitempty"`
}

// DefaultConfig returns the configuration matching stock DSPy.
func DefaultConfig() *Config {
	return &Config{
		Recognize: RecognizeConfig{
			Builders: []string{
				"Predict",
				"ReAct",
				"ChainOfThought",
				"CodeAct",
				"MultiChainComparison",
				"ProgramOfThought",
			},
			SignatureBases: []string{"Signature"},
			InputFields:    []string{"InputField"},
			OutputFields:   []string{"OutputField"},
		},
	}
}

// Load finds and loads the configuration file.
// Search order:
//  1. ./dspy_introspect.json
//  2. ./.dspy_introspect.json
//  3. ~/.config/dspy_introspect/config.json
//
// When no file exists the defaults are returned; a file that exists but does
// not parse is an error.
func Load() (*Config, error) {
	candidates := []string{
		"dspy_introspect.json",
		".dspy_introspect.json",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "dspy_introspect", "config.json"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return DefaultConfig(), nil
}

// LoadFile loads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// applyDefaults fills empty recognizer lists from the default configuration,
// so a partial config only overrides what it names.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.Recognize.Builders) == 0 {
		c.Recognize.Builders = def.Recognize.Builders
	}
	if len(c.Recognize.SignatureBases) == 0 {
		c.Recognize.SignatureBases = def.Recognize.SignatureBases
	}
	if len(c.Recognize.InputFields) == 0 {
		c.Recognize.InputFields = def.Recognize.InputFields
	}
	if len(c.Recognize.OutputFields) == 0 {
		c.Recognize.OutputFields = def.Recognize.OutputFields
	}
}
