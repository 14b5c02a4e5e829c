// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/assistant/internal/logging"
)

// Front-end modes.
const (
	ModeAuto  = "auto"  // Terminal line editor on a TTY, plain lines otherwise.
	ModePlain = "plain" // Plain line reader, no styling.
	ModeTUI   = "tui"   // Full-screen Bubble Tea interface.
)

// Config holds all assistant configuration.
type Config struct {
	REPL REPL `yaml:"repl"`
	Log  Log  `yaml:"log"`
}

// REPL holds interactive loop settings.
type REPL struct {
	Prompt      string `yaml:"prompt"`
	Mode        string `yaml:"mode"`         // "auto" | "plain" | "tui"
	HistoryFile string `yaml:"history_file"` // Empty disables line history.
}

// Log holds diagnostic logging settings.
type Log struct {
	File  string `yaml:"file"` // Empty disables logging.
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		REPL: REPL{
			Prompt: "Enter a command: ",
			Mode:   ModeAuto,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.REPL.Mode {
	case ModeAuto, ModePlain, ModeTUI:
		// valid
	default:
		return fmt.Errorf("config: repl.mode must be %q, %q or %q, got %q", ModeAuto, ModePlain, ModeTUI, c.REPL.Mode)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ASSISTANT_PROMPT, ASSISTANT_MODE, ASSISTANT_HISTORY_FILE,
// ASSISTANT_LOG_FILE, ASSISTANT_LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ASSISTANT_PROMPT"); v != "" {
		c.REPL.Prompt = v
	}
	if v := os.Getenv("ASSISTANT_MODE"); v != "" {
		c.REPL.Mode = v
	}
	if v := os.Getenv("ASSISTANT_HISTORY_FILE"); v != "" {
		c.REPL.HistoryFile = v
	}
	if v := os.Getenv("ASSISTANT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ASSISTANT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	REPL *rawREPL `yaml:"repl"`
	Log  *rawLog  `yaml:"log"`
}

type rawREPL struct {
	Prompt      *string `yaml:"prompt"`
	Mode        *string `yaml:"mode"`
	HistoryFile *string `yaml:"history_file"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.REPL != nil {
		if layer.REPL.Prompt != nil {
			c.REPL.Prompt = *layer.REPL.Prompt
		}
		if layer.REPL.Mode != nil {
			c.REPL.Mode = *layer.REPL.Mode
		}
		if layer.REPL.HistoryFile != nil {
			c.REPL.HistoryFile = *layer.REPL.HistoryFile
		}
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
