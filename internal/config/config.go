// Package config loads editor configuration from a TOML file with
// environment variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the TOML file,
// QUILL_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Env var names recognized by ApplyEnv.
const (
	EnvHistoryCapacity        = "QUILL_HISTORY_CAPACITY"
	EnvLogLevel               = "QUILL_LOG_LEVEL"
	EnvLogFile                = "QUILL_LOG_FILE"
	EnvScriptInstructionLimit = "QUILL_SCRIPT_INSTRUCTION_LIMIT"
)

// Config is the full editor configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	Script  ScriptConfig  `toml:"script"`
}

// HistoryConfig configures the undo/redo log.
type HistoryConfig struct {
	// Capacity is the maximum number of undo entries retained.
	Capacity int `toml:"capacity"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File is the log destination; empty means stderr.
	File string `toml:"file"`
}

// ScriptConfig configures the Lua scripting engine.
type ScriptConfig struct {
	// InstructionLimit caps instructions per script execution.
	InstructionLimit int64 `toml:"instructionLimit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{Capacity: 100},
		Logging: LoggingConfig{Level: "info"},
		Script:  ScriptConfig{InstructionLimit: 10_000_000},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. A missing file is not an error; defaults plus
// environment overrides are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from QUILL_* environment variables.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvHistoryCapacity); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvHistoryCapacity, v, err)
		}
		c.History.Capacity = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv(EnvScriptInstructionLimit); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvScriptInstructionLimit, v, err)
		}
		c.Script.InstructionLimit = n
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.History.Capacity <= 0 {
		return fmt.Errorf("history.capacity must be positive, got %d", c.History.Capacity)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Script.InstructionLimit <= 0 {
		return fmt.Errorf("script.instructionLimit must be positive, got %d", c.Script.InstructionLimit)
	}
	return nil
}
