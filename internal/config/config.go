// Package config loads and validates objmacro settings.
//
// Settings are layered: Defaults, then an optional YAML file, then CLI
// flags applied by the caller. The merged result is checked against an
// embedded CUE schema before use.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/objmacro/internal/motion"
)

// EnvConfigFile names the environment variable consulted when no --config
// flag is given.
const EnvConfigFile = "OBJMACRO_CONFIG"

// Config is the complete runtime configuration.
type Config struct {
	Limits      motion.Limits `yaml:"limits" json:"limits"`
	MacroRoot   string        `yaml:"macro_root" json:"macro_root"`
	HistoryDB   string        `yaml:"history_db" json:"history_db"`
	SkipInvalid bool          `yaml:"skip_invalid" json:"skip_invalid"`
}

// Error reports a configuration file or value that cannot be used.
type Error struct {
	Path string // config file, empty for values not read from a file
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Limits:    motion.DefaultLimits(),
		MacroRoot: ".",
	}
}

// Load reads a YAML file over Defaults. Keys absent from the file keep
// their default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, &Error{Path: path, Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, &Error{Path: path, Err: err}
	}

	return cfg, nil
}

// ResolvePath picks the config file to load: the flag value if set,
// otherwise the EnvConfigFile variable. Empty means no file.
func ResolvePath(flagValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	if getenv == nil {
		return ""
	}
	return getenv(EnvConfigFile)
}
