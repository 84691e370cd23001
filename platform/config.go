// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/winsurface/surface"
)

// Environment variables read by LoadConfig.
const (
	// EnvUseGPU selects accelerated surfaces when set to any non-empty
	// value.
	EnvUseGPU = "WINSURFACE_USE_GPU"

	// EnvBackend names the backend kind explicitly ("raster" or
	// "accelerated"). It takes precedence over EnvUseGPU.
	EnvBackend = "WINSURFACE_BACKEND"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "WINSURFACE_LOG_LEVEL"
)

// Config is the process configuration of an Integration.
type Config struct {
	// Backend is the surface kind used for every window.
	Backend surface.Kind `toml:"backend"`

	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns raster surfaces and warnings-only logging.
func DefaultConfig() Config {
	return Config{
		Backend:  surface.Raster,
		LogLevel: "warn",
	}
}

// LoadConfig builds a Config from the defaults, the TOML file at path and
// the environment, in that order. An empty path skips the file.
//
// Example file:
//
//	backend = "accelerated"
//	log_level = "debug"
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			return Config{}, fmt.Errorf("platform: read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("platform: %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decode overlays TOML data on c. Unknown keys are rejected.
func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return err
	}
	return nil
}

// applyEnv overlays the environment on c.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvUseGPU); ok && v != "" {
		c.Backend = surface.Accelerated
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		k, err := surface.ParseKind(v)
		if err != nil {
			return fmt.Errorf("platform: %s: %w", EnvBackend, err)
		}
		c.Backend = k
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate reports an unknown backend kind or log level.
func (c Config) Validate() error {
	if c.Backend != surface.Raster && c.Backend != surface.Accelerated {
		return fmt.Errorf("platform: %w", &surface.UnknownKindError{Name: c.Backend.String()})
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("platform: unknown log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the slog level named by LogLevel, or slog.LevelWarn if the
// name is unknown.
func (c Config) Level() slog.Level {
	l, ok := parseLevel(c.LogLevel)
	if !ok {
		return slog.LevelWarn
	}
	return l
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
