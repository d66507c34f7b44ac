// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant) and can be overridden from the environment, including an
// optional .env file. The merge priority is:
// CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/praytimes/praytimes"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"
)

// Config holds all user-configurable settings. Empty fields are unset and
// take their defaults when used. Values are stored in canonical form, so
// they are written through Set rather than assigned.
type Config struct {
	Latitude      *float64 `json:"latitude,omitempty"`  // pointer so the equator can be set
	Longitude     *float64 `json:"longitude,omitempty"` // pointer so Greenwich can be set
	Elevation     float64  `json:"elevation,omitempty"` // meters
	Timezone      string   `json:"timezone,omitempty"`  // IANA name, empty = local
	Method        string   `json:"method,omitempty"`
	Asr           string   `json:"asr,omitempty"`
	HighLatitudes string   `json:"high_latitudes,omitempty"`
	Midnight      string   `json:"midnight,omitempty"`
	Imsak         string   `json:"imsak,omitempty"` // "10 min" before Fajr or "18°"
	DhuhrMinutes  float64  `json:"dhuhr_minutes,omitempty"`
	TimeFormat    string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers       string   `json:"prayers,omitempty"`     // comma-separated list
}

// Defaults returns the values used for unset keys.
func Defaults() Config {
	return Config{
		Method:        praytimes.MWL.String(),
		Asr:           praytimes.AsrStandard.Name,
		HighLatitudes: praytimes.NightMiddle.String(),
		Midnight:      praytimes.MidnightDefault.String(),
		Imsak:         praytimes.Minutes(10).String(),
		TimeFormat:    "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file. A missing file yields an empty Config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path. Values are not
// validated; see Validate.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path. The file is replaced atomically so a
// status bar reading it concurrently never sees a partial write.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, configFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at path. A missing file is not an error.
func ResetAt(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// HasLocation reports whether both latitude and longitude are set.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Coordinates returns the observer position. Callers check HasLocation first.
func (c *Config) Coordinates() praytimes.Coordinates {
	coords := praytimes.Coordinates{Elevation: c.Elevation}
	if c.Latitude != nil {
		coords.Latitude = *c.Latitude
	}
	if c.Longitude != nil {
		coords.Longitude = *c.Longitude
	}
	return coords
}

// Location returns the configured timezone, or time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MethodOrDefault returns the calculation method, or def when unset.
func (c *Config) MethodOrDefault(def praytimes.CalculationMethod) praytimes.CalculationMethod {
	if m, err := praytimes.ParseCalculationMethod(c.Method); err == nil {
		return m
	}
	return def
}

// Options builds the calculator options. Unset names leave the
// calculator's defaults in place.
func (c *Config) Options() praytimes.Options {
	opts := praytimes.Options{DhuhrMinutes: c.DhuhrMinutes}
	if a, err := praytimes.ParseAsrMethod(c.Asr); err == nil {
		opts.Asr = a
	}
	if h, err := praytimes.ParseHighLatitudesMethod(c.HighLatitudes); err == nil {
		opts.HighLatitudes = h
	}
	if m, err := praytimes.ParseMidnightMethod(c.Midnight); err == nil {
		opts.Midnight = m
	}
	if v, err := praytimes.ParseAngleOrMinutes(c.Imsak); err == nil {
		opts.Imsak = v
	}
	return opts
}
