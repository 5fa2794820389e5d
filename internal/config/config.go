// Package config loads default extraction settings for the CLI from a YAML
// file and GISRAMP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/gisramp/internal/colour"
	"github.com/jmylchreest/gisramp/internal/seed"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "GISRAMP_"

// Config holds CLI defaults. Command-line flags override every field.
type Config struct {
	Colours       int         `yaml:"colours"`
	Sort          string      `yaml:"sort"`
	MinSaturation float64     `yaml:"min_saturation"`
	MinValue      float64     `yaml:"min_value"`
	Format        string      `yaml:"format"`
	Seed          seed.Config `yaml:"seed"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Colours: colour.DefaultColours,
		Sort:    string(colour.SortBrightnessAscending),
		Format:  "clr",
		Seed:    seed.Config{Mode: seed.ModeContent},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gisramp/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "gisramp", "config.yaml"), nil
}

// Load reads the config file at path on top of the defaults and then applies
// environment overrides. An empty path means DefaultPath; a missing default
// file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - user config file
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Seed.Mode, _ = seed.ParseMode(string(cfg.Seed.Mode))
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "COLOURS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sCOLOURS: %w", EnvPrefix, err)
		}
		c.Colours = n
	}
	if v, ok := lookup(EnvPrefix + "SORT"); ok {
		c.Sort = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		c.Format = v
	}
	if v, ok := lookup(EnvPrefix + "MIN_SATURATION"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMIN_SATURATION: %w", EnvPrefix, err)
		}
		c.MinSaturation = f
	}
	if v, ok := lookup(EnvPrefix + "MIN_VALUE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMIN_VALUE: %w", EnvPrefix, err)
		}
		c.MinValue = f
	}
	if v, ok := lookup(EnvPrefix + "SEED_MODE"); ok {
		c.Seed.Mode = seed.Mode(v)
	}
	if v, ok := lookup(EnvPrefix + "SEED_VALUE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sSEED_VALUE: %w", EnvPrefix, err)
		}
		c.Seed.Value = &n
	}
	return nil
}

// Params converts the config into extraction parameters (without a seed).
func (c Config) Params() colour.ExtractionParams {
	return colour.ExtractionParams{
		Colours:       c.Colours,
		MinSaturation: c.MinSaturation,
		MinValue:      c.MinValue,
	}
}

// Validate checks every field that has a fixed domain.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := colour.ParseSortMode(c.Sort); err != nil {
		return err
	}
	if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
		return err
	}
	return nil
}
