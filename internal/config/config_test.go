package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/gisramp/internal/colour"
	"github.com/jmylchreest/gisramp/internal/seed"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
colours: 9
sort: hue-ascending
min_saturation: 0.2
seed:
  mode: manual
  value: 77
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Colours != 9 {
		t.Errorf("Colours = %d, want 9", cfg.Colours)
	}
	if cfg.Sort != "hue-ascending" {
		t.Errorf("Sort = %q", cfg.Sort)
	}
	if cfg.MinSaturation != 0.2 {
		t.Errorf("MinSaturation = %v", cfg.MinSaturation)
	}
	if cfg.Format != "clr" {
		t.Errorf("Format default lost: %q", cfg.Format)
	}
	if cfg.Seed.Mode != seed.ModeManual || cfg.Seed.Value == nil || *cfg.Seed.Value != 77 {
		t.Errorf("Seed = %+v", cfg.Seed)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "colours: 9\nsort: hue-ascending\n")
	t.Setenv("GISRAMP_COLOURS", "4")
	t.Setenv("GISRAMP_MIN_VALUE", "0.3")
	t.Setenv("GISRAMP_SEED_MODE", "random")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Colours != 4 {
		t.Errorf("Colours = %d, want 4 from env", cfg.Colours)
	}
	if cfg.Sort != "hue-ascending" {
		t.Errorf("Sort = %q, want file value", cfg.Sort)
	}
	if cfg.MinValue != 0.3 {
		t.Errorf("MinValue = %v", cfg.MinValue)
	}
	if cfg.Seed.Mode != seed.ModeRandom {
		t.Errorf("Seed mode = %q", cfg.Seed.Mode)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad yaml", content: "colours: [1, 2"},
		{name: "too few colours", content: "colours: 1"},
		{name: "bad sort", content: "sort: sideways"},
		{name: "bad threshold", content: "min_value: 3"},
		{name: "bad seed mode", content: "seed:\n  mode: tidal"},
		{name: "bad env int", content: "", env: map[string]string{"GISRAMP_COLOURS": "seven"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}

	_, err := Load(writeConfig(t, "colours: 0"))
	var paramsErr *colour.InvalidParamsError
	if !errors.As(err, &paramsErr) {
		t.Errorf("Expected InvalidParamsError, got %v", err)
	}
}

func TestLoadMissingDefaultIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Colours != colour.DefaultColours {
		t.Errorf("Colours = %d, want default", cfg.Colours)
	}
}
