package config

import (
	"testing"
)

func TestResolveColorValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"color name", "red", "1"},
		{"bright name", "bright-blue", "12"},
		{"gray alias", "gray", "8"},
		{"case insensitive", "Magenta", "5"},
		{"ansi number passes through", "11", "11"},
		{"hex passes through", "#ff8800", "#ff8800"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveColorValue(tt.in); got != tt.want {
				t.Errorf("resolveColorValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteDefaults(t *testing.T) {
	cfg := &Config{}

	light := cfg.Palette("light")
	if light.TitleColor != "0" {
		t.Errorf("light title = %q, want black", light.TitleColor)
	}

	dark := cfg.Palette("dark")
	if dark.TitleColor != "15" {
		t.Errorf("dark title = %q, want white", dark.TitleColor)
	}

	// Unknown theme falls back to light.
	if got := cfg.Palette("mauve"); got.TitleColor != light.TitleColor {
		t.Errorf("unknown theme palette = %+v", got)
	}
}

func TestPaletteOverrides(t *testing.T) {
	cfg := &Config{
		Dark: ColorScheme{TitleColor: "bright-green"},
	}

	dark := cfg.Palette("dark")
	if dark.TitleColor != "10" {
		t.Errorf("override not resolved: %q", dark.TitleColor)
	}
	if dark.DateColor != "6" {
		t.Errorf("unset field lost its default: %q", dark.DateColor)
	}

	// Overrides for one theme leave the other alone.
	if light := cfg.Palette("light"); light.TitleColor != "0" {
		t.Errorf("light polluted by dark override: %q", light.TitleColor)
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUILL_DIR", "/tmp/quill-test-data")
	t.Setenv("QUILL_SNAPSHOT", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/tmp/quill-test-data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if !cfg.Snapshot {
		t.Error("Snapshot not enabled from env")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("QUILL_DIR", "")
	t.Setenv("QUILL_SNAPSHOT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir default missing")
	}
	if cfg.Snapshot {
		t.Error("Snapshot enabled by default")
	}
}
