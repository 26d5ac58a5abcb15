// Package config loads quill's configuration from
// ~/.config/quill/config.toml with environment overrides and sensible
// defaults, including the light and dark color palettes the TUI renders
// with.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// colorNameMap maps user-friendly color names to ANSI 16-color values
var colorNameMap = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright-black":   "8",
	"gray":           "8", // alias for bright-black
	"bright-red":     "9",
	"bright-green":   "10",
	"bright-yellow":  "11",
	"bright-blue":    "12",
	"bright-magenta": "13",
	"bright-cyan":    "14",
	"bright-white":   "15",
}

// resolveColorValue converts color names to ANSI 16-color numbers.
// Hex colors, ANSI numbers, and 256-color codes pass through unchanged;
// lipgloss handles validation and rendering.
func resolveColorValue(colorInput string) string {
	if colorInput == "" {
		return colorInput
	}
	if ansiValue, exists := colorNameMap[strings.ToLower(colorInput)]; exists {
		return ansiValue
	}
	return colorInput
}

// ColorScheme holds the palette for one theme. Empty fields take the
// theme's built-in default.
type ColorScheme struct {
	TitleColor    string `toml:"title"`
	PinnedColor   string `toml:"pinned"`
	TagColor      string `toml:"tag"`
	TagBgColor    string `toml:"tag-bg"`
	DateColor     string `toml:"date"`
	SelectorColor string `toml:"selector"`
	MutedColor    string `toml:"muted"`
	BorderColor   string `toml:"border"`
	ErrorColor    string `toml:"error"`
	FilterColor   string `toml:"filter"`
	FilterBgColor string `toml:"filter-bg"`
}

// Config is the loaded configuration.
type Config struct {
	DataDir  string      `toml:"data_dir"`
	Snapshot bool        `toml:"snapshot"`
	Light    ColorScheme `toml:"light"`
	Dark     ColorScheme `toml:"dark"`
}

// Load reads the config file if present and applies environment
// overrides and defaults. A missing file is not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "quill", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.DataDir = expandEnv(cfg.DataDir)
	}

	// Environment variables override the config file
	if dir := os.Getenv("QUILL_DIR"); dir != "" {
		cfg.DataDir = expandEnv(dir)
	}
	if snap := os.Getenv("QUILL_SNAPSHOT"); snap != "" {
		cfg.Snapshot = snap == "true" || snap == "1"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(home, ".local", "share", "quill")
	}

	return cfg, nil
}

func expandEnv(s string) string {
	if s == "" {
		return s
	}
	if strings.Contains(s, "$HOME") {
		home, _ := os.UserHomeDir()
		s = strings.ReplaceAll(s, "$HOME", home)
	}
	return os.ExpandEnv(s)
}

// lightDefaults is the palette for light terminal backgrounds.
var lightDefaults = ColorScheme{
	TitleColor:    "0",  // Black
	PinnedColor:   "5",  // Magenta
	TagColor:      "15", // White text
	TagBgColor:    "4",  // Blue background
	DateColor:     "4",  // Blue
	SelectorColor: "5",  // Magenta
	MutedColor:    "8",  // Bright black (faded)
	BorderColor:   "4",  // Blue
	ErrorColor:    "1",  // Red
	FilterColor:   "5",  // Magenta
	FilterBgColor: "7",  // Light gray background
}

// darkDefaults is the palette for dark terminal backgrounds.
var darkDefaults = ColorScheme{
	TitleColor:    "15", // White
	PinnedColor:   "3",  // Yellow
	TagColor:      "0",  // Black text
	TagBgColor:    "14", // Light blue background
	DateColor:     "6",  // Cyan
	SelectorColor: "3",  // Yellow
	MutedColor:    "8",  // Bright black (faded)
	BorderColor:   "2",  // Green
	ErrorColor:    "9",  // Bright red
	FilterColor:   "3",  // Yellow
	FilterBgColor: "0",  // Black background
}

// Palette returns the resolved color scheme for a theme: built-in
// defaults for "light" or "dark", per-field user overrides on top,
// color names resolved to ANSI values.
func (c *Config) Palette(theme string) ColorScheme {
	var defaults, overrides ColorScheme
	switch strings.ToLower(theme) {
	case "dark":
		defaults, overrides = darkDefaults, c.Dark
	default:
		defaults, overrides = lightDefaults, c.Light
	}

	pick := func(override, def string) string {
		if override != "" {
			return resolveColorValue(override)
		}
		return resolveColorValue(def)
	}

	return ColorScheme{
		TitleColor:    pick(overrides.TitleColor, defaults.TitleColor),
		PinnedColor:   pick(overrides.PinnedColor, defaults.PinnedColor),
		TagColor:      pick(overrides.TagColor, defaults.TagColor),
		TagBgColor:    pick(overrides.TagBgColor, defaults.TagBgColor),
		DateColor:     pick(overrides.DateColor, defaults.DateColor),
		SelectorColor: pick(overrides.SelectorColor, defaults.SelectorColor),
		MutedColor:    pick(overrides.MutedColor, defaults.MutedColor),
		BorderColor:   pick(overrides.BorderColor, defaults.BorderColor),
		ErrorColor:    pick(overrides.ErrorColor, defaults.ErrorColor),
		FilterColor:   pick(overrides.FilterColor, defaults.FilterColor),
		FilterBgColor: pick(overrides.FilterBgColor, defaults.FilterBgColor),
	}
}
