package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kavia-common/quill/internal/config"
)

type ColorScheme struct {
	titleStyle    lipgloss.Style
	pinnedStyle   lipgloss.Style
	tagStyle      lipgloss.Style
	dateStyle     lipgloss.Style
	selectorStyle lipgloss.Style
	mutedStyle    lipgloss.Style
	borderStyle   lipgloss.Style
	errorStyle    lipgloss.Style
	filterStyle   lipgloss.Style
}

var colors ColorScheme

// InitializeColors rebuilds the style set from a palette. Called at
// startup and again whenever the theme toggles.
func InitializeColors(p config.ColorScheme) {
	colors = ColorScheme{
		titleStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.TitleColor)),
		pinnedStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.PinnedColor)),
		tagStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.TagColor)).Background(lipgloss.Color(p.TagBgColor)).Padding(0, 1),
		dateStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.DateColor)),
		selectorStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.SelectorColor)),
		mutedStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedColor)),
		borderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.BorderColor)),
		errorStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor)),
		filterStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.FilterColor)).Background(lipgloss.Color(p.FilterBgColor)),
	}
}
