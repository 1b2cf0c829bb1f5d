// Package ui provides the terminal user interface.
package ui

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used in the UI.
type Theme struct {
	Name string `json:"name"`

	// Core colors
	Primary   string `json:"primary"`   // Greatest unit, focused menu
	Secondary string `json:"secondary"` // Unit labels, links
	Muted     string `json:"muted"`     // Dimmed text, borders

	// Semantic colors
	Success string `json:"success"` // Released banner
	Warning string `json:"warning"` // External link dialog
	Error   string `json:"error"`   // Errors

	// Cell colors
	CellBg     string `json:"cell_bg"`     // Unit cell background
	CellFg     string `json:"cell_fg"`     // Unit cell foreground
	CellBorder string `json:"cell_border"` // Unit cell border
}

// BuiltinThemes contains all built-in themes.
var BuiltinThemes = map[string]Theme{
	"onedark":    OneDarkTheme,
	"default":    DefaultTheme,
	"nord":       NordTheme,
	"gruvbox":    GruvboxTheme,
	"catppuccin": CatppuccinTheme,
}

// OneDarkTheme is inspired by Atom's One Dark theme.
var OneDarkTheme = Theme{
	Name: "onedark",

	Primary:   "#61AFEF", // Soft blue
	Secondary: "#56B6C2", // Cyan
	Muted:     "#5C6370", // Comment gray

	Success: "#98C379", // Green
	Warning: "#E5C07B", // Yellow
	Error:   "#E06C75", // Red

	CellBg:     "#3E4451",
	CellFg:     "#ABB2BF",
	CellBorder: "#3E4451",
}

// DefaultTheme leans on the pink and orange of the release artwork.
var DefaultTheme = Theme{
	Name: "default",

	Primary:   "#EC4899", // Pink
	Secondary: "#F59E0B", // Amber
	Muted:     "#6B7280", // Gray

	Success: "#10B981", // Green
	Warning: "#F59E0B", // Amber
	Error:   "#EF4444", // Red

	CellBg:     "#1F2937",
	CellFg:     "#FFFFFF",
	CellBorder: "#6B7280",
}

// NordTheme is inspired by the Nord color palette.
var NordTheme = Theme{
	Name: "nord",

	Primary:   "#88C0D0", // Nord8
	Secondary: "#81A1C1", // Nord9
	Muted:     "#4C566A", // Nord3

	Success: "#A3BE8C", // Nord14
	Warning: "#EBCB8B", // Nord13
	Error:   "#BF616A", // Nord11

	CellBg:     "#3B4252", // Nord1
	CellFg:     "#ECEFF4", // Nord6
	CellBorder: "#4C566A", // Nord3
}

// GruvboxTheme is inspired by the Gruvbox color scheme.
var GruvboxTheme = Theme{
	Name: "gruvbox",

	Primary:   "#FE8019", // Orange
	Secondary: "#83A598", // Aqua
	Muted:     "#665C54", // Gray

	Success: "#B8BB26", // Green
	Warning: "#FABD2F", // Yellow
	Error:   "#FB4934", // Red

	CellBg:     "#3C3836",
	CellFg:     "#EBDBB2",
	CellBorder: "#504945",
}

// CatppuccinTheme is inspired by Catppuccin Mocha.
var CatppuccinTheme = Theme{
	Name: "catppuccin",

	Primary:   "#F5C2E7", // Pink
	Secondary: "#89DCEB", // Sky
	Muted:     "#6C7086", // Overlay0

	Success: "#A6E3A1", // Green
	Warning: "#F9E2AF", // Yellow
	Error:   "#F38BA8", // Red

	CellBg:     "#313244", // Surface0
	CellFg:     "#CDD6F4", // Text
	CellBorder: "#45475A", // Surface1
}

// currentTheme is the active theme.
var currentTheme = DefaultTheme

// CurrentTheme returns the current theme.
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the current theme by name.
func SetTheme(name string) error {
	theme, ok := BuiltinThemes[name]
	if !ok {
		return fmt.Errorf("unknown theme: %s", name)
	}
	currentTheme = theme
	refreshStyles()
	return nil
}

// SetThemeFromJSON sets a custom theme from JSON.
func SetThemeFromJSON(data string) error {
	var theme Theme
	if err := json.Unmarshal([]byte(data), &theme); err != nil {
		return fmt.Errorf("parse theme: %w", err)
	}
	if theme.Name == "" {
		theme.Name = "custom"
	}
	currentTheme = theme
	refreshStyles()
	return nil
}

// LoadTheme applies a stored theme value: a builtin name or a JSON theme.
// Empty or unknown values leave the current theme alone.
func LoadTheme(stored string) {
	if stored == "" {
		return
	}
	if _, ok := BuiltinThemes[stored]; ok {
		SetTheme(stored)
		return
	}
	if err := SetThemeFromJSON(stored); err != nil {
		GetLogger().Warn("ignoring stored theme", "err", err)
	}
}

// ListThemes returns the names of all built-in themes, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(BuiltinThemes))
	for name := range BuiltinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// refreshStyles updates all lipgloss styles after a theme change.
func refreshStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorSuccess = lipgloss.Color(t.Success)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorMuted = lipgloss.Color(t.Muted)

	buildStyles()
}

// GetThemeCellColors returns unit cell colors from the current theme.
func GetThemeCellColors() (bg, fg, border lipgloss.Color) {
	return lipgloss.Color(currentTheme.CellBg), lipgloss.Color(currentTheme.CellFg), lipgloss.Color(currentTheme.CellBorder)
}
