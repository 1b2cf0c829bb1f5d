package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// KeybindingConfig represents a single keybinding configuration.
type KeybindingConfig struct {
	Keys []string `yaml:"keys"` // Key(s) that trigger the action
	Help string   `yaml:"help"` // Help text displayed in the UI
}

// KeybindingsConfig holds all customizable keybindings.
type KeybindingsConfig struct {
	Left          *KeybindingConfig `yaml:"left,omitempty"`
	Right         *KeybindingConfig `yaml:"right,omitempty"`
	Up            *KeybindingConfig `yaml:"up,omitempty"`
	Down          *KeybindingConfig `yaml:"down,omitempty"`
	Enter         *KeybindingConfig `yaml:"enter,omitempty"`
	Back          *KeybindingConfig `yaml:"back,omitempty"`
	Menu          *KeybindingConfig `yaml:"menu,omitempty"`
	Trailers      *KeybindingConfig `yaml:"trailers,omitempty"`
	Links         *KeybindingConfig `yaml:"links,omitempty"`
	Options       *KeybindingConfig `yaml:"options,omitempty"`
	Platforms     *KeybindingConfig `yaml:"platforms,omitempty"`
	ToggleBlur    *KeybindingConfig `yaml:"toggle_blur,omitempty"`
	ToggleConfirm *KeybindingConfig `yaml:"toggle_confirm,omitempty"`
	Help          *KeybindingConfig `yaml:"help,omitempty"`
	Quit          *KeybindingConfig `yaml:"quit,omitempty"`
}

// DefaultKeybindingsConfigPath returns the default path for the keybindings config file.
func DefaultKeybindingsConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "keybindings.yaml")
}

// LoadKeybindings loads keybindings from the default config path.
// Returns nil if the file doesn't exist (not an error - just use defaults).
func LoadKeybindings() (*KeybindingsConfig, error) {
	return LoadKeybindingsFromPath(DefaultKeybindingsConfigPath())
}

// LoadKeybindingsFromPath loads keybindings from a specific path.
// Returns nil if the file doesn't exist (not an error - just use defaults).
func LoadKeybindingsFromPath(path string) (*KeybindingsConfig, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, use defaults
		}
		return nil, err
	}

	var config KeybindingsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GenerateDefaultKeybindingsYAML generates a YAML string with all default keybindings.
// This can be used to create an example config file.
func GenerateDefaultKeybindingsYAML() string {
	return `# Countdown Keybindings Configuration
# Each keybinding has:
#   keys: list of key(s) that trigger the action (e.g., ["t"], ["ctrl+t", "T"])
#   help: text shown in the help bar
#
# Only include keybindings you want to customize.
# Omitted keybindings will use defaults.

# Navigation
left:
  keys: ["left", "h"]
  help: "prev"

right:
  keys: ["right", "l"]
  help: "next"

up:
  keys: ["up", "k"]
  help: "up"

down:
  keys: ["down", "j"]
  help: "down"

enter:
  keys: ["enter"]
  help: "open"

back:
  keys: ["esc"]
  help: "close"

# Menus
menu:
  keys: ["m"]
  help: "menu"

trailers:
  keys: ["t"]
  help: "trailers"

links:
  keys: ["e"]
  help: "external links"

options:
  keys: ["o"]
  help: "options"

platforms:
  keys: ["w"]
  help: "wishlist"

# Preferences
toggle_blur:
  keys: ["B"]
  help: "blur effect"

toggle_confirm:
  keys: ["A"]
  help: "link alerts"

help:
  keys: ["?"]
  help: "help"

quit:
  keys: ["q", "ctrl+c"]
  help: "quit"
`
}
