// Package config provides application configuration: preferences persisted
// in the database plus the release and keybinding files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SettingsStore is the key/value store preferences are persisted in.
// *db.DB satisfies it.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Setting keys
const (
	SettingBlurEnabled          = "blur_enabled"
	SettingConfirmExternalLinks = "confirm_external_links"
	SettingTheme                = "theme"
)

// ErrUnknownPreference is returned when a preference key is not recognised.
var ErrUnknownPreference = errors.New("unknown preference")

// boolDefaults lists the boolean preferences and their defaults.
var boolDefaults = map[string]bool{
	SettingBlurEnabled:          true,
	SettingConfirmExternalLinks: true,
}

// Preferences reads and writes user preferences.
type Preferences struct {
	store SettingsStore
}

// NewPreferences creates preferences backed by store.
func NewPreferences(store SettingsStore) *Preferences {
	return &Preferences{store: store}
}

// Keys returns the boolean preference keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(boolDefaults))
	for k := range boolDefaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Default returns the default for a boolean preference.
func Default(key string) (bool, error) {
	def, ok := boolDefaults[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	return def, nil
}

// Get returns the stored value for key, or def when it is unset or unreadable.
func (p *Preferences) Get(key string, def bool) bool {
	raw, err := p.store.GetSetting(key)
	if err != nil || raw == "" {
		return def
	}
	v, err := ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// Set stores value for a known boolean preference.
func (p *Preferences) Set(key string, value bool) error {
	if _, ok := boolDefaults[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreference, key)
	}
	return p.store.SetSetting(key, strconv.FormatBool(value))
}

// Toggle flips a boolean preference and returns the new value.
func (p *Preferences) Toggle(key string) (bool, error) {
	def, err := Default(key)
	if err != nil {
		return false, err
	}
	next := !p.Get(key, def)
	if err := p.Set(key, next); err != nil {
		return !next, err
	}
	return next, nil
}

// BlurEnabled reports whether the background blurs behind menus and dialogs.
func (p *Preferences) BlurEnabled() bool {
	return p.Get(SettingBlurEnabled, boolDefaults[SettingBlurEnabled])
}

// SetBlurEnabled sets the blur preference.
func (p *Preferences) SetBlurEnabled(v bool) error {
	return p.Set(SettingBlurEnabled, v)
}

// ConfirmExternalLinks reports whether external links need confirmation.
func (p *Preferences) ConfirmExternalLinks() bool {
	return p.Get(SettingConfirmExternalLinks, boolDefaults[SettingConfirmExternalLinks])
}

// SetConfirmExternalLinks sets the external link confirmation preference.
func (p *Preferences) SetConfirmExternalLinks(v bool) error {
	return p.Set(SettingConfirmExternalLinks, v)
}

// All returns every boolean preference with defaults applied.
func (p *Preferences) All() map[string]bool {
	out := make(map[string]bool, len(boolDefaults))
	for k, def := range boolDefaults {
		out[k] = p.Get(k, def)
	}
	return out
}

// Theme returns the stored UI theme name, or "" for the default.
func (p *Preferences) Theme() string {
	name, err := p.store.GetSetting(SettingTheme)
	if err != nil {
		return ""
	}
	return name
}

// SetTheme stores the UI theme name.
func (p *Preferences) SetTheme(name string) error {
	return p.store.SetSetting(SettingTheme, name)
}

// ParseBool accepts the usual strconv forms plus on/off and yes/no.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// ConfigDir returns ~/.config/countdown.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "countdown")
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
