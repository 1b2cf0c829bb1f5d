package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bborn/countdown/internal/countdown"
	"gopkg.in/yaml.v3"
)

// Trailer is a video shown in the Trailers menu.
type Trailer struct {
	URL         string `yaml:"url" json:"url"`
	Title       string `yaml:"title" json:"title"`
	UploadDate  string `yaml:"upload_date" json:"upload_date"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Uploaded parses the trailer's upload date.
func (t Trailer) Uploaded() (time.Time, error) {
	return countdown.ParseTarget(t.UploadDate)
}

// SocialLink is a social media profile.
type SocialLink struct {
	Platform string `yaml:"platform" json:"platform"`
	Color    string `yaml:"color" json:"color"`
	URL      string `yaml:"url" json:"url"`
}

// Website is an official website link.
type Website struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
	URL  string `yaml:"url" json:"url"`
}

// Storefront is a store selling the game.
type Storefront struct {
	Name        string `yaml:"name" json:"name"`
	HomepageURL string `yaml:"homepage_url" json:"homepage_url"`
	ProductURL  string `yaml:"product_url,omitempty" json:"product_url,omitempty"`
}

// Platform is a wishlist button linked to a storefront by name.
type Platform struct {
	Name  string `yaml:"name" json:"name"`
	Store string `yaml:"store" json:"store"`
	Color string `yaml:"color" json:"color"`
}

// Release describes what is being counted down to and the links around it.
type Release struct {
	Title       string       `yaml:"title"`
	DateLabel   string       `yaml:"date_label"`
	Target      string       `yaml:"target"`
	Repository  string       `yaml:"repository,omitempty"`
	Trailers    []Trailer    `yaml:"trailers"`
	SocialMedia []SocialLink `yaml:"social_media"`
	Websites    []Website    `yaml:"websites"`
	Storefronts []Storefront `yaml:"storefronts"`
	Platforms   []Platform   `yaml:"platforms"`

	target time.Time
}

// DefaultRelease returns the built-in release configuration.
func DefaultRelease() *Release {
	return &Release{
		Title:      "Grand Theft Auto VI",
		DateLabel:  "May 26 2026",
		Target:     "2026-05-26T00:00:00Z",
		Repository: "https://github.com/TerryJG/gta-countdown",
		Trailers: []Trailer{
			{
				URL:        "https://www.youtube.com/watch?v=QdBZY2fkU-0",
				Title:      "Grand Theft Auto VI Trailer 1",
				UploadDate: "2023-12-04T18:07:00Z",
			},
			{
				URL:         "https://www.youtube.com/watch?v=VQRLujxTm3c",
				Title:       "Grand Theft Auto VI Trailer 2",
				UploadDate:  "2025-05-06T09:29:00Z",
				Description: "First official trailer for Grand Theft Auto VI",
			},
		},
		SocialMedia: []SocialLink{
			{Platform: "youtube", Color: "#ff0000", URL: "https://www.youtube.com/rockstargames"},
			{Platform: "twitter", Color: "#1da1f2", URL: "https://twitter.com/rockstargames"},
			{Platform: "instagram", Color: "#833ab4", URL: "https://www.instagram.com/rockstargames/"},
			{Platform: "twitch", Color: "#6034b2", URL: "https://www.twitch.tv/rockstargames"},
		},
		Websites: []Website{
			{Name: "Official Website", Icon: "platforms/rockstargames.webp", URL: "https://www.rockstargames.com/"},
			{Name: "Social Club", Icon: "platforms/rockstargames.webp", URL: "https://socialclub.rockstargames.com/"},
			{Name: "GTAVI Official Website", Icon: "platforms/rockstargames.webp", URL: "https://www.rockstargames.com/VI"},
		},
		Storefronts: []Storefront{
			{Name: "Xbox Store", HomepageURL: "https://www.xbox.com/en-US/games/all-games/console"},
			{Name: "PlayStation Store", HomepageURL: "https://store.playstation.com/", ProductURL: "https://www.playstation.com/en-us/games/grand-theft-auto-vi/"},
			{Name: "Steam", HomepageURL: "https://store.steampowered.com/"},
			{Name: "Rockstar Games Store", HomepageURL: "https://store.rockstargames.com/"},
		},
		Platforms: []Platform{
			{Name: "Xbox Series X|S", Store: "Xbox Store", Color: "#107c10"},
			{Name: "PlayStation 5", Store: "PlayStation Store", Color: "#0070D1"},
			{Name: "Steam", Store: "Steam", Color: "#1f2937"},
			{Name: "Rockstar Games Launcher", Store: "Rockstar Games Store", Color: "#e19808"},
		},
	}
}

// DefaultReleaseConfigPath returns the default path for the release config file.
func DefaultReleaseConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "release.yaml")
}

// LoadRelease loads the release config from path over the built-in
// defaults, applies the COUNTDOWN_TARGET override and validates the result.
// A missing file is not an error; an invalid target is.
func LoadRelease(path string) (*Release, error) {
	r := DefaultRelease()

	if path != "" {
		data, err := os.ReadFile(expandPath(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, r); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// File doesn't exist, use defaults
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if env := os.Getenv("COUNTDOWN_TARGET"); env != "" {
		r.Target = env
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate parses the target and trailer dates. The release target must be
// valid; the countdown never runs against an unparsable date.
func (r *Release) Validate() error {
	t, err := countdown.ParseTarget(r.Target)
	if err != nil {
		return fmt.Errorf("release target: %w", err)
	}
	r.target = t

	for i, tr := range r.Trailers {
		if tr.URL == "" {
			return fmt.Errorf("trailer %d: missing url", i+1)
		}
		if tr.UploadDate == "" {
			continue
		}
		if _, err := tr.Uploaded(); err != nil {
			return fmt.Errorf("trailer %q upload date: %w", tr.Title, err)
		}
	}
	return nil
}

// TargetTime returns the validated target instant. It is the zero time
// until Validate succeeds.
func (r *Release) TargetTime() time.Time {
	return r.target
}

// GenerateDefaultReleaseYAML renders the built-in release config as YAML.
func GenerateDefaultReleaseYAML() (string, error) {
	data, err := yaml.Marshal(DefaultRelease())
	if err != nil {
		return "", err
	}
	return `# Countdown release configuration
# target is an ISO-8601 timestamp; a bad value stops the countdown from starting.
# Platforms show a wishlist button only when their store has a product_url.
` + string(data), nil
}

// WriteDefaultRelease writes the default release config to path. An existing
// file is only replaced when force is set.
func WriteDefaultRelease(path string, force bool) error {
	path = expandPath(path)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}
	content, err := GenerateDefaultReleaseYAML()
	if err != nil {
		return fmt.Errorf("render release config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}
