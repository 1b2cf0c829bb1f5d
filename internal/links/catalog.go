// Package links builds the platform buttons and link menus shown around the
// countdown, and opens external links.
package links

import (
	"strings"

	"github.com/bborn/countdown/internal/config"
)

// Fallback is the URL used when a social platform is not configured.
const Fallback = "#"

// Menu names
const (
	MenuTrailers      = "Trailers"
	MenuExternalLinks = "External Links"
	MenuOptions       = "Options"
)

// ItemKind describes what selecting a menu item does.
type ItemKind string

const (
	KindLink      ItemKind = "link"
	KindTrailer   ItemKind = "trailer"
	KindToggle    ItemKind = "toggle"
	KindSeparator ItemKind = "separator"
)

// Item is one entry in a link menu.
type Item struct {
	Kind  ItemKind `json:"kind"`
	Label string   `json:"label,omitempty"`
	URL   string   `json:"url,omitempty"`
	Color string   `json:"color,omitempty"`
	// Setting is the preference key a toggle item flips.
	Setting string `json:"setting,omitempty"`
	// Trailer indexes into Release.Trailers for trailer items.
	Trailer int `json:"trailer,omitempty"`
}

// Selectable reports whether the item can be focused.
func (i Item) Selectable() bool {
	return i.Kind != KindSeparator
}

// Menu is a named list of items.
type Menu struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Button is a wishlist button for a platform whose store sells the game.
type Button struct {
	Platform string `json:"platform"`
	Store    string `json:"store"`
	Color    string `json:"color"`
	URL      string `json:"url"`
}

// Catalog answers link lookups for a release.
type Catalog struct {
	release *config.Release
}

// NewCatalog creates a catalog for release.
func NewCatalog(release *config.Release) *Catalog {
	return &Catalog{release: release}
}

// Release returns the release the catalog was built from.
func (c *Catalog) Release() *config.Release {
	return c.release
}

// SocialURL returns the profile URL for platform, or Fallback.
func (c *Catalog) SocialURL(platform string) string {
	for _, s := range c.release.SocialMedia {
		if s.Platform == platform && s.URL != "" {
			return s.URL
		}
	}
	return Fallback
}

// PlatformButtons returns a button per platform whose storefront has a
// product URL, in configured order.
func (c *Catalog) PlatformButtons() []Button {
	var buttons []Button
	for _, p := range c.release.Platforms {
		store, ok := c.storefront(p.Store)
		if !ok || store.ProductURL == "" {
			continue
		}
		buttons = append(buttons, Button{
			Platform: p.Name,
			Store:    store.Name,
			Color:    p.Color,
			URL:      store.ProductURL,
		})
	}
	return buttons
}

func (c *Catalog) storefront(name string) (config.Storefront, bool) {
	for _, s := range c.release.Storefronts {
		if s.Name == name {
			return s, true
		}
	}
	return config.Storefront{}, false
}

// Menus returns the Trailers, External Links and Options menus.
func (c *Catalog) Menus() []Menu {
	return []Menu{c.trailersMenu(), c.externalLinksMenu(), c.optionsMenu()}
}

// Menu returns the menu called name.
func (c *Catalog) Menu(name string) (Menu, bool) {
	for _, m := range c.Menus() {
		if m.Name == name {
			return m, true
		}
	}
	return Menu{}, false
}

func (c *Catalog) trailersMenu() Menu {
	m := Menu{Name: MenuTrailers}
	for i, t := range c.release.Trailers {
		m.Items = append(m.Items, Item{Kind: KindTrailer, Label: t.Title, URL: t.URL, Trailer: i})
	}
	m.Items = append(m.Items, Item{
		Kind:  KindLink,
		Label: "View Official YouTube Channel",
		URL:   c.SocialURL("youtube"),
	})
	return m
}

func (c *Catalog) externalLinksMenu() Menu {
	m := Menu{Name: MenuExternalLinks}
	for _, s := range c.release.SocialMedia {
		m.Items = append(m.Items, Item{Kind: KindLink, Label: socialLabel(s.Platform), URL: s.URL, Color: s.Color})
	}
	if len(c.release.Websites) > 0 && len(m.Items) > 0 {
		m.Items = append(m.Items, Item{Kind: KindSeparator})
	}
	for _, w := range c.release.Websites {
		m.Items = append(m.Items, Item{Kind: KindLink, Label: w.Name, URL: w.URL})
	}
	return m
}

func (c *Catalog) optionsMenu() Menu {
	m := Menu{Name: MenuOptions, Items: []Item{
		{Kind: KindToggle, Label: "Blur Effect", Setting: config.SettingBlurEnabled},
		{Kind: KindToggle, Label: "Enable Alert for External Links", Setting: config.SettingConfirmExternalLinks},
	}}
	if c.release.Repository != "" {
		m.Items = append(m.Items, Item{Kind: KindLink, Label: "View on GitHub", URL: c.release.Repository})
	}
	return m
}

var socialLabels = map[string]string{
	"youtube":   "YouTube",
	"twitter":   "Twitter",
	"instagram": "Instagram",
	"twitch":    "Twitch",
}

func socialLabel(platform string) string {
	if l, ok := socialLabels[platform]; ok {
		return l
	}
	if platform == "" {
		return platform
	}
	return strings.ToUpper(platform[:1]) + platform[1:]
}
