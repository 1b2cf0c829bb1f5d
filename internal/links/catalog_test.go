package links

import (
	"testing"

	"github.com/bborn/countdown/internal/config"
)

func TestSocialURL(t *testing.T) {
	c := NewCatalog(config.DefaultRelease())

	tests := []struct {
		platform string
		want     string
	}{
		{"youtube", "https://www.youtube.com/rockstargames"},
		{"twitch", "https://www.twitch.tv/rockstargames"},
		{"tiktok", Fallback},
		{"", Fallback},
	}
	for _, tt := range tests {
		if got := c.SocialURL(tt.platform); got != tt.want {
			t.Errorf("SocialURL(%q) = %q, want %q", tt.platform, got, tt.want)
		}
	}
}

func TestSocialURLEmptyConfiguredURL(t *testing.T) {
	r := config.DefaultRelease()
	r.SocialMedia = []config.SocialLink{{Platform: "youtube"}}
	if got := NewCatalog(r).SocialURL("youtube"); got != Fallback {
		t.Errorf("SocialURL() = %q, want fallback", got)
	}
}

func TestPlatformButtons(t *testing.T) {
	buttons := NewCatalog(config.DefaultRelease()).PlatformButtons()
	if len(buttons) != 1 {
		t.Fatalf("PlatformButtons() = %d buttons, want only the store with a product URL", len(buttons))
	}
	b := buttons[0]
	if b.Platform != "PlayStation 5" || b.Store != "PlayStation Store" || b.Color != "#0070D1" {
		t.Errorf("unexpected button %+v", b)
	}
	if b.URL != "https://www.playstation.com/en-us/games/grand-theft-auto-vi/" {
		t.Errorf("button URL = %q", b.URL)
	}
}

func TestPlatformButtonsKeepsConfiguredOrder(t *testing.T) {
	r := config.DefaultRelease()
	for i := range r.Storefronts {
		r.Storefronts[i].ProductURL = "https://example.com/" + r.Storefronts[i].Name
	}
	r.Platforms = append(r.Platforms, config.Platform{Name: "Dreamcast", Store: "Sega Store"})

	buttons := NewCatalog(r).PlatformButtons()
	want := []string{"Xbox Series X|S", "PlayStation 5", "Steam", "Rockstar Games Launcher"}
	if len(buttons) != len(want) {
		t.Fatalf("got %d buttons, want %d", len(buttons), len(want))
	}
	for i, name := range want {
		if buttons[i].Platform != name {
			t.Errorf("button %d = %q, want %q", i, buttons[i].Platform, name)
		}
	}
}

func TestMenus(t *testing.T) {
	c := NewCatalog(config.DefaultRelease())
	menus := c.Menus()
	if len(menus) != 3 {
		t.Fatalf("Menus() = %d, want 3", len(menus))
	}
	if menus[0].Name != MenuTrailers || menus[1].Name != MenuExternalLinks || menus[2].Name != MenuOptions {
		t.Errorf("menu order = %s, %s, %s", menus[0].Name, menus[1].Name, menus[2].Name)
	}

	trailers := menus[0].Items
	if len(trailers) != 3 {
		t.Fatalf("trailers menu has %d items, want 3", len(trailers))
	}
	if trailers[1].Kind != KindTrailer || trailers[1].Trailer != 1 {
		t.Errorf("second trailer item = %+v", trailers[1])
	}
	last := trailers[2]
	if last.Label != "View Official YouTube Channel" || last.URL != "https://www.youtube.com/rockstargames" {
		t.Errorf("channel item = %+v", last)
	}

	links := menus[1].Items
	// 4 social links, a separator and 3 websites
	if len(links) != 8 {
		t.Fatalf("external links menu has %d items, want 8", len(links))
	}
	if links[4].Kind != KindSeparator || links[4].Selectable() {
		t.Errorf("item 4 = %+v, want separator", links[4])
	}
	if links[0].Label != "YouTube" || links[5].Label != "Official Website" {
		t.Errorf("labels = %q, %q", links[0].Label, links[5].Label)
	}

	options := menus[2].Items
	if len(options) != 3 {
		t.Fatalf("options menu has %d items, want 3", len(options))
	}
	if options[0].Setting != config.SettingBlurEnabled || options[1].Setting != config.SettingConfirmExternalLinks {
		t.Errorf("toggle settings = %q, %q", options[0].Setting, options[1].Setting)
	}
	if options[2].Label != "View on GitHub" {
		t.Errorf("last option = %q", options[2].Label)
	}
}

func TestMenuLookup(t *testing.T) {
	c := NewCatalog(config.DefaultRelease())
	if m, ok := c.Menu(MenuOptions); !ok || m.Name != MenuOptions {
		t.Errorf("Menu(Options) = %+v, %v", m, ok)
	}
	if _, ok := c.Menu("Downloads"); ok {
		t.Error("Menu(Downloads) should not exist")
	}
}

func TestSocialLabel(t *testing.T) {
	if got := socialLabel("mastodon"); got != "Mastodon" {
		t.Errorf("socialLabel(mastodon) = %q", got)
	}
	if got := socialLabel("twitter"); got != "Twitter" {
		t.Errorf("socialLabel(twitter) = %q", got)
	}
}
