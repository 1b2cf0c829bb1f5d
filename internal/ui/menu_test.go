package ui

import (
	"strings"
	"testing"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/links"
)

func defaultMenus() []links.Menu {
	return links.NewCatalog(config.DefaultRelease()).Menus()
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(defaultMenus())

	if m.ActiveName() != links.MenuTrailers {
		t.Fatalf("ActiveName() = %q, want Trailers", m.ActiveName())
	}
	m.Next()
	if m.ActiveName() != links.MenuExternalLinks {
		t.Errorf("after Next ActiveName() = %q", m.ActiveName())
	}
	m.Prev()
	m.Prev()
	if m.ActiveName() != links.MenuOptions {
		t.Errorf("Prev should wrap to Options, got %q", m.ActiveName())
	}
}

func TestMenuSkipsSeparators(t *testing.T) {
	m := NewMenuModel(defaultMenus())
	m.Focus(links.MenuExternalLinks)
	m.Open()

	for i := 0; i < 4; i++ {
		m.Down()
	}
	item, ok := m.Selected()
	if !ok {
		t.Fatal("cursor landed on a separator")
	}
	if item.Label != "Official Website" {
		t.Errorf("Selected() = %q, want Official Website", item.Label)
	}

	m.Up()
	item, _ = m.Selected()
	if item.Label != "Twitch" {
		t.Errorf("Up should skip the separator back to Twitch, got %q", item.Label)
	}

	// Moving past the end stays on the last item
	for i := 0; i < 10; i++ {
		m.Down()
	}
	item, _ = m.Selected()
	if item.Label != "GTAVI Official Website" {
		t.Errorf("Selected() = %q at the end", item.Label)
	}
}

func TestMenuOpenClose(t *testing.T) {
	m := NewMenuModel(defaultMenus())
	if m.IsOpen() {
		t.Error("menu should start closed")
	}
	m.Open()
	if !m.IsOpen() {
		t.Error("Open() did not open the menu")
	}
	m.Close()
	if m.IsOpen() {
		t.Error("Close() did not close the menu")
	}
}

func TestMenuSetMenusKeepsFocus(t *testing.T) {
	m := NewMenuModel(defaultMenus())
	m.Focus(links.MenuOptions)

	r := config.DefaultRelease()
	r.Trailers = r.Trailers[:1]
	m.SetMenus(links.NewCatalog(r).Menus())

	if m.ActiveName() != links.MenuOptions {
		t.Errorf("ActiveName() = %q after SetMenus", m.ActiveName())
	}
}

func TestMenuList(t *testing.T) {
	m := NewMenuModel(defaultMenus())
	m.Focus(links.MenuOptions)
	m.Open()

	out := m.List(80, map[string]bool{
		config.SettingBlurEnabled:          true,
		config.SettingConfirmExternalLinks: false,
	})
	for _, want := range []string{"Options", "Blur Effect", "Enable Alert for External Links", "View on GitHub"} {
		if !strings.Contains(out, want) {
			t.Errorf("List() missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "["+IconCheck()+"] Blur Effect") {
		t.Errorf("blur toggle should be checked:\n%s", out)
	}
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenuModel(nil)
	m.Next()
	m.Down()
	m.Open()
	if m.IsOpen() {
		t.Error("empty menu should not open")
	}
	if _, ok := m.Selected(); ok {
		t.Error("empty menu has no selection")
	}
}
