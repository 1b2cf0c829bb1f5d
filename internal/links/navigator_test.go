package links

import (
	"errors"
	"testing"
)

type confirmFlag bool

func (c confirmFlag) ConfirmExternalLinks() bool { return bool(c) }

type failingOpener struct{}

func (failingOpener) Open(string) error { return errors.New("no browser") }

func TestNavigatorConfirmFlow(t *testing.T) {
	opener := &RecordingOpener{}
	nav := NewNavigator(opener, confirmFlag(true))

	needsConfirm, err := nav.Request("https://example.com")
	if err != nil || !needsConfirm {
		t.Fatalf("Request() = %v, %v; want pending", needsConfirm, err)
	}
	if nav.Pending() != "https://example.com" {
		t.Errorf("Pending() = %q", nav.Pending())
	}
	if len(opener.Opened()) != 0 {
		t.Error("URL opened before confirmation")
	}

	if err := nav.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if opener.Last() != "https://example.com" {
		t.Errorf("opened %v", opener.Opened())
	}
	if nav.Pending() != "" {
		t.Error("pending URL not cleared after Confirm")
	}
}

func TestNavigatorCancel(t *testing.T) {
	opener := &RecordingOpener{}
	nav := NewNavigator(opener, confirmFlag(true))

	nav.Request("https://example.com")
	nav.Cancel()
	if nav.Pending() != "" {
		t.Error("pending URL not cleared after Cancel")
	}
	if err := nav.Confirm(); err != nil {
		t.Fatalf("Confirm with nothing pending: %v", err)
	}
	if len(opener.Opened()) != 0 {
		t.Errorf("opened %v after cancel", opener.Opened())
	}
}

func TestNavigatorOpensImmediatelyWithoutConfirmation(t *testing.T) {
	opener := &RecordingOpener{}
	nav := NewNavigator(opener, confirmFlag(false))

	needsConfirm, err := nav.Request("https://example.com/a")
	if err != nil || needsConfirm {
		t.Fatalf("Request() = %v, %v; want opened", needsConfirm, err)
	}
	if opener.Last() != "https://example.com/a" {
		t.Errorf("opened %v", opener.Opened())
	}
}

func TestNavigatorNilSettingConfirms(t *testing.T) {
	nav := NewNavigator(&RecordingOpener{}, nil)
	if needsConfirm, _ := nav.Request("https://example.com"); !needsConfirm {
		t.Error("nil setting should require confirmation")
	}
}

func TestNavigatorIgnoresFallback(t *testing.T) {
	opener := &RecordingOpener{}
	nav := NewNavigator(opener, confirmFlag(false))

	for _, url := range []string{"", Fallback} {
		if needsConfirm, err := nav.Request(url); needsConfirm || err != nil {
			t.Errorf("Request(%q) = %v, %v", url, needsConfirm, err)
		}
	}
	if len(opener.Opened()) != 0 {
		t.Errorf("opened %v", opener.Opened())
	}
}

func TestNavigatorOpenerError(t *testing.T) {
	nav := NewNavigator(failingOpener{}, confirmFlag(true))
	nav.Request("https://example.com")
	if err := nav.Confirm(); err == nil {
		t.Error("expected opener error")
	}
	if nav.Pending() != "" {
		t.Error("pending URL should be cleared even when opening fails")
	}
}
