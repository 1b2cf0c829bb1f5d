package ui

import (
	"testing"
)

func TestIcon(t *testing.T) {
	got := Icon("✓", "x")
	if SupportsUnicode() {
		if got != "✓" {
			t.Errorf("Icon() = %q, want unicode", got)
		}
	} else if got != "x" {
		t.Errorf("Icon() = %q, want ascii", got)
	}
}

func TestIconPairs(t *testing.T) {
	pairs := []struct {
		name    string
		unicode string
		ascii   string
		fn      func() string
	}{
		{"check", IconCheckUnicode, IconCheckASCII, IconCheck},
		{"pointer", IconPointerUnicode, IconPointerASCII, IconPointer},
		{"external", IconExternalUnicode, IconExternalASCII, IconExternal},
		{"block", IconBlockUnicode, IconBlockASCII, IconBlock},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			got := p.fn()
			if got != p.unicode && got != p.ascii {
				t.Errorf("%s icon = %q, want %q or %q", p.name, got, p.unicode, p.ascii)
			}
		})
	}
}

func TestButtonStyle(t *testing.T) {
	if got := ButtonStyle("#0070D1").GetBackground(); got == nil {
		t.Error("expected a background color")
	}
	// An empty brand color still renders the label
	if out := ButtonStyle("").Render("Steam"); out == "" {
		t.Error("expected rendered button")
	}
}
