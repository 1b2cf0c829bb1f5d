package links

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// Opener opens a URL outside the program.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs with the system browser.
type BrowserOpener struct{}

// Open starts the platform's URL handler and does not wait for it.
func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}

// RecordingOpener remembers opened URLs instead of launching anything.
// SSH sessions use it since the browser would open on the server.
type RecordingOpener struct {
	mu     sync.Mutex
	opened []string
}

// Open records url.
func (r *RecordingOpener) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, url)
	return nil
}

// Opened returns the URLs opened so far.
func (r *RecordingOpener) Opened() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.opened...)
}

// Last returns the most recently opened URL, or "".
func (r *RecordingOpener) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.opened) == 0 {
		return ""
	}
	return r.opened[len(r.opened)-1]
}

// ConfirmSetting reports whether external links need confirmation.
type ConfirmSetting interface {
	ConfirmExternalLinks() bool
}

// Navigator opens external links, holding them for confirmation first when
// the user asked to be warned.
type Navigator struct {
	opener  Opener
	confirm ConfirmSetting
	pending string
}

// NewNavigator creates a navigator. confirm may be nil, meaning links always
// need confirmation.
func NewNavigator(opener Opener, confirm ConfirmSetting) *Navigator {
	return &Navigator{opener: opener, confirm: confirm}
}

// Request asks to open url. It returns true when the url is now pending and
// the caller must show the confirmation dialog. Fallback and empty URLs are
// ignored.
func (n *Navigator) Request(url string) (bool, error) {
	if url == "" || url == Fallback {
		return false, nil
	}
	if n.confirm == nil || n.confirm.ConfirmExternalLinks() {
		n.pending = url
		return true, nil
	}
	return false, n.opener.Open(url)
}

// Pending returns the URL awaiting confirmation, or "".
func (n *Navigator) Pending() string {
	return n.pending
}

// Confirm opens the pending URL and clears it. It does nothing when no URL
// is pending.
func (n *Navigator) Confirm() error {
	url := n.pending
	if url == "" {
		return nil
	}
	n.pending = ""
	return n.opener.Open(url)
}

// Cancel drops the pending URL.
func (n *Navigator) Cancel() {
	n.pending = ""
}
