package ui

import (
	"os"
)

// RingBell sends the BEL character (\a) to the terminal to trigger an audible bell.
// It writes directly to /dev/tty to bypass Bubble Tea's alternate screen buffer.
func RingBell() {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		// Fallback to stderr if /dev/tty is not available
		os.Stderr.WriteString("\a")
		return
	}
	defer tty.Close()

	tty.WriteString("\a")
}
