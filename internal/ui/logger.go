package ui

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// The UI owns the terminal, so it logs to ~/.local/share/countdown/ui.log.
var (
	uiLogger   *log.Logger
	uiLogFile  *os.File
	loggerOnce sync.Once
)

// GetLogger returns the singleton UI logger. It discards output when the
// log file cannot be opened. Call CloseLogger() when the application exits.
func GetLogger() *log.Logger {
	loggerOnce.Do(func() {
		var w io.Writer = io.Discard
		if f, err := openLogFile(); err == nil {
			uiLogFile = f
			w = f
		}
		uiLogger = log.NewWithOptions(w, log.Options{
			Prefix:          "ui",
			ReportTimestamp: true,
			TimeFormat:      "2006-01-02 15:04:05.000",
			Level:           log.DebugLevel,
		})
	})
	return uiLogger
}

func openLogFile() (*os.File, error) {
	path := LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// LogPath returns the path to the log file.
func LogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "countdown", "ui.log")
}

// CloseLogger closes the log file.
func CloseLogger() {
	if uiLogFile != nil {
		uiLogFile.Close()
	}
}
