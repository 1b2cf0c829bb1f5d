// countdownd is the countdown daemon.
// It serves the countdown TUI over SSH and the live snapshot stream over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/db"
	"github.com/bborn/countdown/internal/server"
	"github.com/charmbracelet/log"
)

func main() {
	// Flags
	addr := flag.String("addr", ":2222", "SSH server address")
	httpAddr := flag.String("http", ":3333", "HTTP address for the countdown stream")
	dbPath := flag.String("db", "", "Database path (default: ~/.local/share/countdown/countdown.db)")
	hostKey := flag.String("host-key", "", "SSH host key path (default: ~/.ssh/countdown_ed25519)")
	authorizedKeys := flag.String("authorized-keys", "", "Only admit keys listed in this file")
	releasePath := flag.String("release", "", "Release config path (default: ~/.config/countdown/release.yaml)")
	flag.Parse()

	// Setup logger
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "countdownd",
	})

	// Resolve paths
	home, _ := os.UserHomeDir()

	if *dbPath == "" {
		*dbPath = db.DefaultPath()
	}
	if *hostKey == "" {
		*hostKey = filepath.Join(home, ".ssh", "countdown_ed25519")
	}
	if *releasePath == "" {
		*releasePath = config.DefaultReleaseConfigPath()
	}

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()
	logger.Info("Database opened", "path", *dbPath)

	release, err := config.LoadRelease(*releasePath)
	if err != nil {
		logger.Fatal("Failed to load release", "path", *releasePath, "error", err)
	}

	keybindings, err := config.LoadKeybindings()
	if err != nil {
		logger.Warn("Ignoring keybindings", "error", err)
	}

	logger.Info("Starting countdownd",
		"addr", *addr,
		"http", *httpAddr,
		"release", release.Title,
		"target", release.TargetTime(),
	)

	// Handle signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n  SSH:   ssh -p %s localhost\n", (*addr)[1:])
	fmt.Printf("  HTTP:  http://localhost%s/countdown\n\n", *httpAddr)

	if err := server.RunDaemon(ctx, server.DaemonConfig{
		SSHAddr:            *addr,
		HTTPAddr:           *httpAddr,
		HostKeyPath:        *hostKey,
		AuthorizedKeysPath: *authorizedKeys,
		Release:            release,
		DB:                 database,
		Keybindings:        keybindings,
		Logger:             logger,
	}); err != nil {
		logger.Fatal("Server error", "error", err)
	}
}
