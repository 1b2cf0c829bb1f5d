package server

import (
	"context"
	"fmt"
	"time"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/db"
	"github.com/bborn/countdown/internal/presenter"
	"github.com/charmbracelet/log"
)

// DaemonConfig configures RunDaemon.
type DaemonConfig struct {
	SSHAddr            string
	HTTPAddr           string
	HostKeyPath        string
	AuthorizedKeysPath string
	Release            *config.Release
	DB                 *db.DB
	Keybindings        *config.KeybindingsConfig
	Logger             *log.Logger
}

// RunDaemon serves the countdown over SSH and HTTP until ctx is cancelled
// or a server fails. HTTP clients share one presenter.
func RunDaemon(ctx context.Context, cfg DaemonConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	srv, err := New(Config{
		Addr:               cfg.SSHAddr,
		HostKeyPath:        cfg.HostKeyPath,
		AuthorizedKeysPath: cfg.AuthorizedKeysPath,
		Release:            cfg.Release,
		DB:                 cfg.DB,
		Keybindings:        cfg.Keybindings,
	})
	if err != nil {
		return err
	}

	p := presenter.New(cfg.Release.TargetTime(), presenter.WithLogger(logger.WithPrefix("countdown")))
	handle := p.Start()
	defer p.Close()

	httpCfg := HTTPConfig{
		Addr:      cfg.HTTPAddr,
		Presenter: p,
		Release:   cfg.Release,
	}
	if cfg.DB != nil {
		httpCfg.Prefs = config.NewPreferences(cfg.DB)
	}
	httpSrv := NewHTTPServer(httpCfg)

	errCh := make(chan error, 2)
	go func() {
		errCh <- srv.Start()
	}()
	go func() {
		errCh <- httpSrv.Start()
	}()

	var runErr error
	select {
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	handle.Stop()
	srv.Shutdown(shutdownCtx)
	httpSrv.Shutdown(shutdownCtx)
	return runErr
}
