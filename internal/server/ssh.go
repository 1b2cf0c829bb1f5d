// Package server serves the countdown over SSH and HTTP.
package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bborn/countdown/internal/config"
	"github.com/bborn/countdown/internal/db"
	"github.com/bborn/countdown/internal/links"
	"github.com/bborn/countdown/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	gossh "golang.org/x/crypto/ssh"
)

// Server is the SSH server.
type Server struct {
	release     *config.Release
	db          *db.DB
	keybindings *config.KeybindingsConfig
	srv         *ssh.Server
	logger      *log.Logger
	addr        string
	hostKey     string

	mu       sync.Mutex
	sessions map[string]*ui.AppModel
}

// Config holds server configuration.
type Config struct {
	Addr        string // e.g. ":2222"
	HostKeyPath string // e.g. ".ssh/countdown_ed25519"
	// AuthorizedKeysPath lists the keys allowed in. Empty or missing
	// accepts every key.
	AuthorizedKeysPath string
	Release            *config.Release
	DB                 *db.DB
	Keybindings        *config.KeybindingsConfig
}

// New creates a new SSH server.
func New(cfg Config) (*Server, error) {
	s := &Server{
		release:     cfg.Release,
		db:          cfg.DB,
		keybindings: cfg.Keybindings,
		addr:        cfg.Addr,
		hostKey:     cfg.HostKeyPath,
		logger:      log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssh"}),
		sessions:    make(map[string]*ui.AppModel),
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(s.hostKey), 0700); err != nil {
		return nil, fmt.Errorf("create host key dir: %w", err)
	}

	allowed, err := LoadAuthorizedKeys(cfg.AuthorizedKeysPath)
	if err != nil {
		return nil, err
	}
	if len(allowed) == 0 {
		s.logger.Warn("no authorized keys configured, accepting all public keys")
	}

	srv, err := wish.NewServer(
		wish.WithAddress(s.addr),
		wish.WithHostKeyPath(s.hostKey),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		wish.WithPublicKeyAuth(PublicKeyHandler(allowed)),
		wish.WithPasswordAuth(func(ctx ssh.Context, password string) bool {
			return false // Disable password auth
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	s.srv = srv
	return s, nil
}

// Start starts the SSH server.
func (s *Server) Start() error {
	s.logger.Info("SSH server starting", "addr", s.addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server and stops every session's
// countdown.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("SSH server shutting down")
	s.mu.Lock()
	for id, m := range s.sessions {
		m.Cleanup()
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	return s.srv.Shutdown(ctx)
}

// ActiveSessions returns the number of connected sessions.
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// teaHandler returns the Bubble Tea program for each SSH session. Every
// session runs its own countdown, stopped when the session ends.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	id := uuid.NewString()
	model := s.newSessionModel(sess.User())
	s.track(id, model)

	s.logger.Info("session started", "id", id, "user", sess.User(), "remote", sess.RemoteAddr())
	go func() {
		<-sess.Context().Done()
		s.untrack(id)
		s.logger.Info("session ended", "id", id, "user", sess.User())
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

func (s *Server) newSessionModel(user string) *ui.AppModel {
	cfg := ui.Config{
		Release:     s.release,
		Client:      "ssh:" + user,
		Opener:      &links.RecordingOpener{},
		Keybindings: s.keybindings,
		Logger:      s.logger.WithPrefix("ssh/ui"),
	}
	if s.db != nil {
		cfg.Prefs = config.NewPreferences(s.db)
		cfg.Visits = s.db
	}
	return ui.NewAppModel(cfg)
}

func (s *Server) track(id string, m *ui.AppModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = m
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	m, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		m.Cleanup()
	}
}

// LoadAuthorizedKeys parses an OpenSSH authorized_keys file. An empty path
// or a missing file yields no keys.
func LoadAuthorizedKeys(path string) ([]gossh.PublicKey, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read authorized keys: %w", err)
	}

	var keys []gossh.PublicKey
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		key, _, _, _, err := gossh.ParseAuthorizedKey(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		keys = append(keys, key)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read authorized keys: %w", err)
	}
	return keys, nil
}

// PublicKeyHandler accepts keys in allowed, or any key when allowed is empty.
func PublicKeyHandler(allowed []gossh.PublicKey) ssh.PublicKeyHandler {
	return func(ctx ssh.Context, key ssh.PublicKey) bool {
		if len(allowed) == 0 {
			return true
		}
		for _, k := range allowed {
			if ssh.KeysEqual(key, k) {
				return true
			}
		}
		return false
	}
}
