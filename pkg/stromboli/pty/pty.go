// Package pty manages pseudo-terminal shell sessions for embedded
// terminal windows: spawn, write, drain buffered output, resize, close.
package pty

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/stromboli/pkg/stromboli"
	"github.com/BrandonKowalski/stromboli/pkg/stromboli/internal"
)

// Default terminal size before the first resize arrives.
const (
	defaultRows = 24
	defaultCols = 80
)

// session is one shell process behind a pty. The reader goroutine
// appends output to buffer until the process exits.
type session struct {
	id    string
	cmd   *exec.Cmd
	file  *os.File
	alive *atomic.Bool

	mu     sync.Mutex
	buffer []byte
}

// Manager owns all pty sessions, keyed by session id. Safe for use from
// multiple goroutines.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session
	log      *slog.Logger
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		log:      internal.GetLogger(),
	}
}

// Spawn starts a shell in a new pty session. Spawning an id that
// already exists is a no-op, so a remounting terminal window never
// doubles its shell. The shell is $SHELL, falling back to sh.
func (m *Manager) Spawn(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; ok {
		m.log.Debug("pty session already exists", "session", sessionID)
		return nil
	}

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}

	cmd := exec.Command(shell)
	file, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: defaultRows, Cols: defaultCols})
	if err != nil {
		return stromboli.NewInfrastructureError("spawn_pty", err)
	}

	s := &session{
		id:    sessionID,
		cmd:   cmd,
		file:  file,
		alive: atomic.NewBool(true),
	}
	m.sessions[sessionID] = s

	go s.readLoop(m.log)

	m.log.Info("pty session spawned", "session", sessionID, "shell", shell)
	return nil
}

// readLoop drains the pty into the session buffer until EOF.
func (s *session) readLoop(log *slog.Logger) {
	buf := make([]byte, 1024)
	for {
		n, err := s.file.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.buffer = append(s.buffer, buf[:n]...)
			s.mu.Unlock()
		}
		if err != nil {
			if err != io.EOF {
				log.Debug("pty read ended", "session", s.id, "error", err)
			}
			s.alive.Store(false)
			return
		}
	}
}

// Write sends input to the session's shell. Fails with ErrNotFound if
// the session is unknown.
func (m *Manager) Write(sessionID string, data []byte) error {
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}

	if _, err := s.file.Write(data); err != nil {
		return stromboli.NewInfrastructureError("write_pty", err)
	}
	return nil
}

// Read drains and returns all output buffered since the last call. An
// empty slice means no new output. Fails with ErrNotFound if the
// session is unknown.
func (m *Manager) Read(sessionID string) ([]byte, error) {
	s, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	data := s.buffer
	s.buffer = nil
	s.mu.Unlock()
	return data, nil
}

// Resize changes the session's terminal dimensions. Fails with
// ErrNotFound if the session is unknown.
func (m *Manager) Resize(sessionID string, rows, cols uint16) error {
	s, err := m.get(sessionID)
	if err != nil {
		return err
	}

	if err := pty.Setsize(s.file, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return stromboli.NewInfrastructureError("resize_pty", err)
	}
	return nil
}

// Close kills the session's shell, waits for it, and releases the pty.
// Fails with ErrNotFound if the session is unknown.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("pty session %q: %w", sessionID, stromboli.ErrNotFound)
	}

	s.alive.Store(false)
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	_ = s.file.Close()

	m.log.Info("pty session closed", "session", sessionID)
	return nil
}

// Has reports whether a session exists.
func (m *Manager) Has(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[sessionID]
	return ok
}

// Alive reports whether the session exists and its shell has not
// exited.
func (m *Manager) Alive(sessionID string) bool {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	m.mu.Unlock()
	return ok && s.alive.Load()
}

// CloseAll closes every session, for shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		_ = m.Close(id)
	}
}

func (m *Manager) get(sessionID string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("pty session %q: %w", sessionID, stromboli.ErrNotFound)
	}
	return s, nil
}
