package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/darvos-rgb/darvos/internal/keyboard"
	"github.com/darvos-rgb/darvos/internal/retry"
)

// Starts and stops the RGB server process.
type Process interface {

	// Asks every server instance to terminate. Best effort: callers ignore
	// the result and confirm termination through a [Probe].
	Kill(ctx context.Context) error

	// Starts a new server instance in the background.
	Spawn(ctx context.Context) error
}

// Reports whether the server's port is occupied.
type Probe interface {
	InUse() bool
}

// Opens a client session to a running server.
type Dialer func(ctx context.Context) (keyboard.Session, error)

// Holds manager dependencies.
type Config struct {
	Process Process      // Server process control.
	Probe   Probe        // Port occupancy check.
	Dial    Dialer       // Client connection factory.
	Policy  retry.Policy // Governs the kill and connect waits.
}

// Guarantees a freshly started, connectable server.
type Manager struct {
	process Process
	probe   Probe
	dial    Dialer
	policy  retry.Policy
}

// Creates a manager. No process is touched until [Manager.EnsureReady].
func New(cfg Config) *Manager {
	return &Manager{
		process: cfg.Process,
		probe:   cfg.Probe,
		dial:    cfg.Dial,
		policy:  cfg.Policy,
	}
}

// Kills any running server, spawns a new one, and connects to it.
//
// Waiting for the old instance to exit and connecting to the new one are both
// retried under the manager's policy. A failed spawn is only logged: the
// connect loop is what decides whether a server came up.
func (m *Manager) EnsureReady(ctx context.Context) (keyboard.Session, error) {
	if err := m.killStale(ctx); err != nil {
		return nil, err
	}

	m.spawn(ctx)

	return m.connect(ctx)
}

// Kills the server and waits until its port is free.
//
// Used for cleanup on exit; ctx bounds how long to wait.
func (m *Manager) Shutdown(ctx context.Context) error {
	slog.Info("stopping RGB server")
	if err := m.killStale(ctx); err != nil {
		return err
	}
	slog.Info("RGB server stopped")
	return nil
}

// Probes the port and, while it is occupied, kills and waits.
func (m *Manager) killStale(ctx context.Context) error {
	_, err := retry.Do(ctx, m.policy,
		func(ctx context.Context) (struct{}, error) {
			if !m.probe.InUse() {
				return struct{}{}, nil
			}
			if err := m.process.Kill(ctx); err != nil {
				slog.Debug("kill request failed", "error", err)
			}
			return struct{}{}, ErrPortInUse
		},
		func(err error, delay time.Duration) {
			slog.Info("waiting for RGB server to exit", "retry_in", delay)
		},
	)
	return err
}

// Starts the server, logging rather than returning a failure.
func (m *Manager) spawn(ctx context.Context) {
	slog.Info("starting RGB server")
	if err := m.process.Spawn(ctx); err != nil {
		slog.Warn("failed to start RGB server", "error", err)
		return
	}
	slog.Debug("RGB server started")
}

// Connects to the server, retrying under the manager's policy.
func (m *Manager) connect(ctx context.Context) (keyboard.Session, error) {
	slog.Info("connecting to RGB server")

	session, err := retry.Do(ctx, m.policy,
		func(ctx context.Context) (keyboard.Session, error) {
			return m.dial(ctx)
		},
		func(err error, delay time.Duration) {
			slog.Warn("failed to connect to RGB server", "error", err, "retry_in", delay)
		},
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	slog.Info("connected to RGB server")
	return session, nil
}
