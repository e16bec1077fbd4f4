package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/containerd/errdefs"
	"github.com/darvos-rgb/darvos/internal/input"
	"github.com/darvos-rgb/darvos/internal/keyboard"
	"github.com/darvos-rgb/darvos/internal/mic"
	"github.com/darvos-rgb/darvos/internal/openrgb"
	"github.com/darvos-rgb/darvos/internal/retry"
)

// Loop state, reported in debug logs.
type State string

const (
	StateStarting     State = "starting"
	StateRunning      State = "running"
	StateResolving    State = "resolving"
	StateReconnecting State = "reconnecting"
	StateTerminated   State = "terminated"
)

// What the loop does when a color command fails.
type CommandErrorPolicy string

const (

	// Stop the loop and return the error.
	OnCommandErrorFatal CommandErrorPolicy = "fatal"

	// Re-establish the server session and keyboard, then re-apply the color.
	OnCommandErrorReconnect CommandErrorPolicy = "reconnect"
)

// Parses a policy name.
func ParseCommandErrorPolicy(s string) (CommandErrorPolicy, error) {
	switch p := CommandErrorPolicy(s); p {
	case OnCommandErrorFatal, OnCommandErrorReconnect:
		return p, nil
	case "":
		return OnCommandErrorFatal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Ensures a connectable RGB server. Implemented by [supervisor.Manager].
type Server interface {
	EnsureReady(ctx context.Context) (keyboard.Session, error)
}

// Holds loop dependencies.
type Config struct {
	Query          string             // Input device name query.
	Devices        input.System       // Input device enumeration.
	Server         Server             // RGB server lifecycle.
	Policy         retry.Policy       // Governs device resolution retries.
	OnCommandError CommandErrorPolicy // Reaction to a failed color command. Empty means fatal.
}

// Mirrors mic state on the keyboard for one run.
//
// A Loop is not safe for concurrent use and must not be reused after Run
// returns.
type Loop struct {
	query          string
	devices        input.System
	server         Server
	policy         retry.Policy
	onCommandError CommandErrorPolicy

	state   State              // Current state.
	monitor *mic.Monitor       // Mic state, kept across device reconnects.
	source  input.Source       // Open input device.
	session keyboard.Session   // Open RGB server session.
	kb      *keyboard.Keyboard // Keyboard acquired from session.
	current openrgb.Color      // Last color the loop tried to show.
}

// Creates a loop. Nothing is opened until [Loop.Run].
func New(cfg Config) *Loop {
	policy := cfg.OnCommandError
	if policy == "" {
		policy = OnCommandErrorFatal
	}

	return &Loop{
		query:          cfg.Query,
		devices:        cfg.Devices,
		server:         cfg.Server,
		policy:         cfg.Policy,
		onCommandError: policy,
		monitor:        mic.NewMonitor(),
	}
}

// Returns the current state.
func (l *Loop) State() State {
	return l.state
}

// Returns the last color the loop tried to show.
func (l *Loop) Color() openrgb.Color {
	return l.current
}

// Reports whether the microphone was last seen live.
func (l *Loop) MicActive() bool {
	return l.monitor.Active()
}

// Runs until ctx is done or an unrecoverable error occurs.
//
// Returns nil when stopped through ctx. A lost input device is never fatal;
// the loop waits for it to come back. Failing to acquire a keyboard is fatal,
// and so is a failed color command unless the loop was configured with
// [OnCommandErrorReconnect].
func (l *Loop) Run(ctx context.Context) error {
	defer l.release()

	if err := l.start(ctx); err != nil {
		return stopped(ctx, err)
	}

	for {
		events, err := l.source.Fetch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			slog.Error("failed to fetch events", "device", l.source.Path(), "error", err)
			if err := l.resolve(ctx); err != nil {
				return stopped(ctx, err)
			}
			continue
		}

		if l.monitor.Observe(events) {
			slog.Info("mic state changed", "active", l.monitor.Active())
		}

		if err := l.apply(ctx, keyboard.ColorFor(l.monitor.Active())); err != nil {
			return stopped(ctx, err)
		}
	}
}

// Opens the device, connects the keyboard, and shows the default color.
func (l *Loop) start(ctx context.Context) error {
	l.setState(StateStarting)

	src, err := input.ResolveWithRetry(ctx, l.devices, l.query, l.policy)
	if err != nil {
		return err
	}
	l.source = src

	if err := l.connect(ctx); err != nil {
		return err
	}

	if err := l.apply(ctx, keyboard.DefaultColor); err != nil {
		return err
	}

	l.setState(StateRunning)
	return nil
}

// Replaces a lost input device with a freshly resolved one.
func (l *Loop) resolve(ctx context.Context) error {
	l.setState(StateResolving)

	if err := l.source.Close(); err != nil {
		slog.Debug("failed to close input device", "device", l.source.Path(), "error", err)
	}
	l.source = nil

	src, err := input.ResolveWithRetry(ctx, l.devices, l.query, l.policy)
	if err != nil {
		return err
	}
	l.source = src

	l.setState(StateRunning)
	return nil
}

// Establishes a server session and acquires the keyboard from it.
func (l *Loop) connect(ctx context.Context) error {
	session, err := l.server.EnsureReady(ctx)
	if err != nil {
		return err
	}

	kb, err := keyboard.Acquire(ctx, session)
	if err != nil {
		session.Close()
		return err
	}

	l.session = session
	l.kb = kb
	return nil
}

// Shows color on the keyboard.
//
// Under [OnCommandErrorReconnect], a failed command discards the session,
// establishes a new one, and tries again until the color is shown or a
// non-recoverable error occurs.
func (l *Loop) apply(ctx context.Context, color openrgb.Color) error {
	l.current = color

	for {
		err := l.kb.Apply(ctx, color)
		if err == nil {
			return nil
		}
		if l.onCommandError != OnCommandErrorReconnect || !errdefs.IsUnavailable(err) || ctx.Err() != nil {
			return err
		}

		slog.Warn("color command failed, reconnecting to RGB server", "error", err)
		prev := l.state
		l.setState(StateReconnecting)

		l.closeSession()
		if err := l.connect(ctx); err != nil {
			return err
		}

		l.setState(prev)
	}
}

// Closes the input device and server session, if open.
func (l *Loop) release() {
	if l.source != nil {
		l.source.Close()
		l.source = nil
	}
	l.closeSession()
	l.setState(StateTerminated)
}

func (l *Loop) closeSession() {
	if l.session == nil {
		return
	}
	if err := l.session.Close(); err != nil {
		slog.Debug("failed to close RGB session", "error", err)
	}
	l.session = nil
	l.kb = nil
}

func (l *Loop) setState(s State) {
	if l.state == s {
		return
	}
	slog.Debug("loop state", "from", l.state, "to", s)
	l.state = s
}

// Maps errors caused by cancellation to a clean stop.
func stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}
