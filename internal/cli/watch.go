package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/darvos-rgb/darvos/internal/config"
	"github.com/darvos-rgb/darvos/internal/daemon"
	"github.com/darvos-rgb/darvos/internal/input"
	"github.com/darvos-rgb/darvos/internal/retry"
	"github.com/darvos-rgb/darvos/internal/supervisor"
	"golang.org/x/sys/unix"
)

// Upper bound on the cleanup that runs after the loop stops.
const shutdownTimeout = 30 * time.Second

// Represents the default 'darvos <query>' command.
type WatchCmd struct {
	Query string `arg:"" help:"Name, or part of the name, of the input device reporting mic state."`
}

// Executes the watch command.
//
// Runs the loop until SIGINT or SIGTERM, then stops the RGB server. A loop
// that ends on an error is logged and still cleaned up; the command then
// succeeds. Only a missing privilege or an invalid configuration is returned.
func (c *WatchCmd) Run(ctx context.Context, root *Root) error {
	if err := requireRoot(); err != nil {
		return err
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	onCommandError, err := daemon.ParseCommandErrorPolicy(cfg.OnCommandError)
	if err != nil {
		return err
	}

	policy := retry.Fixed(cfg.Retry.Delay)
	mgr := newManager(cfg, policy)

	loop := daemon.New(daemon.Config{
		Query:          c.Query,
		Devices:        input.Local(),
		Server:         mgr,
		Policy:         policy,
		OnCommandError: onCommandError,
	})

	slog.Info("darvos is running", "query", c.Query, "server", cfg.Server.Addr())

	if err := run(ctx, loop); err != nil {
		slog.Error("darvos stopped", "error", err)
	}

	cleanup(ctx, mgr)
	return nil
}

// Builds the RGB server manager described by cfg.
func newManager(cfg config.Config, policy retry.Policy) *supervisor.Manager {
	addr := cfg.Server.Addr()
	return supervisor.New(supervisor.Config{
		Process: supervisor.NewCommand(cfg.Server.Binary, cfg.Server.ProcessName, cfg.Server.Port),
		Probe:   supervisor.TCPProbe{Addr: addr},
		Dial:    supervisor.OpenRGBDialer(addr, cfg.Server.ClientName),
		Policy:  policy,
	})
}

// Runs loop, converting a panic into an error so cleanup still happens.
func run(ctx context.Context, loop *daemon.Loop) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return loop.Run(ctx)
}

// Stops the RGB server, waiting at most [shutdownTimeout].
func cleanup(ctx context.Context, mgr *supervisor.Manager) {
	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := mgr.Shutdown(ctx); err != nil {
		slog.Warn("failed to stop RGB server", "error", err)
	}
}

// Returns the effective user ID. Replaced in tests.
var geteuid = unix.Geteuid

// Returns [ErrNotRoot] unless running with effective UID 0.
func requireRoot() error {
	if geteuid() != 0 {
		return ErrNotRoot
	}
	return nil
}
