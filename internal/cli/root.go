package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/darvos-rgb/darvos/internal"
	"github.com/darvos-rgb/darvos/internal/config"
	"github.com/darvos-rgb/darvos/internal/logging"
	"github.com/darvos-rgb/darvos/internal/paths"
)

// Represents the root command for darvos.
type Root struct {
	Quiet          bool           `short:"q" help:"Suppress informational output."`
	Verbose        bool           `short:"v" help:"Include source locations in log output."`
	Debug          bool           `short:"d" help:"Enable debug output."`
	Config         string         `short:"c" help:"Configuration file path." default:"${config}" placeholder:"PATH" type:"path"`
	Port           *int           `help:"OpenRGB server port." placeholder:"PORT"`
	RetryDelay     *time.Duration `help:"Delay between retry attempts, e.g. 2s." placeholder:"DURATION"`
	OnCommandError *string        `help:"Reaction to a failed color command: fatal or reconnect." placeholder:"POLICY"`

	Watch   WatchCmd   `cmd:"" default:"withargs" help:"Mirror mic state on the keyboard (default)."`
	Devices DevicesCmd `cmd:"" help:"List input devices."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected command.
//
// Returns a [UsageError] when the arguments cannot be parsed.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var root Root
	parser, err := newParser(ctx, &root)
	if err != nil {
		return err
	}

	kongCtx, err := parseArgs(parser, os.Args[1:])
	if err != nil {
		return err
	}

	root.configureLogger()

	return kongCtx.Run()
}

// Parses args with parser.
//
// A command line that cannot be parsed is reported as [ErrNotRoot] when not
// running as root, so a missing privilege wins over a missing query.
// Otherwise the usage is printed and a [UsageError] returned.
func parseArgs(parser *kong.Kong, args []string) (*kong.Context, error) {
	kongCtx, err := parser.Parse(args)
	if err == nil {
		return kongCtx, nil
	}

	if err := requireRoot(); err != nil {
		return nil, err
	}

	printUsage(parser, err)
	return nil, &UsageError{Err: err}
}

// Builds the kong parser for root.
func newParser(ctx context.Context, root *Root) (*kong.Kong, error) {
	return kong.New(root,
		kong.Name(internal.Name),
		kong.Description("Shows microphone mute state as the keyboard backlight color.\n\nWatches an input device for mic toggle events and drives the keyboard through the OpenRGB SDK server."),
		kong.Vars{
			"version": internal.VersionString(),
			"config":  paths.ConfigFile(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(root),
	)
}

// Writes the parse error and the relevant usage to stderr.
func printUsage(parser *kong.Kong, err error) {
	parser.Stdout = os.Stderr
	parser.Errorf("%s", err)

	var perr *kong.ParseError
	if errors.As(err, &perr) && perr.Context != nil {
		perr.Context.PrintUsage(true)
	}
}

// Configures the global logger based on CLI flags.
func (r *Root) configureLogger() {
	internal.SetDebug(r.Debug || internal.IsDebug())
	internal.SetQuiet(r.Quiet || internal.IsQuiet())
	internal.SetVerbose(r.Verbose || internal.IsVerbose())

	handler := logging.NewHandler(os.Stdout, os.Stderr, logging.Options{
		Level:   internal.LogLevel(),
		Verbose: internal.IsVerbose(),
	})
	slog.SetDefault(slog.New(handler))
}

// Loads the configuration file and applies flag overrides.
func (r *Root) loadConfig() (config.Config, error) {
	cfg, err := config.Load(r.Config)
	if err != nil {
		return config.Config{}, err
	}

	r.override(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Applies the flags that were given on top of cfg.
func (r *Root) override(cfg *config.Config) {
	if r.Port != nil {
		cfg.Server.Port = *r.Port
	}
	if r.RetryDelay != nil {
		cfg.Retry.Delay = *r.RetryDelay
	}
	if r.OnCommandError != nil {
		cfg.OnCommandError = *r.OnCommandError
	}
}
