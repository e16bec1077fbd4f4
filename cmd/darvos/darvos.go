package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/darvos-rgb/darvos/internal"
	"github.com/darvos-rgb/darvos/internal/cli"
	"github.com/darvos-rgb/darvos/internal/logging"
)

// The entry point for darvos.
//
// Initializes logging, displays startup information, and executes the root
// command. Exits with 2 when the arguments cannot be parsed and with 1 on any
// other error.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("darvos is starting",
		"pid", os.Getpid(),
		"euid", os.Geteuid(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		var usage *cli.UsageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Creates a logger seeded from build-time linker flags.
//
// The logger is replaced after flag parsing via cli.Execute.
func logger() *slog.Logger {
	return slog.New(logging.NewHandler(os.Stdout, os.Stderr, logging.Options{
		Level:   internal.LogLevel(),
		Verbose: internal.IsVerbose(),
	}))
}
