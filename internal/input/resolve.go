package input

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/darvos-rgb/darvos/internal/retry"
)

// Selects the device whose name best matches query.
//
// Names are compared case-insensitively and unnamed devices are skipped. An
// exact match is returned immediately. Otherwise the first device in
// enumeration order whose name contains the query is returned; the scan still
// runs to the end so that a later exact match overrides it, but later
// substring matches never replace the first one. Returns a [NotFoundError]
// when nothing matches.
func Resolve(devices []Info, query string) (Info, error) {
	q := strings.ToLower(query)
	best := -1

	for i, dev := range devices {
		if dev.Name == "" {
			continue
		}

		name := strings.ToLower(dev.Name)
		if name == q {
			return dev, nil
		}
		if best < 0 && strings.Contains(name, q) {
			best = i
		}
	}

	if best < 0 {
		return Info{}, &NotFoundError{Query: query}
	}
	return devices[best], nil
}

// Enumerates, resolves and opens the device matching query.
//
// Any failure along the way (enumeration, no match, open) is logged with the
// delay before the next attempt and retried under policy. With an unbounded
// policy this returns only once a device is open or ctx is done.
func ResolveWithRetry(ctx context.Context, sys System, query string, policy retry.Policy) (Source, error) {
	return retry.Do(ctx, policy,
		func(ctx context.Context) (Source, error) {
			return open(sys, query)
		},
		func(err error, delay time.Duration) {
			slog.Warn("failed to find input device", "query", query, "error", err, "retry_in", delay)
		},
	)
}

// Runs one resolution attempt.
func open(sys System, query string) (Source, error) {
	devices, err := sys.Devices()
	if err != nil {
		return nil, err
	}

	dev, err := Resolve(devices, query)
	if err != nil {
		return nil, err
	}

	src, err := sys.Open(dev.Path)
	if err != nil {
		return nil, err
	}

	slog.Info("using input device", "path", dev.Path, "name", dev.Name, "query", query)
	return src, nil
}
