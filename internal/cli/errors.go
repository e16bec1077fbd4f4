package cli

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var ErrNotRoot = fmt.Errorf("darvos must be run as root: %w", errdefs.ErrPermissionDenied)

// A command line that could not be parsed.
//
// Usage has already been printed when this error is returned.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}
