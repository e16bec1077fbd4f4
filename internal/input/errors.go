package input

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrDeviceLost  = fmt.Errorf("input device lost: %w", errdefs.ErrUnavailable)
	ErrUnsupported = errors.New("input devices are not supported on this platform")
	ErrClosed      = errors.New("input device closed")
)

// Returned when no input device name matches the query.
type NotFoundError struct {
	Query string // Query as supplied by the user.
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s/event* device found with name matching %q", devInputDir, e.Query)
}

// Classifies the error as [errdefs.ErrNotFound].
func (e *NotFoundError) Unwrap() error {
	return errdefs.ErrNotFound
}
