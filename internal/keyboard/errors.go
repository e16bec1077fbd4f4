package keyboard

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrNoKeyboard = fmt.Errorf("no keyboard found: %w", errdefs.ErrFailedPrecondition)
	ErrInit       = fmt.Errorf("failed to initialize controllers: %w", errdefs.ErrUnavailable)
)

// Returned when a color command cannot be executed.
type CommandError struct {
	Controller string // Name of the target controller.
	Err        error  // Underlying cause.
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("failed to set color on %q: %v", e.Controller, e.Err)
}

// Exposes the cause and classifies the failure as [errdefs.ErrUnavailable].
func (e *CommandError) Unwrap() []error {
	return []error{e.Err, errdefs.ErrUnavailable}
}
