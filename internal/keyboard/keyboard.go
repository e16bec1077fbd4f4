package keyboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/darvos-rgb/darvos/internal/openrgb"
)

// A connection to the RGB server, as used by this package.
//
// [openrgb.Client] satisfies this interface.
type Session interface {
	Controllers(ctx context.Context) ([]openrgb.Controller, error)
	SetCustomMode(ctx context.Context, index uint32) error
	UpdateLEDs(ctx context.Context, index uint32, colors []openrgb.Color) error
	Close() error
}

// The device selected to display mic state.
//
// A Keyboard is only valid for the [Session] it was acquired from. When that
// session fails, a new one must be established and the keyboard acquired
// again.
type Keyboard struct {
	session Session            // Session the keyboard was acquired from.
	ctrl    openrgb.Controller // Selected controller.
}

// A single "set all LEDs" request.
type Command struct {
	Controller uint32          // Target controller index.
	Colors     []openrgb.Color // One color per LED.
}

// Lists the session's controllers, initializes all of them, and selects the
// first one.
//
// Returns [ErrNoKeyboard] when the server reports no controllers. That error
// is not retried: without a target device no color can be shown.
func Acquire(ctx context.Context, s Session) (*Keyboard, error) {
	ctrls, err := s.Controllers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	if err := initialize(ctx, s, ctrls); err != nil {
		return nil, err
	}

	if len(ctrls) == 0 {
		return nil, ErrNoKeyboard
	}

	kb := &Keyboard{session: s, ctrl: ctrls[0]}
	slog.Info("using keyboard", "name", kb.ctrl.Name, "leds", kb.ctrl.LEDs, "controllers", len(ctrls))
	return kb, nil
}

// Switches every controller to custom mode.
func initialize(ctx context.Context, s Session, ctrls []openrgb.Controller) error {
	for _, c := range ctrls {
		if err := s.SetCustomMode(ctx, c.Index); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInit, c.Name, err)
		}
	}
	return nil
}

// Returns the controller's name.
func (k *Keyboard) Name() string {
	return k.ctrl.Name
}

// Returns the controller description.
func (k *Keyboard) Controller() openrgb.Controller {
	return k.ctrl
}

// Builds the command that sets every LED to color.
func (k *Keyboard) Command(color openrgb.Color) Command {
	colors := make([]openrgb.Color, k.ctrl.LEDs)
	for i := range colors {
		colors[i] = color
	}
	return Command{Controller: k.ctrl.Index, Colors: colors}
}

// Sets every LED to color and waits for the write to complete.
//
// Failures are returned as a [CommandError] and never retried here; the
// caller decides whether the session is still usable.
func (k *Keyboard) Apply(ctx context.Context, color openrgb.Color) error {
	cmd := k.Command(color)
	if err := k.session.UpdateLEDs(ctx, cmd.Controller, cmd.Colors); err != nil {
		return &CommandError{Controller: k.ctrl.Name, Err: err}
	}

	slog.Info("color applied", "keyboard", k.ctrl.Name, "color", color)
	return nil
}
