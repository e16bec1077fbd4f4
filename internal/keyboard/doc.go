// Package keyboard drives the single RGB device that reflects mic state.
//
// [Acquire] asks a [Session] for every controllable device, initializes the
// whole list (required before per-device commands take effect) and selects
// the first entry. The first-controller rule is the only tie-break: no
// ranking by device type or name is attempted, so the keyboard must be the
// first device the RGB server enumerates.
//
// A [Keyboard] paints all of its LEDs one color. Commands are built purely
// from the keyboard and the color, so applying the same color twice sends the
// same payload twice; nothing suppresses redundant writes.
//
// The three colors of the mic-state palette are fixed: [DefaultColor] is
// applied once at startup before any mic event is known, then [ColorFor]
// maps the mic state to [ActiveColor] or [InactiveColor].
package keyboard
