package input

import "context"

// Directory holding the evdev device nodes.
const devInputDir = "/dev/input"

// Event categories from linux/input-event-codes.h.
const (
	EvSyn uint16 = 0x00 // Synchronization marker.
	EvKey uint16 = 0x01 // Key or button state change.
	EvRel uint16 = 0x02 // Relative axis change.
	EvAbs uint16 = 0x03 // Absolute axis value. Carries the mic mute state.
	EvMsc uint16 = 0x04 // Miscellaneous.
)

// A single raw input event.
type Event struct {
	Type  uint16 // Event category, e.g. [EvAbs].
	Code  uint16 // Category-specific code.
	Value int32  // Event value.
}

// Describes an enumerated input device.
type Info struct {
	Path string // Device node, e.g. /dev/input/event7.
	Name string // Human-readable name reported by the driver. May be empty.
}

// An opened input device.
type Source interface {

	// Returns the device node this source reads from.
	Path() string

	// Blocks until at least one event is available and returns every event
	// read in one drain. Returns ctx.Err() when ctx is done, or an error
	// wrapping [ErrDeviceLost] when the device can no longer be read.
	Fetch(ctx context.Context) ([]Event, error)

	// Releases the device.
	Close() error
}

// Enumerates and opens input devices.
type System interface {

	// Lists available devices in enumeration order.
	Devices() ([]Info, error)

	// Opens the device at path.
	Open(path string) (Source, error)
}
