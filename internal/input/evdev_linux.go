//go:build linux

package input

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"
)

// Maximum number of events returned by one drain.
const eventBatch = 64

// Returns the host's evdev device set.
func Local() System {
	return host{}
}

// Reads devices from /dev/input.
type host struct{}

// Lists /dev/input/event* nodes ordered by event number.
//
// Nodes that cannot be opened or queried are left out by the enumeration;
// they usually belong to devices that disappeared while it ran.
func (host) Devices() ([]Info, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}
	return eventNodes(paths), nil
}

// Opens the device for reading.
func (host) Open(path string) (Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}
	return newHandle(path, dev), nil
}

// Keeps the event nodes among paths, ordered numerically.
func eventNodes(paths []evdev.InputPath) []Info {
	devices := make([]Info, 0, len(paths))
	for _, p := range paths {
		if eventNumber(p.Path) < 0 {
			slog.Debug("skipping input node", "path", p.Path)
			continue
		}
		devices = append(devices, Info{Path: p.Path, Name: p.Name})
	}

	slices.SortStableFunc(devices, func(a, b Info) int {
		return eventNumber(a.Path) - eventNumber(b.Path)
	})
	return devices
}

// Returns the numeric suffix of an event node path, or -1.
func eventNumber(path string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(filepath.Base(path), "event"))
	if err != nil {
		return -1
	}
	return n
}

// The blocking event stream of an open device.
//
// [evdev.InputDevice] satisfies this interface.
type eventReader interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// An opened evdev node.
//
// A reader goroutine moves events from the device into a buffered channel.
// Fetch waits on that channel, so cancelling a Fetch leaves the device
// untouched and the handle usable. When the device fails the goroutine
// records the error and closes the channel.
type handle struct {
	path   string        // Device node.
	dev    eventReader   // Open device.
	events chan Event    // Events read but not yet fetched.
	done   chan struct{} // Closed by Close.
	once   sync.Once     // Guards done.
	err    error         // Read failure. Set before events is closed.
}

func newHandle(path string, dev eventReader) *handle {
	h := &handle{
		path:   path,
		dev:    dev,
		events: make(chan Event, eventBatch),
		done:   make(chan struct{}),
	}
	go h.pump()
	return h
}

func (h *handle) pump() {
	defer close(h.events)

	for {
		ev, err := h.dev.ReadOne()
		if err != nil {
			h.err = err
			return
		}

		select {
		case h.events <- Event{Type: uint16(ev.Type), Code: uint16(ev.Code), Value: ev.Value}:
		case <-h.done:
			h.err = ErrClosed
			return
		}
	}
}

func (h *handle) Path() string {
	return h.path
}

func (h *handle) Fetch(ctx context.Context) ([]Event, error) {
	var first Event
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev, ok := <-h.events:
		if !ok {
			return nil, fmt.Errorf("%w: %s: %w", ErrDeviceLost, h.path, h.err)
		}
		first = ev
	}

	batch := []Event{first}
	for len(batch) < eventBatch {
		select {
		case ev, ok := <-h.events:
			if !ok {
				return batch, nil
			}
			batch = append(batch, ev)
		default:
			return batch, nil
		}
	}
	return batch, nil
}

// Releases the device. The reader goroutine exits once its pending read
// returns.
func (h *handle) Close() error {
	h.once.Do(func() { close(h.done) })
	return h.dev.Close()
}
