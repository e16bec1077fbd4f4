// Package mic tracks whether the microphone is live.
package mic

import "github.com/darvos-rgb/darvos/internal/input"

// Mic state derived from absolute-axis events.
//
// The state starts out active: a microphone reports no event until it is
// toggled, and it is live when plugged in. The monitor is not reset when the
// input device is re-resolved.
type Monitor struct {
	active bool
}

// Returns a monitor whose state is initially active.
func NewMonitor() *Monitor {
	return &Monitor{active: true}
}

// Applies one drained batch of events and reports whether the state changed.
//
// Every [input.EvAbs] event sets the state to value != 0, in order, so the
// last absolute event in the batch decides the result. Other event types are
// ignored. There is no debouncing.
func (m *Monitor) Observe(batch []input.Event) bool {
	before := m.active
	for _, ev := range batch {
		if ev.Type == input.EvAbs {
			m.active = ev.Value != 0
		}
	}
	return m.active != before
}

// Reports whether the microphone is live.
func (m *Monitor) Active() bool {
	return m.active
}
