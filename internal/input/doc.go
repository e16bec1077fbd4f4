// Package input reads microphone state from Linux evdev input devices.
//
// Devices are discovered under /dev/input by enumerating event nodes and
// querying each node's human-readable name. [Resolve] picks one device for a
// case-insensitive query: an exact name match always wins, otherwise the first
// device (in enumeration order) whose name contains the query is selected.
// Later substring matches are never considered. [ResolveWithRetry] repeats
// discovery under a retry policy until a device is found and opened.
//
// An opened [Source] yields batches of raw [Event] values. A read failure,
// typically caused by the device being unplugged, is reported as
// [ErrDeviceLost]; the source must then be closed and resolved again.
//
// Example usage:
//
//	src, err := input.ResolveWithRetry(ctx, input.Local(), "logitech", retry.Fixed(2*time.Second))
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	events, err := src.Fetch(ctx)
package input
