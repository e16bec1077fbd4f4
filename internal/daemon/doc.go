// Package daemon runs the loop that mirrors microphone state on the keyboard.
//
// A [Loop] moves through a small set of states:
//
//	Starting     resolve the input device, ensure the RGB server, acquire
//	             the keyboard, show the default color
//	Running      wait for a batch of input events, update the mic state,
//	             apply the matching color
//	Resolving    entered when the input device is lost; find it again by
//	             the same query and resume Running with the mic state
//	             unchanged
//	Reconnecting entered on a failed color command when the loop is
//	             configured to recover from it; re-establish the server
//	             session and re-apply the current color
//	Terminated   the loop has returned
//
// There is no concurrency between watching the microphone and painting the
// keyboard: every batch of events is followed by a color command before the
// next batch is read.
//
// Example usage:
//
//	loop := daemon.New(daemon.Config{
//	    Query:   "quadcast",
//	    Devices: input.Local(),
//	    Server:  mgr,
//	    Policy:  retry.Fixed(2 * time.Second),
//	})
//	if err := loop.Run(ctx); err != nil {
//	    return err
//	}
package daemon
