// Package supervisor keeps a fresh OpenRGB server reachable.
//
// The server's liveness is never cached. Every check re-derives it from one
// signal: whether the server's TCP port can be bound locally. A bound port
// means some instance, possibly left over from a previous run in an unknown
// state, is still listening. [Manager.EnsureReady] therefore always kills
// whatever holds the port, waits until the port is free, spawns a new server,
// and connects to it, retrying each waiting step under the configured policy.
//
// Process control and port probing sit behind the [Process] and [Probe]
// interfaces. [Command] and [TCPProbe] are the host implementations; tests
// substitute fakes that simulate occupancy without touching the host.
//
// Example usage:
//
//	mgr := supervisor.New(supervisor.Config{
//	    Process: supervisor.NewCommand("openrgb", "openrgb", 6742),
//	    Probe:   supervisor.TCPProbe{Addr: "127.0.0.1:6742"},
//	    Dial:    supervisor.OpenRGBDialer("127.0.0.1:6742", "darvos"),
//	    Policy:  retry.Fixed(2 * time.Second),
//	})
//
//	session, err := mgr.EnsureReady(ctx)
//	if err != nil {
//	    return err
//	}
//	defer mgr.Shutdown(context.Background())
package supervisor
