package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"github.com/darvos-rgb/darvos/internal/keyboard"
	"github.com/darvos-rgb/darvos/internal/openrgb"
)

// Time allowed for a single connection attempt.
const dialTimeout = 5 * time.Second

// Controls the server through host processes.
//
// The server is started detached in its own process group with its standard
// streams connected to the null device, and stopped with pkill.
type Command struct {
	Binary string   // Executable to start.
	Args   []string // Arguments that put the executable in server mode.
	Name   string   // Process name matched by pkill.
}

// Returns a command that runs "binary --server --server-port port".
func NewCommand(binary, name string, port int) *Command {
	return &Command{
		Binary: binary,
		Args:   []string{"--server", "--server-port", strconv.Itoa(port)},
		Name:   name,
	}
}

func (c *Command) Kill(ctx context.Context) error {
	return exec.CommandContext(ctx, "pkill", c.Name).Run()
}

// Starts the server and reaps it in the background when it exits.
//
// The process is not bound to ctx; it must outlive the call.
func (c *Command) Spawn(ctx context.Context) error {
	cmd := exec.Command(c.Binary, c.Args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		return err
	}

	go func() {
		err := cmd.Wait()
		slog.Debug("RGB server exited", "pid", cmd.Process.Pid, "error", err)
	}()
	return nil
}

// Probes a TCP address by binding it.
type TCPProbe struct {
	Addr string // host:port to bind.
}

// Reports whether binding the address fails, i.e. something already listens.
func (p TCPProbe) InUse() bool {
	ln, err := net.Listen("tcp", p.Addr)
	if err != nil {
		return true
	}
	ln.Close()
	return false
}

// Returns a dialer that connects an [openrgb.Client] and registers
// clientName with the server.
func OpenRGBDialer(addr, clientName string) Dialer {
	return func(ctx context.Context) (keyboard.Session, error) {
		ctx, cancel := context.WithTimeout(ctx, dialTimeout)
		defer cancel()

		c, err := openrgb.Dial(ctx, addr)
		if err != nil {
			return nil, err
		}

		if err := c.SetName(ctx, clientName); err != nil {
			c.Close()
			return nil, fmt.Errorf("register client name: %w", err)
		}
		return c, nil
	}
}
