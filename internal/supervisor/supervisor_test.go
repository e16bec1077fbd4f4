package supervisor

import (
	"context"
	"errors"
	"net"
	"reflect"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/darvos-rgb/darvos/internal/keyboard"
	"github.com/darvos-rgb/darvos/internal/openrgb"
	"github.com/darvos-rgb/darvos/internal/retry"
)

var errRefused = errors.New("connection refused")

// Simulates a server process and its port without touching the host.
//
// The port stays occupied until killsToFree kill requests have been made.
// Every call is appended to log so tests can assert on ordering.
type fakeHost struct {
	occupied    bool
	killsToFree int
	spawnErr    error
	dialFails   int
	log         []string
}

func (h *fakeHost) InUse() bool {
	h.log = append(h.log, "probe")
	return h.occupied
}

func (h *fakeHost) Kill(context.Context) error {
	h.log = append(h.log, "kill")
	h.killsToFree--
	if h.killsToFree <= 0 {
		h.occupied = false
	}
	return errors.New("pkill: exit status 1")
}

func (h *fakeHost) Spawn(context.Context) error {
	h.log = append(h.log, "spawn")
	return h.spawnErr
}

func (h *fakeHost) Dial(context.Context) (keyboard.Session, error) {
	h.log = append(h.log, "dial")
	if h.dialFails > 0 {
		h.dialFails--
		return nil, errRefused
	}
	return &nopSession{}, nil
}

type nopSession struct{}

func (nopSession) Controllers(context.Context) ([]openrgb.Controller, error) { return nil, nil }
func (nopSession) SetCustomMode(context.Context, uint32) error               { return nil }
func (nopSession) UpdateLEDs(context.Context, uint32, []openrgb.Color) error { return nil }
func (nopSession) Close() error                                              { return nil }

func newManager(h *fakeHost, policy retry.Policy) *Manager {
	return New(Config{
		Process: h,
		Probe:   h,
		Dial:    h.Dial,
		Policy:  policy,
	})
}

func TestEnsureReadyKillsStaleServer(t *testing.T) {
	h := &fakeHost{occupied: true, killsToFree: 2, dialFails: 2}

	session, err := newManager(h, retry.Fixed(0)).EnsureReady(context.Background())
	if err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
	if session == nil {
		t.Fatal("session is nil")
	}

	want := []string{
		"probe", "kill",
		"probe", "kill",
		"probe",
		"spawn",
		"dial", "dial", "dial",
	}
	if !reflect.DeepEqual(h.log, want) {
		t.Fatalf("calls = %v\nwant %v", h.log, want)
	}
}

func TestEnsureReadyFreePort(t *testing.T) {
	h := &fakeHost{}

	if _, err := newManager(h, retry.Fixed(0)).EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}

	want := []string{"probe", "spawn", "dial"}
	if !reflect.DeepEqual(h.log, want) {
		t.Fatalf("calls = %v, want %v", h.log, want)
	}
}

func TestEnsureReadySpawnFailureNotFatal(t *testing.T) {
	h := &fakeHost{spawnErr: errors.New("exec: \"openrgb\": executable file not found")}

	if _, err := newManager(h, retry.Fixed(0)).EnsureReady(context.Background()); err != nil {
		t.Fatalf("EnsureReady: %v", err)
	}
}

func TestEnsureReadyConnectExhausted(t *testing.T) {
	h := &fakeHost{dialFails: 10}

	_, err := newManager(h, retry.Policy{MaxAttempts: 3}).EnsureReady(context.Background())
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("err = %v, want ErrConnect", err)
	}
	if !errors.Is(err, errRefused) {
		t.Fatalf("err = %v, want wrapped dial error", err)
	}
	if !errdefs.IsUnavailable(err) {
		t.Fatal("connect failure is not classified as unavailable")
	}
}

func TestShutdownWaitsForPortToFree(t *testing.T) {
	h := &fakeHost{occupied: true, killsToFree: 3}

	if err := newManager(h, retry.Fixed(0)).Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if h.occupied {
		t.Fatal("port still occupied after Shutdown")
	}

	kills := 0
	for _, c := range h.log {
		if c == "kill" {
			kills++
		}
	}
	if kills != 3 {
		t.Fatalf("kills = %d, want 3", kills)
	}
}

func TestShutdownCancelled(t *testing.T) {
	h := &fakeHost{occupied: true, killsToFree: 1 << 30}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newManager(h, retry.Fixed(0)).Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestTCPProbe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()

	if !(TCPProbe{Addr: addr}).InUse() {
		t.Fatal("InUse = false while listening")
	}

	ln.Close()
	if (TCPProbe{Addr: addr}).InUse() {
		t.Fatal("InUse = true after listener closed")
	}
}

func TestNewCommand(t *testing.T) {
	c := NewCommand("/usr/bin/openrgb", "openrgb", 6742)

	want := []string{"--server", "--server-port", "6742"}
	if !reflect.DeepEqual(c.Args, want) {
		t.Fatalf("Args = %v, want %v", c.Args, want)
	}
	if c.Name != "openrgb" {
		t.Fatalf("Name = %q, want openrgb", c.Name)
	}
}
