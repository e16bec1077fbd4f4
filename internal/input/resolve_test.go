package input

import (
	"context"
	"errors"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/darvos-rgb/darvos/internal/retry"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		devices []Info
		query   string
		want    string
	}{
		{
			name: "substring match",
			devices: []Info{
				{Path: "/dev/input/event3", Name: "Logitech G915"},
				{Path: "/dev/input/event4", Name: "Generic Mic"},
			},
			query: "logitech",
			want:  "/dev/input/event3",
		},
		{
			name: "first substring match wins",
			devices: []Info{
				{Path: "/dev/input/event5", Name: "Blue Mic"},
				{Path: "/dev/input/event6", Name: "USB Mic 2"},
			},
			query: "mic",
			want:  "/dev/input/event5",
		},
		{
			name: "exact match overrides earlier substring match",
			devices: []Info{
				{Path: "/dev/input/event1", Name: "HyperX Mic Pro"},
				{Path: "/dev/input/event2", Name: "Mic Pro Extra"},
				{Path: "/dev/input/event3", Name: "MIC PRO"},
			},
			query: "mic pro",
			want:  "/dev/input/event3",
		},
		{
			name: "case insensitive query",
			devices: []Info{
				{Path: "/dev/input/event0", Name: "Power Button"},
				{Path: "/dev/input/event9", Name: "HyperX QuadCast S"},
			},
			query: "QUADCAST",
			want:  "/dev/input/event9",
		},
		{
			name: "unnamed devices skipped",
			devices: []Info{
				{Path: "/dev/input/event0", Name: ""},
				{Path: "/dev/input/event1", Name: "Yeti Mic"},
			},
			query: "",
			want:  "/dev/input/event1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.devices, tt.query)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got.Path != tt.want {
				t.Fatalf("path = %q, want %q", got.Path, tt.want)
			}
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	devices := []Info{
		{Path: "/dev/input/event0", Name: "Power Button"},
		{Path: "/dev/input/event1", Name: "AT Translated Set 2 keyboard"},
	}

	_, err := Resolve(devices, "quadcast")

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want *NotFoundError", err)
	}
	if nf.Query != "quadcast" {
		t.Fatalf("Query = %q, want quadcast", nf.Query)
	}
	if !errdefs.IsNotFound(err) {
		t.Fatal("NotFoundError is not classified as errdefs.ErrNotFound")
	}
}

func TestResolveEmptyList(t *testing.T) {
	if _, err := Resolve(nil, "mic"); err == nil {
		t.Fatal("expected error for empty device list")
	}
}

// In-memory device set whose contents change between enumerations.
type fakeSystem struct {
	lists  [][]Info // Successive results of Devices; the last repeats.
	calls  int
	opened []string
}

func (s *fakeSystem) Devices() ([]Info, error) {
	i := min(s.calls, len(s.lists)-1)
	s.calls++
	return s.lists[i], nil
}

func (s *fakeSystem) Open(path string) (Source, error) {
	s.opened = append(s.opened, path)
	return &fakeSource{path: path}, nil
}

type fakeSource struct {
	path string
}

func (s *fakeSource) Path() string                           { return s.path }
func (s *fakeSource) Fetch(context.Context) ([]Event, error) { return nil, nil }
func (s *fakeSource) Close() error                           { return nil }

func TestResolveWithRetry(t *testing.T) {
	sys := &fakeSystem{
		lists: [][]Info{
			{},
			{{Path: "/dev/input/event0", Name: "Power Button"}},
			{{Path: "/dev/input/event0", Name: "Power Button"}, {Path: "/dev/input/event8", Name: "Blue Yeti Mic"}},
		},
	}

	src, err := ResolveWithRetry(context.Background(), sys, "yeti", retry.Fixed(0))
	if err != nil {
		t.Fatalf("ResolveWithRetry: %v", err)
	}
	if src.Path() != "/dev/input/event8" {
		t.Fatalf("path = %q, want /dev/input/event8", src.Path())
	}
	if sys.calls != 3 {
		t.Fatalf("enumerations = %d, want 3", sys.calls)
	}
	if len(sys.opened) != 1 {
		t.Fatalf("opens = %d, want 1", len(sys.opened))
	}
}

func TestResolveWithRetryExhausted(t *testing.T) {
	sys := &fakeSystem{lists: [][]Info{{}}}

	_, err := ResolveWithRetry(context.Background(), sys, "yeti", retry.Policy{MaxAttempts: 3})
	if !errors.Is(err, retry.ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
	if !errdefs.IsNotFound(err) {
		t.Fatalf("err = %v, want wrapped not-found cause", err)
	}
	if sys.calls != 3 {
		t.Fatalf("enumerations = %d, want 3", sys.calls)
	}
}
