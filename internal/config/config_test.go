package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/containerd/errdefs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 6743
  binary: /opt/openrgb/openrgb
retry:
  delay: 500ms
on_command_error: reconnect
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 6743 {
		t.Errorf("Port = %d, want 6743", cfg.Server.Port)
	}
	if cfg.Server.Binary != "/opt/openrgb/openrgb" {
		t.Errorf("Binary = %q, want /opt/openrgb/openrgb", cfg.Server.Binary)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Retry.Delay != 500*time.Millisecond {
		t.Errorf("Delay = %v, want 500ms", cfg.Retry.Delay)
	}
	if cfg.OnCommandError != "reconnect" {
		t.Errorf("OnCommandError = %q, want reconnect", cfg.OnCommandError)
	}
	if cfg.Server.Addr() != "127.0.0.1:6743" {
		t.Errorf("Addr() = %q, want 127.0.0.1:6743", cfg.Server.Addr())
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  colour: red\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !errdefs.IsInvalidArgument(err) {
		t.Fatal("error is not classified as invalid argument")
	}
}

func TestLoadUnreadable(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error loading a directory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"bad host", func(c *Config) { c.Server.Host = "localhost:1" }, "server.host"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"no binary", func(c *Config) { c.Server.Binary = "" }, "server.binary"},
		{"no process name", func(c *Config) { c.Server.ProcessName = "" }, "server.process_name"},
		{"no client name", func(c *Config) { c.Server.ClientName = "" }, "server.client_name"},
		{"negative delay", func(c *Config) { c.Retry.Delay = -time.Second }, "retry.delay"},
		{"unknown policy", func(c *Config) { c.OnCommandError = "ignore" }, "on_command_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("err = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("err = %q, want mention of %q", err, tt.key)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
