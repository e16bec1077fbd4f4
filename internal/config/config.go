package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report YAML key names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Complete darvos configuration.
type Config struct {
	Server         Server `yaml:"server"`
	Retry          Retry  `yaml:"retry"`
	OnCommandError string `yaml:"on_command_error" validate:"oneof=fatal reconnect"` // Reaction to a failed color command.
}

// RGB server settings.
type Server struct {
	Host        string `yaml:"host" validate:"ip"`               // Address the SDK server is reached at.
	Port        int    `yaml:"port" validate:"min=1,max=65535"`  // SDK server port.
	Binary      string `yaml:"binary" validate:"required"`       // Executable started in server mode.
	ProcessName string `yaml:"process_name" validate:"required"` // Name matched when killing stale servers.
	ClientName  string `yaml:"client_name" validate:"required"`  // Name announced to the server.
}

// Retry settings shared by device resolution and server connection.
type Retry struct {
	Delay time.Duration `yaml:"delay" validate:"gte=0s"` // Wait between attempts.
}

// Returns the built-in defaults.
func Default() Config {
	return Config{
		Server: Server{
			Host:        "127.0.0.1",
			Port:        6742,
			Binary:      "openrgb",
			ProcessName: "openrgb",
			ClientName:  "darvos",
		},
		Retry: Retry{
			Delay: 2 * time.Second,
		},
		OnCommandError: "fatal",
	}
}

// Reads the file at path over the defaults and validates the result.
//
// A missing file is not an error; the defaults are returned. An empty file
// is treated the same way.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no configuration file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("configuration loaded", "path", path)
	return cfg, nil
}

// Decodes YAML from r into cfg, rejecting unknown keys.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Checks every field against its constraints.
//
// Returns an error wrapping [ErrInvalid] that names each offending key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Returns host:port of the RGB server.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Formats a field error as "<key>: must satisfy <tag>[=<param>] (got <value>)".
func describe(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}

	rule := fe.Tag()
	if p := fe.Param(); p != "" {
		rule += "=" + p
	}
	return fmt.Sprintf("%s: must satisfy %s (got %v)", key, rule, fe.Value())
}
