package config

import (
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrInvalid = fmt.Errorf("invalid configuration: %w", errdefs.ErrInvalidArgument)
	ErrRead    = fmt.Errorf("failed to read configuration: %w", errdefs.ErrUnknown)
)
