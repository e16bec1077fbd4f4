package supervisor

import (
	"errors"
	"fmt"

	"github.com/containerd/errdefs"
)

var (
	ErrConnect   = fmt.Errorf("failed to connect to RGB server: %w", errdefs.ErrUnavailable)
	ErrPortInUse = errors.New("RGB server port is in use")
)
