package daemon

import "errors"

var (
	ErrInvalidPolicy = errors.New("invalid command error policy")
)
