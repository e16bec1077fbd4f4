package openrgb

import "errors"

var (
	ErrProtocol = errors.New("openrgb protocol error")
)
