package retry

import "errors"

var (
	ErrExhausted = errors.New("retry attempts exhausted")
)
