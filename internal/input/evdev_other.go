//go:build !linux

package input

// Returns a device set that reports every operation as unsupported.
func Local() System {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Devices() ([]Info, error) {
	return nil, ErrUnsupported
}

func (unsupported) Open(string) (Source, error) {
	return nil, ErrUnsupported
}
