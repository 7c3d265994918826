package image

import "fmt"

// Backend names the processor implementation.
type Backend struct {
	s string
}

var (
	NATIVE = Backend{"native"}
	VIPS   = Backend{"vips"}
)

func (b Backend) String() string {
	return b.s
}

func MakeFromString(s string) (Backend, error) {
	switch s {
	case NATIVE.s:
		return NATIVE, nil
	case VIPS.s:
		return VIPS, nil
	}

	return Backend{}, fmt.Errorf("unknown processor: %s", s)
}
