package errs

import "errors"

var (
	ErrMissingParameter = errors.New("missing parameter")
	ErrFetch            = errors.New("fetch failed")
	ErrDecode           = errors.New("decode failed")
	ErrEncode           = errors.New("encode failed")
)

// Kind returns a short label of the error class, used in logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingParameter):
		return "missing_parameter"
	case errors.Is(err, ErrFetch):
		return "fetch"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrEncode):
		return "encode"
	}

	return "internal"
}
