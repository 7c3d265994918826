package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "missing parameter", err: fmt.Errorf("%w: option", ErrMissingParameter), want: "missing_parameter"},
		{name: "fetch", err: fmt.Errorf("%w: dial tcp", ErrFetch), want: "fetch"},
		{name: "decode", err: fmt.Errorf("%w: unknown format", ErrDecode), want: "decode"},
		{name: "encode", err: fmt.Errorf("%w: short write", ErrEncode), want: "encode"},
		{name: "unclassified", err: errors.New("boom"), want: "internal"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Kind(tc.err))
		})
	}
}
