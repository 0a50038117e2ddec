package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		err      error
		want     string
	}{
		{name: "hostname", hostname: "build-01", want: "build-01"},
		{name: "lookup error", err: errors.New("no uts namespace"), want: UnknownHostFallback},
		{name: "empty hostname", want: UnknownHostFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := osHostname
			t.Cleanup(func() { osHostname = orig })
			osHostname = func() (string, error) { return tt.hostname, tt.err }

			assert.Equal(t, tt.want, GetHostname())
		})
	}
}
