package enginetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "Passed", want: StatusPassed},
		{input: "passed", want: StatusPassed},
		{input: " Blocked ", want: StatusBlocked},
		{input: "NotRun", want: StatusNotRun},
		{input: "1", want: StatusFailed},
		{input: "6", want: StatusCaution},
		{input: "0", wantErr: true},
		{input: "7", wantErr: true},
		{input: "Unknown", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatus_TextRoundTrip(t *testing.T) {
	for _, s := range Statuses() {
		text, err := s.MarshalText()
		require.NoError(t, err)

		var parsed Status
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, s, parsed)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Caution", StatusCaution.String())
	assert.Equal(t, "Status(42)", Status(42).String())

	_, err := Status(42).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
