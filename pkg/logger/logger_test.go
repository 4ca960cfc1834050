package logger

import (
	"bytes"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    charm.Level
		wantErr bool
	}{
		{input: "Trace", want: TraceLevel},
		{input: "debug", want: charm.DebugLevel},
		{input: "Info", want: charm.InfoLevel},
		{input: "", want: charm.InfoLevel},
		{input: "Warning", want: charm.WarnLevel},
		{input: "warn", want: charm.WarnLevel},
		{input: "Off", want: OffLevel},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultLoggerSwap(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer
	replacement := charm.NewWithOptions(&buf, charm.Options{ReportTimestamp: false})
	SetDefault(replacement)

	require.Same(t, replacement, Default())

	Info("hello", "key", "value")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "key=value")
}

func TestTraceSuppressedAtDefaultLevel(t *testing.T) {
	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	var buf bytes.Buffer
	replacement := charm.NewWithOptions(&buf, charm.Options{ReportTimestamp: false, Level: charm.InfoLevel})
	SetDefault(replacement)

	Trace("hidden")
	assert.Empty(t, buf.String())

	replacement.SetLevel(TraceLevel)
	Trace("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	original := Default()
	SetDefault(nil)
	assert.Same(t, original, Default())
}
