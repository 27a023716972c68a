package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameMetricsReportsOncePerSecond(t *testing.T) {
	m := NewFrameMetrics()

	reported := 0
	for i := 0; i < 100; i++ {
		if m.Update(1.0 / 60.0) {
			reported++
		}
	}

	assert.Equal(t, 1, reported)
	assert.InDelta(t, 61, m.FPS(), 1)
	assert.InDelta(t, 1000.0/60.0, m.FrameTime(), 1e-9)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"INFO", LogLevelInfo},
		{"", LogLevelInfo},
		{"warning", LogLevelWarn},
		{" error ", LogLevelError},
		{"fatal", LogLevelFatal},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	_, err := ParseLogLevel("chatty")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
