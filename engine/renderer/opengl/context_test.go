package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// errorQueue hands out codes like glGetError, then GL_NO_ERROR.
func errorQueue(codes ...uint32) func() uint32 {
	return func() uint32 {
		if len(codes) == 0 {
			return 0
		}
		code := codes[0]
		codes = codes[1:]
		return code
	}
}

func TestFrameErrorsDoNotFailTheFrame(t *testing.T) {
	c := New()

	// GL_INVALID_VALUE, as raised by a sampler set to unit -1
	assert.NoError(t, c.checkFrameErrors(errorQueue(0x0501)))
	assert.True(t, c.reported[0x0501])
	assert.NoError(t, c.checkFrameErrors(errorQueue(0x0501, 0x0502)))
	assert.True(t, c.reported[0x0502])
	assert.NoError(t, c.checkFrameErrors(errorQueue()))
}

func TestLostContextFailsTheFrame(t *testing.T) {
	c := New()
	assert.Error(t, c.checkFrameErrors(errorQueue(0x0501, glContextLost)))
}

func TestFrameErrorDrainIsBounded(t *testing.T) {
	c := New()
	calls := 0
	stuck := func() uint32 {
		calls++
		return 0x0505
	}
	assert.NoError(t, c.checkFrameErrors(stuck))
	assert.Equal(t, maxFrameErrors, calls)
}
