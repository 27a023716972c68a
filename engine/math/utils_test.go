package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 16))
	assert.Equal(t, 16, Clamp(20, 0, 16))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}

func TestUnitRange(t *testing.T) {
	assert.True(t, UnitRange(0, 0.5, 1))
	assert.False(t, UnitRange(0.2, 1.01))
	assert.False(t, UnitRange(-0.1))
	assert.True(t, UnitRange())
}

func TestLookAtNormalizesAxes(t *testing.T) {
	view := NewMat4LookAt(NewVec3(0, 0, 10), NewVec3Zero(), NewVec3Up())
	// the eye maps to the origin of view space
	p := view.MulPoint(NewVec3(0, 0, 10))
	assert.InDelta(t, 0, p.Length(), 1e-5)
	// the target ends up straight ahead on -Z
	q := view.MulPoint(NewVec3Zero())
	assert.InDelta(t, -10, q.Z, 1e-5)
}
