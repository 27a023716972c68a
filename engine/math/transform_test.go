package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPoint(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-5, "x")
	assert.InDelta(t, expected.Y, actual.Y, 1e-5, "y")
	assert.InDelta(t, expected.Z, actual.Z, 1e-5, "z")
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(NewVec3One(), NewVec3Zero(), NewVec3Zero())
	assert.Equal(t, NewMat4Identity(), m)
}

func TestComposeOrder(t *testing.T) {
	rotation := NewVec3(90, 90, 0)
	m := Compose(NewVec3One(), rotation, NewVec3Zero())

	// Y is applied to the point before X.
	assertPoint(t, NewVec3(0, 1, 0), m.MulPoint(NewVec3(1, 0, 0)))

	swapped := NewMat4EulerX(DegToRad(90)).Mul(NewMat4EulerY(DegToRad(90)))
	assertPoint(t, NewVec3(0, 0, -1), swapped.MulPoint(NewVec3(1, 0, 0)))
	assert.NotEqual(t, m, swapped)
}

func TestComposeScaleRotateTranslate(t *testing.T) {
	m := Compose(NewVec3Splat(2), NewVec3(0, 0, 90), NewVec3(1, 1, 0))
	assertPoint(t, NewVec3(1, 3, 0), m.MulPoint(NewVec3(1, 0, 0)))

	// translation is outermost and never scaled
	assertPoint(t, NewVec3(1, 1, 0), m.MulPoint(NewVec3Zero()))
}

func TestComposeMatchesExplicitFormula(t *testing.T) {
	scale := NewVec3(0.5, 9, 0.5)
	rotation := NewVec3(-5, 2, -3)
	position := NewVec3(3, 0.66, 8)

	s := NewMat4Scale(scale)
	rx := NewMat4EulerX(DegToRad(rotation.X))
	ry := NewMat4EulerY(DegToRad(rotation.Y))
	rz := NewMat4EulerZ(DegToRad(rotation.Z))
	tr := NewMat4Translation(position)

	p := NewVec3(0.3, -0.2, 0.7)
	stepwise := tr.MulPoint(rx.MulPoint(ry.MulPoint(rz.MulPoint(s.MulPoint(p)))))
	assertPoint(t, stepwise, Compose(scale, rotation, position).MulPoint(p))
}

func TestComposeDeterministic(t *testing.T) {
	scale := NewVec3(35.5, 9, 15.5)
	rotation := NewVec3(92, 5, -2)
	position := NewVec3(0, -10, 10)

	first := Compose(scale, rotation, position)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compose(scale, rotation, position))
	}
}
