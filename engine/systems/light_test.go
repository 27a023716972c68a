package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

func deskLights() []metadata.LightSource {
	return []metadata.LightSource{
		{Position: math.NewVec3(-10, 5, 0), AmbientColor: math.NewVec3Splat(0.05), DiffuseColor: math.NewVec3(0.25, 0.2, 0.15), SpecularColor: math.NewVec3(0.25, 0.225, 0.2)},
		{Position: math.NewVec3(-10, 8, -5), AmbientColor: math.NewVec3(0.025, 0.025, 0.05), DiffuseColor: math.NewVec3(0.15, 0.175, 0.25), SpecularColor: math.NewVec3(0.125, 0.15, 0.2)},
		{Position: math.NewVec3(-5, 12, 0), AmbientColor: math.NewVec3Splat(0.075), DiffuseColor: math.NewVec3Splat(0.25), SpecularColor: math.NewVec3Splat(0.25)},
	}
}

func TestConfigureLights(t *testing.T) {
	s := newStack(t)
	ls := s.systems.Lights()

	require.NoError(t, ls.Configure(true, deskLights()))
	assert.Equal(t, 3, ls.ActiveCount())
	assert.Equal(t, true, s.value(t, "bUseLighting"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, true, s.value(t, metadataLight(t, i, metadata.LightFieldActive)))
	}
	assert.Equal(t, false, s.value(t, "lightSources[3].bActive"))
	_, written := s.program.Value("lightSources[3].position")
	assert.False(t, written)

	l, ok := ls.Light(1)
	require.True(t, ok)
	assert.Equal(t, math.NewVec3(-10, 8, -5), l.Position)
	_, ok = ls.Light(3)
	assert.False(t, ok)
}

func TestConfigureTooManyLights(t *testing.T) {
	s := newStack(t)
	lights := append(deskLights(), deskLights()...)

	err := s.systems.Lights().Configure(true, lights)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Zero(t, s.program.Writes())
	assert.Zero(t, s.systems.Lights().ActiveCount())
}

func metadataLight(t *testing.T, index int, field metadata.LightField) string {
	t.Helper()
	name, err := metadata.LightUniformName(index, field)
	require.NoError(t, err)
	return name
}
