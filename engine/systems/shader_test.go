package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
	"github.com/spaghettifunk/diorama/engine/renderer/recorder"
)

func TestSetTextureWritesRegisteredUnit(t *testing.T) {
	s := newStack(t)
	s.decoder.add("textures/white.png", 3)
	s.decoder.add("textures/wood.png", 3)
	require.NoError(t, s.systems.Textures().Register("textures/white.png", "white"))
	require.NoError(t, s.systems.Textures().Register("textures/wood.png", "Wood"))

	require.NoError(t, s.systems.ShaderBridge().SetTexture("Wood"))

	unit, ok := s.systems.Textures().LookupUnit("Wood")
	require.True(t, ok)
	assert.Equal(t, unit, s.value(t, "objectTexture"))
	assert.Equal(t, true, s.value(t, "bUseTexture"))
	assert.Equal(t, []string{"bUseTexture", "objectTexture"}, s.trace())
}

func TestSetTextureUnknownTag(t *testing.T) {
	s := newStack(t)
	err := s.systems.ShaderBridge().SetTexture("missing")
	assert.ErrorIs(t, err, core.ErrLookupMiss)
	assert.Equal(t, true, s.value(t, "bUseTexture"))
	assert.Equal(t, metadata.InvalidTextureUnit, s.value(t, "objectTexture"))
}

func TestSetColorAfterTexture(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	require.NoError(t, s.systems.Textures().Register("wood.png", "Wood"))
	bridge := s.systems.ShaderBridge()
	require.NoError(t, bridge.SetTexture("Wood"))

	color := math.NewVec4(0.1, 0.2, 0.3, 1)
	bridge.SetColor(color)

	assert.Equal(t, false, s.value(t, "bUseTexture"))
	assert.Equal(t, color, s.value(t, "objectColor"))
	assert.Equal(t, int32(0), s.value(t, "objectTexture"))
	assert.Equal(t, []string{"bUseTexture", "objectTexture", "bUseTexture", "objectColor"}, s.trace())
}

func TestSetMaterial(t *testing.T) {
	s := newStack(t)
	s.systems.Materials().Define(metadata.Material{
		Tag:             "WaterMaterial",
		AmbientColor:    math.NewVec3(0, 0, 0.4),
		AmbientStrength: 0.25,
		DiffuseColor:    math.NewVec3(0.3, 0.5, 0.8),
		SpecularColor:   math.NewVec3(0.6, 0.8, 1),
		Shininess:       64,
	})
	bridge := s.systems.ShaderBridge()

	require.NoError(t, bridge.SetMaterial("WaterMaterial"))
	assert.Equal(t, []string{
		"material.ambientColor",
		"material.ambientStrength",
		"material.diffuseColor",
		"material.specularColor",
		"material.shininess",
	}, s.trace())
	assert.Equal(t, float32(64), s.value(t, "material.shininess"))
	assert.Equal(t, math.NewVec3(0.3, 0.5, 0.8), s.value(t, "material.diffuseColor"))

	writes := s.program.Writes()
	err := bridge.SetMaterial("LavaMaterial")
	assert.ErrorIs(t, err, core.ErrLookupMiss)
	assert.Equal(t, writes, s.program.Writes())
	assert.Equal(t, float32(64), s.value(t, "material.shininess"))
}

func TestSetUVScaleTransformAndCamera(t *testing.T) {
	s := newStack(t)
	bridge := s.systems.ShaderBridge()

	bridge.SetUVScale(-1, 1)
	assert.Equal(t, math.NewVec2(-1, 1), s.value(t, "UVscale"))

	model := math.NewMat4Translation(math.NewVec3(1, 2, 3))
	bridge.SetTransform(model)
	assert.Equal(t, model, s.value(t, "model"))

	bridge.SetCamera(math.NewMat4Identity(), math.NewMat4Identity(), math.NewVec3(0, 1, 2))
	assert.Equal(t, math.NewVec3(0, 1, 2), s.value(t, "viewPosition"))
	assert.Equal(t, []string{"UVscale", "model", "view", "projection", "viewPosition"}, s.trace())
}

func TestSetLight(t *testing.T) {
	s := newStack(t)
	bridge := s.systems.ShaderBridge()

	require.NoError(t, bridge.SetLight(2, nil))
	assert.Equal(t, []string{"lightSources[2].bActive"}, s.trace())
	assert.Equal(t, false, s.value(t, "lightSources[2].bActive"))

	s.gpu.ClearCalls()
	light := &metadata.LightSource{Position: math.NewVec3(-10, 5, 0), DiffuseColor: math.NewVec3(0.25, 0.2, 0.15)}
	require.NoError(t, bridge.SetLight(0, light))
	assert.Equal(t, []string{
		"lightSources[0].bActive",
		"lightSources[0].position",
		"lightSources[0].ambientColor",
		"lightSources[0].diffuseColor",
		"lightSources[0].specularColor",
	}, s.trace())
	assert.Equal(t, light.Position, s.value(t, "lightSources[0].position"))

	assert.ErrorIs(t, bridge.SetLight(metadata.MaxLightSources, light), core.ErrInvalidConfig)
}

func TestValidateReportsMissingUniforms(t *testing.T) {
	s := newStack(t)
	assert.NoError(t, s.systems.ShaderBridge().Validate())

	names := metadata.AllUniformNames()
	var partial []string
	for _, n := range names {
		if n != "UVscale" && n != "lightSources[3].specularColor" {
			partial = append(partial, n)
		}
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureUnits: 16}, newFakeDecoder(), recorder.New())
	require.NoError(t, err)
	bridge, err := NewShaderStateBridge(recorder.NewProgram(partial...), ts, newMaterialSystem(t))
	require.NoError(t, err)

	err = bridge.Validate()
	assert.ErrorIs(t, err, core.ErrMissingUniform)
	assert.Contains(t, err.Error(), "UVscale")
	assert.Contains(t, err.Error(), "lightSources[3].specularColor")
}
