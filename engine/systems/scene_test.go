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

var materialTrace = []string{
	"material.ambientColor",
	"material.ambientStrength",
	"material.diffuseColor",
	"material.specularColor",
	"material.shininess",
}

func vec4(v math.Vec4) *math.Vec4 { return &v }
func vec2(v math.Vec2) *math.Vec2 { return &v }

func testScene() *metadata.SceneDescription {
	return &metadata.SceneDescription{
		Name:     "test",
		Textures: []metadata.TextureSource{{Path: "wood.png", Tag: "Wood"}},
		Materials: []metadata.Material{
			{Tag: "NORMAL", AmbientColor: math.NewVec3Splat(0.02), AmbientStrength: 0.2, DiffuseColor: math.NewVec3Splat(0.5), SpecularColor: math.NewVec3Splat(0.2), Shininess: 32},
		},
		Lights:      deskLights()[:1],
		UseLighting: true,
		Camera:      metadata.DefaultCamera(),
		Objects: []metadata.ObjectDescriptor{
			{
				Name:  "table",
				Shape: metadata.ShapeBox,
				Transform: metadata.TransformRequest{
					Scale:    math.NewVec3(20, 1, 13),
					Position: math.NewVec3(0, 0, 10),
				},
				Appearance: metadata.Appearance{
					Color:    vec4(math.NewVec4(0.8, 0.8, 0.8, 1)),
					Material: "NORMAL",
					Texture:  "Wood",
				},
			},
			{
				Name:      "ball",
				Shape:     metadata.ShapeSphere,
				Transform: metadata.TransformRequest{Scale: math.NewVec3One()},
				Appearance: metadata.Appearance{
					Material: "NORMAL",
					UVScale:  vec2(math.NewVec2(-1, 1)),
				},
			},
			{
				Name:      "crate",
				Shape:     metadata.ShapeBox,
				Transform: metadata.TransformRequest{Scale: math.NewVec3One()},
			},
		},
	}
}

func TestRenderFollowsDrawListOrder(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	scene := testScene()
	require.NoError(t, s.systems.LoadScene(scene))
	require.True(t, s.systems.Scene().Ready())
	assert.NoError(t, s.systems.Scene().Validate())
	assert.Len(t, s.gpu.CallsOf(recorder.CallMeshCreate), 2)
	assert.Len(t, s.gpu.CallsOf(recorder.CallTextureBind), 1)

	s.gpu.ClearCalls()
	s.systems.Scene().Render()

	var want []string
	want = append(want, "model", "bUseTexture", "objectColor")
	want = append(want, materialTrace...)
	want = append(want, "bUseTexture", "objectTexture", "draw box")
	want = append(want, "model")
	want = append(want, materialTrace...)
	want = append(want, "UVscale", "draw sphere")
	want = append(want, "model", "draw box")
	assert.Equal(t, want, s.trace())

	// the first object's model matrix is the composed transform
	models := s.gpu.CallsOf(recorder.CallUniform)
	assert.Equal(t, scene.Objects[0].Transform.Matrix(), models[0].Value)

	// state left by the table stays bound for the crate
	assert.Equal(t, true, s.value(t, "bUseTexture"))
	assert.Equal(t, math.NewVec2(-1, 1), s.value(t, "UVscale"))

	// rendering twice replays the same calls
	first := s.trace()
	s.gpu.ClearCalls()
	s.systems.Scene().Render()
	assert.Equal(t, first, s.trace())
}

func TestDrawSceneWritesCameraFirst(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	require.NoError(t, s.systems.LoadScene(testScene()))
	s.gpu.ClearCalls()

	require.NoError(t, s.systems.DrawScene())
	trace := s.trace()
	require.GreaterOrEqual(t, len(trace), 3)
	assert.Equal(t, []string{"view", "projection", "viewPosition"}, trace[:3])
	assert.Equal(t, metadata.DefaultCamera().Position, s.value(t, "viewPosition"))
}

func TestSetupReportsMisses(t *testing.T) {
	s := newStack(t)
	scene := testScene()
	scene.Textures = append(scene.Textures, metadata.TextureSource{Path: "missing.png", Tag: "ghost"})
	scene.Objects[2].Appearance.Texture = "ghost"
	scene.Objects[2].Appearance.Material = "LavaMaterial"
	s.decoder.add("wood.png", 3)

	require.NoError(t, s.systems.LoadScene(scene))
	err := s.systems.Scene().Validate()
	assert.ErrorIs(t, err, core.ErrLoadFailure)
	assert.ErrorIs(t, err, core.ErrLookupMiss)
	assert.Contains(t, err.Error(), "crate")

	// a missed texture still enables texturing with the invalid unit
	s.gpu.ClearCalls()
	s.systems.Scene().Render()
	assert.Equal(t, metadata.InvalidTextureUnit, s.value(t, "objectTexture"))
	assert.Equal(t, []string{"box", "sphere", "box"}, s.gpu.Draws())
}

func TestSetupFailsWithoutBindings(t *testing.T) {
	s := newStack(t, recorder.WithUniforms("model", "view", "projection"))
	s.decoder.add("wood.png", 3)

	err := s.systems.LoadScene(testScene())
	assert.ErrorIs(t, err, core.ErrMissingUniform)
	assert.False(t, s.systems.Scene().Ready())
	assert.Zero(t, s.gpu.LiveTextures())
}

func TestSetupFailsWithTooManyLights(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	scene := testScene()
	scene.Lights = append(deskLights(), deskLights()...)

	err := s.systems.LoadScene(scene)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.Empty(t, s.systems.Materials().Materials())
	assert.Zero(t, s.gpu.LiveTextures())
}

func TestSetupValidatesDescription(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	scene := testScene()
	scene.Objects[0].Appearance.Color = vec4(math.NewVec4(1.5, 0, 0, 1))

	err := s.systems.LoadScene(scene)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.False(t, s.systems.Scene().Ready())
	assert.Empty(t, s.systems.Materials().Materials())
	assert.Empty(t, s.gpu.CallsOf(recorder.CallTextureCreate, recorder.CallMeshCreate))
}

func TestSceneShutdownIsIdempotent(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	require.NoError(t, s.systems.LoadScene(testScene()))

	require.NoError(t, s.systems.Scene().Shutdown())
	assert.Zero(t, s.gpu.LiveTextures())
	assert.Zero(t, s.gpu.LiveMeshes())
	assert.False(t, s.systems.Scene().Ready())
	destroyed := len(s.gpu.CallsOf(recorder.CallTextureDestroy, recorder.CallMeshDestroy))

	require.NoError(t, s.systems.Scene().Shutdown())
	require.NoError(t, s.systems.Shutdown())
	assert.Len(t, s.gpu.CallsOf(recorder.CallTextureDestroy, recorder.CallMeshDestroy), destroyed)

	s.gpu.ClearCalls()
	s.systems.Scene().Render()
	assert.Empty(t, s.gpu.Calls())
}

func TestSetupReplacesPreviousScene(t *testing.T) {
	s := newStack(t)
	s.decoder.add("wood.png", 3)
	require.NoError(t, s.systems.LoadScene(testScene()))
	require.NoError(t, s.systems.LoadScene(testScene()))

	assert.Equal(t, 1, s.gpu.LiveTextures())
	assert.Equal(t, 2, s.gpu.LiveMeshes())
	assert.Len(t, s.systems.Materials().Materials(), 1)
	unit, ok := s.systems.Textures().LookupUnit("Wood")
	assert.True(t, ok)
	assert.Equal(t, int32(0), unit)
}

func TestCameraResize(t *testing.T) {
	s := newStack(t)
	cs := s.systems.Camera()
	assert.InDelta(t, 800.0/600.0, cs.AspectRatio(), 1e-6)

	s.systems.OnResize(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, cs.AspectRatio(), 1e-6)
	s.systems.OnResize(0, 0)
	assert.InDelta(t, 1920.0/1080.0, cs.AspectRatio(), 1e-6)

	_, err := NewCameraSystem(&CameraSystemConfig{}, s.systems.ShaderBridge())
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}
