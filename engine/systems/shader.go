package systems

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

/**
 * @brief Turns resolved colours, textures, materials and matrices into
 * uniform writes on the lighting program. Every setter writes immediately;
 * the next draw samples whatever was written last.
 */
type ShaderStateBridge struct {
	program   renderer.ShaderProgram
	textures  *TextureSystem
	materials *MaterialSystem
}

func NewShaderStateBridge(program renderer.ShaderProgram, textures *TextureSystem, materials *MaterialSystem) (*ShaderStateBridge, error) {
	if program == nil || textures == nil || materials == nil {
		err := errors.New("func NewShaderStateBridge - program, texture system and material system are required")
		core.LogError(err.Error())
		return nil, err
	}
	return &ShaderStateBridge{
		program:   program,
		textures:  textures,
		materials: materials,
	}, nil
}

/**
 * @brief Checks the program declares every binding, light fields included.
 * All missing names are reported together.
 */
func (sb *ShaderStateBridge) Validate() error {
	var missing []string
	for _, name := range metadata.AllUniformNames() {
		if !sb.program.HasUniform(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("lighting program does not declare %s: %w", strings.Join(missing, ", "), core.ErrMissingUniform)
	}
	return nil
}

// SetColor switches the object to flat colour.
func (sb *ShaderStateBridge) SetColor(color math.Vec4) {
	sb.program.SetBool(metadata.BindingUseTexture.Name(), false)
	sb.program.SetVec4(metadata.BindingObjectColor.Name(), color)
}

/**
 * @brief Switches the object to textured and points the sampler at the unit
 * of tag. An unknown tag still enables texturing and writes
 * InvalidTextureUnit; the returned LookupMiss lets callers notice.
 */
func (sb *ShaderStateBridge) SetTexture(tag string) error {
	sb.program.SetBool(metadata.BindingUseTexture.Name(), true)
	unit, ok := sb.textures.LookupUnit(tag)
	sb.program.SetInt(metadata.BindingObjectTexture.Name(), unit)
	if !ok {
		core.LogDebug("texture %q is not registered, sampling unit %d", tag, unit)
		return fmt.Errorf("texture %q: %w", tag, core.ErrLookupMiss)
	}
	return nil
}

// SetMaterial writes the five material fields. An unknown tag writes nothing.
func (sb *ShaderStateBridge) SetMaterial(tag string) error {
	var m metadata.Material
	if !sb.materials.Find(tag, &m) {
		core.LogDebug("material %q is not defined, keeping the previous material", tag)
		return fmt.Errorf("material %q: %w", tag, core.ErrLookupMiss)
	}
	sb.program.SetVec3(metadata.BindingMaterialAmbientColor.Name(), m.AmbientColor)
	sb.program.SetFloat(metadata.BindingMaterialAmbientStrength.Name(), m.AmbientStrength)
	sb.program.SetVec3(metadata.BindingMaterialDiffuseColor.Name(), m.DiffuseColor)
	sb.program.SetVec3(metadata.BindingMaterialSpecularColor.Name(), m.SpecularColor)
	sb.program.SetFloat(metadata.BindingMaterialShininess.Name(), m.Shininess)
	return nil
}

func (sb *ShaderStateBridge) SetUVScale(u, v float32) {
	sb.program.SetVec2(metadata.BindingUVScale.Name(), math.NewVec2(u, v))
}

func (sb *ShaderStateBridge) SetTransform(model math.Mat4) {
	sb.program.SetMat4(metadata.BindingModel.Name(), model)
}

func (sb *ShaderStateBridge) SetCamera(view, projection math.Mat4, position math.Vec3) {
	sb.program.SetMat4(metadata.BindingView.Name(), view)
	sb.program.SetMat4(metadata.BindingProjection.Name(), projection)
	sb.program.SetVec3(metadata.BindingViewPosition.Name(), position)
}

func (sb *ShaderStateBridge) SetLightingEnabled(enabled bool) {
	sb.program.SetBool(metadata.BindingUseLighting.Name(), enabled)
}

/**
 * @brief Writes light slot index. A nil light only clears the active flag.
 */
func (sb *ShaderStateBridge) SetLight(index int, light *metadata.LightSource) error {
	active, err := metadata.LightUniformName(index, metadata.LightFieldActive)
	if err != nil {
		return fmt.Errorf("%v: %w", err, core.ErrInvalidConfig)
	}
	if light == nil {
		sb.program.SetBool(active, false)
		return nil
	}
	sb.program.SetBool(active, true)

	fields := []struct {
		field metadata.LightField
		value math.Vec3
	}{
		{metadata.LightFieldPosition, light.Position},
		{metadata.LightFieldAmbientColor, light.AmbientColor},
		{metadata.LightFieldDiffuseColor, light.DiffuseColor},
		{metadata.LightFieldSpecularColor, light.SpecularColor},
	}
	for _, f := range fields {
		name, _ := metadata.LightUniformName(index, f.field)
		sb.program.SetVec3(name, f.value)
	}
	return nil
}
