package metadata

import "fmt"

/**
 * @brief A uniform the lighting shader declares. The set is closed: every
 * write goes through one of these, and all of them are checked against the
 * compiled program once at setup.
 */
type Binding int

const (
	BindingModel Binding = iota
	BindingView
	BindingProjection
	BindingViewPosition
	BindingObjectColor
	BindingObjectTexture
	BindingUseTexture
	BindingUseLighting
	BindingUVScale
	BindingMaterialAmbientColor
	BindingMaterialAmbientStrength
	BindingMaterialDiffuseColor
	BindingMaterialSpecularColor
	BindingMaterialShininess
	bindingCount
)

var bindingNames = [bindingCount]string{
	BindingModel:                   "model",
	BindingView:                    "view",
	BindingProjection:              "projection",
	BindingViewPosition:            "viewPosition",
	BindingObjectColor:             "objectColor",
	BindingObjectTexture:           "objectTexture",
	BindingUseTexture:              "bUseTexture",
	BindingUseLighting:             "bUseLighting",
	BindingUVScale:                 "UVscale",
	BindingMaterialAmbientColor:    "material.ambientColor",
	BindingMaterialAmbientStrength: "material.ambientStrength",
	BindingMaterialDiffuseColor:    "material.diffuseColor",
	BindingMaterialSpecularColor:   "material.specularColor",
	BindingMaterialShininess:       "material.shininess",
}

// Name returns the uniform name as declared in the shader source.
func (b Binding) Name() string {
	if b < 0 || b >= bindingCount {
		return fmt.Sprintf("Binding(%d)", int(b))
	}
	return bindingNames[b]
}

func (b Binding) String() string {
	return b.Name()
}

// LightField is one member of the lightSources[i] struct.
type LightField int

const (
	LightFieldActive LightField = iota
	LightFieldPosition
	LightFieldAmbientColor
	LightFieldDiffuseColor
	LightFieldSpecularColor
	lightFieldCount
)

var lightFieldNames = [lightFieldCount]string{
	LightFieldActive:        "bActive",
	LightFieldPosition:      "position",
	LightFieldAmbientColor:  "ambientColor",
	LightFieldDiffuseColor:  "diffuseColor",
	LightFieldSpecularColor: "specularColor",
}

/**
 * @brief Returns the uniform name of field in light slot index, for example
 * "lightSources[2].position". Index must be in [0, MaxLightSources).
 */
func LightUniformName(index int, field LightField) (string, error) {
	if index < 0 || index >= MaxLightSources {
		return "", fmt.Errorf("light index %d outside [0,%d)", index, MaxLightSources)
	}
	if field < 0 || field >= lightFieldCount {
		return "", fmt.Errorf("unknown light field %d", int(field))
	}
	return fmt.Sprintf("lightSources[%d].%s", index, lightFieldNames[field]), nil
}

// AllBindings returns every member of the closed binding set in declaration order.
func AllBindings() []Binding {
	out := make([]Binding, 0, bindingCount)
	for b := Binding(0); b < bindingCount; b++ {
		out = append(out, b)
	}
	return out
}

/**
 * @brief Returns every uniform name the lighting shader must declare: the
 * fixed bindings followed by each field of each light slot.
 */
func AllUniformNames() []string {
	out := make([]string, 0, int(bindingCount)+MaxLightSources*int(lightFieldCount))
	for _, b := range AllBindings() {
		out = append(out, b.Name())
	}
	for i := 0; i < MaxLightSources; i++ {
		for f := LightField(0); f < lightFieldCount; f++ {
			name, _ := LightUniformName(i, f)
			out = append(out, name)
		}
	}
	return out
}
