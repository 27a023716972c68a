package metadata

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
)

/**
 * @brief Reflectance parameters used by the lighting shader.
 */
type Material struct {
	/** @brief The application defined name of the material. */
	Tag             string
	AmbientColor    math.Vec3
	AmbientStrength float32
	DiffuseColor    math.Vec3
	SpecularColor   math.Vec3
	Shininess       float32
}

// Validate checks colours are inside [0,1] and shininess is not negative.
func (m Material) Validate() error {
	if m.Tag == "" {
		return fmt.Errorf("material has no tag: %w", core.ErrInvalidConfig)
	}
	colours := []struct {
		name  string
		value math.Vec3
	}{
		{"ambient", m.AmbientColor},
		{"diffuse", m.DiffuseColor},
		{"specular", m.SpecularColor},
	}
	for _, c := range colours {
		if !math.UnitRange(c.value.X, c.value.Y, c.value.Z) {
			return fmt.Errorf("material %q %s colour %v outside [0,1]: %w", m.Tag, c.name, c.value, core.ErrInvalidConfig)
		}
	}
	if !math.UnitRange(m.AmbientStrength) {
		return fmt.Errorf("material %q ambient strength %v outside [0,1]: %w", m.Tag, m.AmbientStrength, core.ErrInvalidConfig)
	}
	if m.Shininess < 0 {
		return fmt.Errorf("material %q has negative shininess: %w", m.Tag, core.ErrInvalidConfig)
	}
	return nil
}
