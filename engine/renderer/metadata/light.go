package metadata

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
)

/** @brief The number of light slots the lighting shader declares. */
const MaxLightSources int = 4

/**
 * @brief A point light occupying one of the fixed shader slots.
 */
type LightSource struct {
	Position      math.Vec3
	AmbientColor  math.Vec3
	DiffuseColor  math.Vec3
	SpecularColor math.Vec3
}

func (l LightSource) Validate(index int) error {
	for _, c := range []math.Vec3{l.AmbientColor, l.DiffuseColor, l.SpecularColor} {
		if !math.UnitRange(c.X, c.Y, c.Z) {
			return fmt.Errorf("light %d colour %v outside [0,1]: %w", index, c, core.ErrInvalidConfig)
		}
	}
	return nil
}
