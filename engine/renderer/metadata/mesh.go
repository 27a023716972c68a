package metadata

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
)

// Shape identifies one of the primitive meshes the mesh library provides.
type Shape int

const (
	ShapeBox Shape = iota
	ShapePlane
	ShapeCylinder
	ShapeTaperedCylinder
	ShapeCone
	ShapeSphere
	ShapeTorus
	shapeCount
)

var shapeNames = [shapeCount]string{
	ShapeBox:             "box",
	ShapePlane:           "plane",
	ShapeCylinder:        "cylinder",
	ShapeTaperedCylinder: "tapered_cylinder",
	ShapeCone:            "cone",
	ShapeSphere:          "sphere",
	ShapeTorus:           "torus",
}

func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// AllShapes lists every shape in declaration order.
func AllShapes() []Shape {
	out := make([]Shape, 0, shapeCount)
	for s := Shape(0); s < shapeCount; s++ {
		out = append(out, s)
	}
	return out
}

// ParseShape accepts the names returned by String; "tapered-cylinder" and
// "taperedcylinder" are also accepted.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	if n == "taperedcylinder" {
		n = "tapered_cylinder"
	}
	for s, sn := range shapeNames {
		if sn == n {
			return Shape(s), nil
		}
	}
	return 0, fmt.Errorf("shape %q: %w", name, core.ErrUnknownShape)
}

func (s Shape) MarshalText() ([]byte, error) {
	if s < 0 || s >= shapeCount {
		return nil, fmt.Errorf("shape %d: %w", int(s), core.ErrUnknownShape)
	}
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MeshHandle is an opaque id for geometry uploaded to the GPU.
type MeshHandle uint32

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief The Name of the geometry. */
	Name string
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices, three per triangle. */
	Indices []uint32

	Center     math.Vec3
	MinExtents math.Vec3
	MaxExtents math.Vec3
}
