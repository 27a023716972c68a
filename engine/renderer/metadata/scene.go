package metadata

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
)

/**
 * @brief The inputs of a model matrix. Produced and consumed per draw.
 */
type TransformRequest struct {
	Scale           math.Vec3
	RotationDegrees math.Vec3
	Position        math.Vec3
}

// Matrix composes the request into a model matrix.
func (t TransformRequest) Matrix() math.Mat4 {
	return math.Compose(t.Scale, t.RotationDegrees, t.Position)
}

/**
 * @brief The optional per-object state writes done before a draw. A nil
 * pointer or empty tag means the uniform is not written and keeps whatever
 * value the previous object left bound.
 */
type Appearance struct {
	Color    *math.Vec4
	Material string
	Texture  string
	UVScale  *math.Vec2
}

/**
 * @brief One entry of the draw list.
 */
type ObjectDescriptor struct {
	/** @brief Optional label used in logs and traces. */
	Name       string
	Shape      Shape
	Transform  TransformRequest
	Appearance Appearance
}

// TextureSource names an image file and the tag it registers under.
type TextureSource struct {
	Path string
	Tag  string
}

/**
 * @brief A fixed look-at camera with a perspective projection.
 */
type Camera struct {
	Position   math.Vec3
	Target     math.Vec3
	Up         math.Vec3
	FovDegrees float32
	Near       float32
	Far        float32
}

// DefaultCamera looks at the origin from a few units back along +Z.
func DefaultCamera() Camera {
	return Camera{
		Position:   math.NewVec3(0, 5, 12),
		Target:     math.NewVec3Zero(),
		Up:         math.NewVec3Up(),
		FovDegrees: 45,
		Near:       0.1,
		Far:        100,
	}
}

func (c Camera) View() math.Mat4 {
	return math.NewMat4LookAt(c.Position, c.Target, c.Up)
}

// validateAxes rejects cameras whose look-at basis cannot be built: position
// on the target, a zero up vector, or up parallel to the view direction.
func (c Camera) validateAxes() error {
	forward := c.Target.Sub(c.Position)
	if forward.LengthSquared() == 0 {
		return fmt.Errorf("camera position %v is its target: %w", c.Position, core.ErrInvalidConfig)
	}
	if c.Up.LengthSquared() == 0 {
		return fmt.Errorf("camera up vector is zero: %w", core.ErrInvalidConfig)
	}
	if forward.Normalized().Cross(c.Up.Normalized()).LengthSquared() < 1e-8 {
		return fmt.Errorf("camera up %v is parallel to the view direction: %w", c.Up, core.ErrInvalidConfig)
	}
	return nil
}

func (c Camera) Projection(aspectRatio float32) math.Mat4 {
	return math.NewMat4Perspective(math.DegToRad(c.FovDegrees), aspectRatio, c.Near, c.Far)
}

/**
 * @brief Everything needed to set up and render one scene.
 */
type SceneDescription struct {
	Name        string
	Textures    []TextureSource
	Materials   []Material
	Lights      []LightSource
	UseLighting bool
	Camera      Camera
	Objects     []ObjectDescriptor
}

// Validate reports every structural problem of the description joined in one error.
func (s *SceneDescription) Validate() error {
	var errs []error
	if len(s.Textures) > MaxTextureUnits {
		errs = append(errs, fmt.Errorf("%d textures exceed the %d available units: %w", len(s.Textures), MaxTextureUnits, core.ErrCapacityExceeded))
	}
	for i, t := range s.Textures {
		if t.Path == "" || t.Tag == "" {
			errs = append(errs, fmt.Errorf("texture %d needs both path and tag: %w", i, core.ErrInvalidConfig))
		}
	}
	for _, m := range s.Materials {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.Lights) > MaxLightSources {
		errs = append(errs, fmt.Errorf("%d lights exceed the %d shader slots: %w", len(s.Lights), MaxLightSources, core.ErrInvalidConfig))
	}
	for i, l := range s.Lights {
		if err := l.Validate(i); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes near=%v far=%v: %w", s.Camera.Near, s.Camera.Far, core.ErrInvalidConfig))
	}
	if err := s.Camera.validateAxes(); err != nil {
		errs = append(errs, err)
	}
	for i, o := range s.Objects {
		if o.Shape < 0 || o.Shape >= shapeCount {
			errs = append(errs, fmt.Errorf("object %d: shape %d: %w", i, int(o.Shape), core.ErrUnknownShape))
		}
		if c := o.Appearance.Color; c != nil && !math.UnitRange(c.X, c.Y, c.Z, c.W) {
			errs = append(errs, fmt.Errorf("object %d colour %v outside [0,1]: %w", i, *c, core.ErrInvalidConfig))
		}
	}
	return errors.Join(errs...)
}

// Shapes returns the distinct shapes the draw list uses, in first-use order.
func (s *SceneDescription) Shapes() []Shape {
	seen := make(map[Shape]bool)
	var out []Shape
	for _, o := range s.Objects {
		if !seen[o.Shape] {
			seen[o.Shape] = true
			out = append(out, o.Shape)
		}
	}
	return out
}
