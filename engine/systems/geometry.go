package systems

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

const (
	defaultRadialSegments uint32 = 32
	defaultSphereStacks   uint32 = 16
	defaultTorusSides     uint32 = 16
)

type geometryBuilder struct {
	config *metadata.GeometryConfig
}

func newGeometryBuilder(name string) *geometryBuilder {
	return &geometryBuilder{config: &metadata.GeometryConfig{Name: name}}
}

func (b *geometryBuilder) vertex(position, normal math.Vec3, uv math.Vec2) uint32 {
	b.config.Vertices = append(b.config.Vertices, math.Vertex3D{Position: position, Normal: normal, Texcoord: uv})
	return uint32(len(b.config.Vertices) - 1)
}

func (b *geometryBuilder) triangle(i0, i1, i2 uint32) {
	b.config.Indices = append(b.config.Indices, i0, i1, i2)
}

// build computes the extents and centre once every vertex is in place.
func (b *geometryBuilder) build() *metadata.GeometryConfig {
	c := b.config
	if len(c.Vertices) == 0 {
		return c
	}
	c.MinExtents = c.Vertices[0].Position
	c.MaxExtents = c.Vertices[0].Position
	for _, v := range c.Vertices[1:] {
		p := v.Position
		c.MinExtents = math.NewVec3(math32.Min(c.MinExtents.X, p.X), math32.Min(c.MinExtents.Y, p.Y), math32.Min(c.MinExtents.Z, p.Z))
		c.MaxExtents = math.NewVec3(math32.Max(c.MaxExtents.X, p.X), math32.Max(c.MaxExtents.Y, p.Y), math32.Max(c.MaxExtents.Z, p.Z))
	}
	c.Center = c.MinExtents.Add(c.MaxExtents).MulScalar(0.5)
	return c
}

/**
 * @brief Generates a plane in the XZ plane facing +Y.
 *
 * @param width The overall size along x. Must be non-zero.
 * @param depth The overall size along z. Must be non-zero.
 * @param xSegmentCount The number of segments along x. Must be non-zero.
 * @param zSegmentCount The number of segments along z. Must be non-zero.
 * @param tileX The number of times the texture should tile across x.
 * @param tileY The number of times the texture should tile across z.
 */
func GeneratePlaneConfig(width, depth float32, xSegmentCount, zSegmentCount uint32, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	xSegmentCount = math.Clamp(xSegmentCount, 1, xSegmentCount)
	zSegmentCount = math.Clamp(zSegmentCount, 1, zSegmentCount)
	if tileX == 0 {
		tileX = 1.0
	}
	if tileY == 0 {
		tileY = 1.0
	}

	b := newGeometryBuilder(name)
	up := math.NewVec3Up()
	for z := uint32(0); z <= zSegmentCount; z++ {
		for x := uint32(0); x <= xSegmentCount; x++ {
			fx := float32(x) / float32(xSegmentCount)
			fz := float32(z) / float32(zSegmentCount)
			b.vertex(
				math.NewVec3((fx-0.5)*width, 0, (fz-0.5)*depth),
				up,
				math.NewVec2(fx*tileX, (1-fz)*tileY),
			)
		}
	}
	row := xSegmentCount + 1
	for z := uint32(0); z < zSegmentCount; z++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			i0 := z*row + x
			i1 := i0 + 1
			i3 := i0 + row
			i2 := i3 + 1
			b.triangle(i0, i3, i2)
			b.triangle(i0, i2, i1)
		}
	}
	return b.build()
}

/**
 * @brief Generates an axis aligned box centred on the origin.
 */
func GenerateBoxConfig(width, height, depth, tileX, tileY float32, name string) *metadata.GeometryConfig {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1.0
	}
	if tileX == 0 {
		tileX = 1.0
	}
	if tileY == 0 {
		tileY = 1.0
	}

	half := math.NewVec3(width*0.5, height*0.5, depth*0.5)
	// normal, u and v with u x v = normal
	faces := [6][3]math.Vec3{
		{{X: 1}, {Z: -1}, {Y: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {X: 1}, {Z: -1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {X: -1}, {Y: 1}},
	}

	b := newGeometryBuilder(name)
	scale := func(v math.Vec3) math.Vec3 {
		return math.NewVec3(v.X*half.X, v.Y*half.Y, v.Z*half.Z)
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		c := scale(n)
		su, sv := scale(u), scale(v)
		i0 := b.vertex(c.Sub(su).Sub(sv), n, math.NewVec2(0, 0))
		i1 := b.vertex(c.Add(su).Sub(sv), n, math.NewVec2(tileX, 0))
		i2 := b.vertex(c.Add(su).Add(sv), n, math.NewVec2(tileX, tileY))
		i3 := b.vertex(c.Sub(su).Add(sv), n, math.NewVec2(0, tileY))
		b.triangle(i0, i1, i2)
		b.triangle(i0, i2, i3)
	}
	return b.build()
}

/**
 * @brief Generates a frustum standing on the XZ plane, from y=0 to y=height.
 * A zero top radius produces a cone; equal radii a cylinder. Caps with a
 * zero radius are skipped.
 */
func GenerateFrustumConfig(bottomRadius, topRadius, height float32, segments uint32, name string) *metadata.GeometryConfig {
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if segments < 3 {
		core.LogWarn("A frustum needs at least 3 segments. Defaulting to %d.", defaultRadialSegments)
		segments = defaultRadialSegments
	}

	b := newGeometryBuilder(name)
	slope := bottomRadius - topRadius

	// side
	first := uint32(len(b.config.Vertices))
	for i := uint32(0); i <= segments; i++ {
		t := float32(i) / float32(segments)
		angle := t * math.K_PI_2
		c, s := math32.Cos(angle), math32.Sin(angle)
		normal := math.NewVec3(c*height, slope, s*height).Normalized()
		b.vertex(math.NewVec3(bottomRadius*c, 0, bottomRadius*s), normal, math.NewVec2(t, 0))
		b.vertex(math.NewVec3(topRadius*c, height, topRadius*s), normal, math.NewVec2(t, 1))
	}
	for i := uint32(0); i < segments; i++ {
		b0 := first + i*2
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		b.triangle(b0, t0, b1)
		if topRadius != 0 {
			b.triangle(b1, t0, t1)
		}
	}

	capDisc := func(radius, y float32, normal math.Vec3, top bool) {
		if radius == 0 {
			return
		}
		centre := b.vertex(math.NewVec3(0, y, 0), normal, math.NewVec2(0.5, 0.5))
		ring := uint32(len(b.config.Vertices))
		for i := uint32(0); i <= segments; i++ {
			angle := float32(i) / float32(segments) * math.K_PI_2
			c, s := math32.Cos(angle), math32.Sin(angle)
			b.vertex(math.NewVec3(radius*c, y, radius*s), normal, math.NewVec2(0.5+0.5*c, 0.5+0.5*s))
		}
		for i := uint32(0); i < segments; i++ {
			if top {
				b.triangle(centre, ring+i+1, ring+i)
			} else {
				b.triangle(centre, ring+i, ring+i+1)
			}
		}
	}
	capDisc(bottomRadius, 0, math.NewVec3(0, -1, 0), false)
	capDisc(topRadius, height, math.NewVec3Up(), true)

	return b.build()
}

/**
 * @brief Generates a UV sphere centred on the origin.
 */
func GenerateSphereConfig(radius float32, stacks, sectors uint32, name string) *metadata.GeometryConfig {
	if radius == 0 {
		core.LogWarn("Radius must be nonzero. Defaulting to one.")
		radius = 1.0
	}
	stacks = math.Clamp(stacks, 2, stacks)
	sectors = math.Clamp(sectors, 3, sectors)

	b := newGeometryBuilder(name)
	for s := uint32(0); s <= stacks; s++ {
		phi := float32(s) / float32(stacks) * math.K_PI
		for j := uint32(0); j <= sectors; j++ {
			theta := float32(j) / float32(sectors) * math.K_PI_2
			normal := math.NewVec3(math32.Sin(phi)*math32.Cos(theta), math32.Cos(phi), math32.Sin(phi)*math32.Sin(theta))
			b.vertex(normal.MulScalar(radius), normal, math.NewVec2(float32(j)/float32(sectors), 1-float32(s)/float32(stacks)))
		}
	}
	row := sectors + 1
	for s := uint32(0); s < stacks; s++ {
		for j := uint32(0); j < sectors; j++ {
			a := s*row + j
			below := a + row
			if s != 0 {
				b.triangle(a, a+1, below)
			}
			if s != stacks-1 {
				b.triangle(a+1, below+1, below)
			}
		}
	}
	return b.build()
}

/**
 * @brief Generates a torus around the Y axis.
 *
 * @param majorRadius Distance from the centre to the middle of the tube.
 * @param minorRadius Radius of the tube.
 */
func GenerateTorusConfig(majorRadius, minorRadius float32, segments, sides uint32, name string) *metadata.GeometryConfig {
	if majorRadius == 0 {
		majorRadius = 1.0
	}
	if minorRadius == 0 {
		minorRadius = 0.25
	}
	segments = math.Clamp(segments, 3, segments)
	sides = math.Clamp(sides, 3, sides)

	b := newGeometryBuilder(name)
	for i := uint32(0); i <= segments; i++ {
		u := float32(i) / float32(segments) * math.K_PI_2
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := uint32(0); j <= sides; j++ {
			v := float32(j) / float32(sides) * math.K_PI_2
			cv, sv := math32.Cos(v), math32.Sin(v)
			r := majorRadius + minorRadius*cv
			b.vertex(
				math.NewVec3(r*cu, minorRadius*sv, r*su),
				math.NewVec3(cv*cu, sv, cv*su),
				math.NewVec2(float32(i)/float32(segments), float32(j)/float32(sides)),
			)
		}
	}
	row := sides + 1
	for i := uint32(0); i < segments; i++ {
		for j := uint32(0); j < sides; j++ {
			a := i*row + j
			next := a + row
			b.triangle(a, a+1, next)
			b.triangle(next, a+1, next+1)
		}
	}
	return b.build()
}

/**
 * @brief Returns the unit sized geometry of a primitive shape.
 */
func GenerateShapeConfig(shape metadata.Shape) (*metadata.GeometryConfig, error) {
	name := shape.String()
	switch shape {
	case metadata.ShapeBox:
		return GenerateBoxConfig(1, 1, 1, 1, 1, name), nil
	case metadata.ShapePlane:
		return GeneratePlaneConfig(2, 2, 1, 1, 1, 1, name), nil
	case metadata.ShapeCylinder:
		return GenerateFrustumConfig(1, 1, 1, defaultRadialSegments, name), nil
	case metadata.ShapeTaperedCylinder:
		return GenerateFrustumConfig(1, 0.5, 1, defaultRadialSegments, name), nil
	case metadata.ShapeCone:
		return GenerateFrustumConfig(1, 0, 1, defaultRadialSegments, name), nil
	case metadata.ShapeSphere:
		return GenerateSphereConfig(1, defaultSphereStacks, defaultRadialSegments, name), nil
	case metadata.ShapeTorus:
		return GenerateTorusConfig(1, 0.25, defaultRadialSegments, defaultTorusSides, name), nil
	}
	return nil, unknownShape(shape)
}
