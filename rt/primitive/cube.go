package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Cube is a local-space axis-aligned cube of the given edge length centered
// at the origin.
type Cube struct {
	Size      float64
	Transform *core.Transform
	Material  core.Material
	Children  []Object
}

func (c *Cube) FlattenToWorld(parent *core.Transform) []WorldObject {
	world := worldTransform(parent, c.Transform)
	objects := flattenChildren(c.Children, world)

	half := c.Size / 2
	return append(objects, &worldCube{
		size:      c.Size,
		transform: world,
		material:  c.Material,
		bounds:    core.BoundsFromTransform(mgl64.Vec3{-half, -half, -half}, mgl64.Vec3{half, half, half}, world),
	})
}

type worldCube struct {
	size      float64
	transform *core.Transform
	material  core.Material
	bounds    core.Bounds
}

func (c *worldCube) Transform() *core.Transform  { return c.transform }
func (c *worldCube) Material() core.Material     { return c.material }
func (c *worldCube) Bounds() (core.Bounds, bool) { return c.bounds, true }

// Intersect runs the slab test. Using the direction sign to order each
// slab's entry/exit avoids branching on the sign; division by a zero
// component yields infinities that fall out of the interval comparisons,
// and any residual NaN is rejected by acceptDistance.
func (c *worldCube) Intersect(ray core.Ray, maxDist float64) (Intersection, bool) {
	local := ray.TransformBy(c.transform.Inverse())
	half := c.size / 2

	sx := math.Copysign(1, local.Direction.X())
	sy := math.Copysign(1, local.Direction.Y())
	sz := math.Copysign(1, local.Direction.Z())

	d0 := (-local.Origin.X() - sx*half) / local.Direction.X()
	d1 := (-local.Origin.X() + sx*half) / local.Direction.X()

	dyMin := (-local.Origin.Y() - sy*half) / local.Direction.Y()
	dyMax := (-local.Origin.Y() + sy*half) / local.Direction.Y()
	if dyMax < d0 || d1 < dyMin {
		return Intersection{}, false
	}
	if dyMin > d0 {
		d0 = dyMin
	}
	if dyMax < d1 {
		d1 = dyMax
	}

	dzMin := (-local.Origin.Z() - sz*half) / local.Direction.Z()
	dzMax := (-local.Origin.Z() + sz*half) / local.Direction.Z()
	if dzMax < d0 || d1 < dzMin {
		return Intersection{}, false
	}
	if dzMin > d0 {
		d0 = dzMin
	}
	if dzMax < d1 {
		d1 = dzMax
	}

	d := pickDistance(d0, d1, c.material.Side, ray.Kind)
	if !acceptDistance(d, maxDist) {
		return Intersection{}, false
	}
	return Intersection{Object: c, Distance: d}, true
}

// NormalAt picks the axis with the largest absolute coordinate, signed by
// that coordinate.
func (c *worldCube) NormalAt(localPoint mgl64.Vec3, _ HitData) mgl64.Vec3 {
	ax := math.Abs(localPoint.X())
	ay := math.Abs(localPoint.Y())
	az := math.Abs(localPoint.Z())

	switch {
	case ax > ay && ax > az:
		return mgl64.Vec3{math.Copysign(1, localPoint.X()), 0, 0}
	case ay > az:
		return mgl64.Vec3{0, math.Copysign(1, localPoint.Y()), 0}
	default:
		return mgl64.Vec3{0, 0, math.Copysign(1, localPoint.Z())}
	}
}

// UVAt unwraps the two axes orthogonal to the face normal into [0, 1].
func (c *worldCube) UVAt(localPoint, localNormal mgl64.Vec3, _ HitData) mgl64.Vec2 {
	p := localPoint.Mul(1 / c.size)

	nx := math.Abs(localNormal.X())
	ny := math.Abs(localNormal.Y())
	nz := math.Abs(localNormal.Z())

	switch {
	case nx > ny && nx > nz:
		return mgl64.Vec2{p.Y() + 0.5, p.Z() + 0.5}
	case ny > nz:
		return mgl64.Vec2{p.X() + 0.5, p.Z() + 0.5}
	default:
		return mgl64.Vec2{p.X() + 0.5, p.Y() + 0.5}
	}
}
