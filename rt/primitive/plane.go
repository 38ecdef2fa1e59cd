package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Plane is an infinite local-space plane through the origin with the given
// unit normal (defaults to +Y when zero).
type Plane struct {
	Normal    mgl64.Vec3
	Transform *core.Transform
	Material  core.Material
	Children  []Object
}

func (p *Plane) FlattenToWorld(parent *core.Transform) []WorldObject {
	world := worldTransform(parent, p.Transform)
	objects := flattenChildren(p.Children, world)

	normal := p.Normal
	if normal.Len() == 0 {
		normal = mgl64.Vec3{0, 1, 0}
	}
	return append(objects, &worldPlane{
		normal:    normal.Normalize(),
		transform: world,
		material:  p.Material,
	})
}

type worldPlane struct {
	normal    mgl64.Vec3
	transform *core.Transform
	material  core.Material
}

func (p *worldPlane) Transform() *core.Transform { return p.transform }
func (p *worldPlane) Material() core.Material    { return p.material }

// Bounds reports none: planes are unbounded and always tested.
func (p *worldPlane) Bounds() (core.Bounds, bool) { return core.Bounds{}, false }

func (p *worldPlane) Intersect(ray core.Ray, maxDist float64) (Intersection, bool) {
	local := ray.TransformBy(p.transform.Inverse())

	facing := p.normal.Mul(-1)
	denom := facing.Dot(local.Direction)

	// Sidedness decides which approach direction counts; a near-zero
	// denominator (ray parallel to the plane) is never a hit.
	switch {
	case ray.Kind == core.ShadowRay || p.material.Side == core.SideBoth:
		if math.Abs(denom) < core.Epsilon {
			return Intersection{}, false
		}
	case p.material.Side == core.SideFront:
		if denom < core.Epsilon {
			return Intersection{}, false
		}
	default: // SideBack
		if -denom < core.Epsilon {
			return Intersection{}, false
		}
	}

	d := local.Origin.Mul(-1).Dot(facing) / denom
	if !acceptDistance(d, maxDist) {
		return Intersection{}, false
	}
	return Intersection{Object: p, Distance: d}, true
}

func (p *worldPlane) NormalAt(_ mgl64.Vec3, _ HitData) mgl64.Vec3 {
	return p.normal
}

// UVAt projects the hit point onto a tangent basis of the plane.
func (p *worldPlane) UVAt(localPoint, _ mgl64.Vec3, _ HitData) mgl64.Vec2 {
	axis := mgl64.Vec3{0, 1, 0}
	if math.Abs(p.normal.Y()) > 0.9 {
		axis = mgl64.Vec3{1, 0, 0}
	}
	tangent := p.normal.Cross(axis).Normalize()
	bitangent := p.normal.Cross(tangent)
	return mgl64.Vec2{localPoint.Dot(tangent), localPoint.Dot(bitangent)}
}
