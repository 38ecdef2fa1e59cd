package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Sphere is a local-space sphere of the given radius centered at the origin.
type Sphere struct {
	Radius    float64
	Transform *core.Transform
	Material  core.Material
	Children  []Object
}

func (s *Sphere) FlattenToWorld(parent *core.Transform) []WorldObject {
	world := worldTransform(parent, s.Transform)
	objects := flattenChildren(s.Children, world)

	r := s.Radius
	return append(objects, &worldSphere{
		radius:    r,
		transform: world,
		material:  s.Material,
		bounds:    core.BoundsFromTransform(mgl64.Vec3{-r, -r, -r}, mgl64.Vec3{r, r, r}, world),
	})
}

type worldSphere struct {
	radius    float64
	transform *core.Transform
	material  core.Material
	bounds    core.Bounds
}

func (s *worldSphere) Transform() *core.Transform  { return s.transform }
func (s *worldSphere) Material() core.Material     { return s.material }
func (s *worldSphere) Bounds() (core.Bounds, bool) { return s.bounds, true }

func (s *worldSphere) Intersect(ray core.Ray, maxDist float64) (Intersection, bool) {
	local := ray.TransformBy(s.transform.Inverse())

	// |O + tD|^2 = r^2, written to tolerate non-unit directions.
	a := local.Direction.Dot(local.Direction)
	b := 2 * local.Origin.Dot(local.Direction)
	c := local.Origin.Dot(local.Origin) - s.radius*s.radius

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return Intersection{}, false
	}

	d := pickDistance(t0, t1, s.material.Side, ray.Kind)
	if !acceptDistance(d, maxDist) {
		return Intersection{}, false
	}
	return Intersection{Object: s, Distance: d}, true
}

func (s *worldSphere) NormalAt(localPoint mgl64.Vec3, _ HitData) mgl64.Vec3 {
	return localPoint.Normalize()
}

// UVAt is the usual spherical unwrap: longitude from atan2, latitude from
// asin, both remapped to [0, 1].
func (s *worldSphere) UVAt(localPoint, _ mgl64.Vec3, _ HitData) mgl64.Vec2 {
	p := localPoint.Mul(1 / s.radius)
	return mgl64.Vec2{
		math.Atan2(p.X(), p.Z())/(2*math.Pi) + 0.5,
		math.Asin(mgl64.Clamp(p.Y(), -1, 1))/math.Pi + 0.5,
	}
}
