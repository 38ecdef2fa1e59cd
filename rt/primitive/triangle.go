package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Triangle is a local-space triangle. Normals and UVs are optional: absent
// normals fall back to the flat face normal (no smooth shading), absent UVs
// to zero.
type Triangle struct {
	Vertices  [3]mgl64.Vec3
	Normals   *[3]mgl64.Vec3
	UVs       *[3]mgl64.Vec2
	Transform *core.Transform
	Material  core.Material
	Children  []Object
}

// FaceNormal is the cross product of the first two edges, normalized.
func FaceNormal(vertices [3]mgl64.Vec3) mgl64.Vec3 {
	edge1 := vertices[1].Sub(vertices[0])
	edge2 := vertices[2].Sub(vertices[0])
	return edge1.Cross(edge2).Normalize()
}

func (t *Triangle) FlattenToWorld(parent *core.Transform) []WorldObject {
	world := worldTransform(parent, t.Transform)
	objects := flattenChildren(t.Children, world)

	normals := [3]mgl64.Vec3{}
	if t.Normals != nil {
		normals = *t.Normals
	} else {
		flat := FaceNormal(t.Vertices)
		normals = [3]mgl64.Vec3{flat, flat, flat}
	}

	uvs := [3]mgl64.Vec2{}
	if t.UVs != nil {
		uvs = *t.UVs
	}

	min := t.Vertices[0]
	max := t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		for i := 0; i < 3; i++ {
			min[i] = math.Min(min[i], v[i])
			max[i] = math.Max(max[i], v[i])
		}
	}

	return append(objects, &worldTriangle{
		vertices:  t.Vertices,
		normals:   normals,
		uvs:       uvs,
		transform: world,
		material:  t.Material,
		bounds:    core.BoundsFromTransform(min, max, world),
	})
}

type worldTriangle struct {
	vertices  [3]mgl64.Vec3
	normals   [3]mgl64.Vec3
	uvs       [3]mgl64.Vec2
	transform *core.Transform
	material  core.Material
	bounds    core.Bounds
}

func (t *worldTriangle) Transform() *core.Transform  { return t.transform }
func (t *worldTriangle) Material() core.Material     { return t.material }
func (t *worldTriangle) Bounds() (core.Bounds, bool) { return t.bounds, true }

// Intersect is Möller–Trumbore. The determinant threshold is one-sided for
// front/back materials and symmetric for both-sided materials and shadow
// rays, so a degenerate (near-parallel) configuration is always a miss.
func (t *worldTriangle) Intersect(ray core.Ray, maxDist float64) (Intersection, bool) {
	local := ray.TransformBy(t.transform.Inverse())

	edge1 := t.vertices[1].Sub(t.vertices[0])
	edge2 := t.vertices[2].Sub(t.vertices[0])
	pVec := local.Direction.Cross(edge2)
	det := edge1.Dot(pVec)

	rejected := false
	switch {
	case ray.Kind == core.ShadowRay || t.material.Side == core.SideBoth:
		rejected = math.Abs(det) < core.Epsilon
	case t.material.Side == core.SideFront:
		rejected = det < core.Epsilon
	default: // SideBack
		rejected = -det < core.Epsilon
	}
	if rejected {
		return Intersection{}, false
	}

	tVec := local.Origin.Sub(t.vertices[0])
	u := tVec.Dot(pVec) / det
	if u < 0 || u > 1 {
		return Intersection{}, false
	}

	qVec := tVec.Cross(edge1)
	v := local.Direction.Dot(qVec) / det
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}

	d := edge2.Dot(qVec) / det
	if !acceptDistance(d, maxDist) {
		return Intersection{}, false
	}

	return Intersection{
		Object:   t,
		Distance: d,
		Data:     HitData{U: u, V: v, W: 1 - u - v},
	}, true
}

// NormalAt interpolates the vertex normals with the barycentric weights
// recorded at intersection time.
func (t *worldTriangle) NormalAt(_ mgl64.Vec3, data HitData) mgl64.Vec3 {
	n := t.normals[0].Mul(data.W).
		Add(t.normals[1].Mul(data.U)).
		Add(t.normals[2].Mul(data.V))
	return n.Normalize()
}

func (t *worldTriangle) UVAt(_, _ mgl64.Vec3, data HitData) mgl64.Vec2 {
	return mgl64.Vec2{
		t.uvs[0].X()*data.W + t.uvs[1].X()*data.U + t.uvs[2].X()*data.V,
		t.uvs[0].Y()*data.W + t.uvs[1].Y()*data.U + t.uvs[2].Y()*data.V,
	}
}
