package primitive

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

func flattenOne(obj Object) WorldObject {
	objects := obj.FlattenToWorld(core.Identity())
	return objects[len(objects)-1]
}

func TestSphereIntersect(t *testing.T) {
	tests := []struct {
		name string
		side core.MaterialSide
		kind core.RayKind
		ray  core.Ray
		dist float64
		hit  bool
	}{
		{
			name: "Head on",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}},
			dist: 4,
			hit:  true,
		},
		{
			name: "Pointing away",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, 1}},
			hit:  false,
		},
		{
			name: "Miss",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 3, 5}, Direction: mgl64.Vec3{0, 0, -1}},
			hit:  false,
		},
		{
			name: "Front side from inside misses",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, -1}},
			side: core.SideFront,
			hit:  false,
		},
		{
			name: "Both sides from inside takes the exit",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, -1}},
			side: core.SideBoth,
			dist: 1,
			hit:  true,
		},
		{
			name: "Shadow ray from inside takes the exit",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 0}, Direction: mgl64.Vec3{0, 0, -1}, Kind: core.ShadowRay},
			side: core.SideFront,
			dist: 1,
			hit:  true,
		},
		{
			name: "Back side takes the far surface",
			ray:  core.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}},
			side: core.SideBack,
			dist: 6,
			hit:  true,
		},
	}

	for _, tc := range tests {
		sphere := &Sphere{Radius: 1, Material: core.Material{Side: tc.side}}
		hit, ok := flattenOne(sphere).Intersect(tc.ray, 0)
		if ok != tc.hit {
			t.Errorf("%s: expected hit=%v, got %v", tc.name, tc.hit, ok)
			continue
		}
		if ok && !mgl64.FloatEqualThreshold(hit.Distance, tc.dist, 1e-9) {
			t.Errorf("%s: expected distance %v, got %v", tc.name, tc.dist, hit.Distance)
		}
	}
}

func TestSphereIntersectMaxDist(t *testing.T) {
	sphere := flattenOne(&Sphere{Radius: 1})
	ray := core.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}, Kind: core.ShadowRay}

	if _, ok := sphere.Intersect(ray, 3); ok {
		t.Error("hit beyond maxDist should be rejected")
	}
	if _, ok := sphere.Intersect(ray, 4.5); !ok {
		t.Error("hit within maxDist should be accepted")
	}
}

func TestSphereIntersectTransformed(t *testing.T) {
	// Scaled by 2 and moved to (0,0,-5): surface reaches z=-3.
	sphere := &Sphere{
		Radius: 1,
		Transform: core.Identity().
			Scale(mgl64.Vec3{2, 2, 2}).
			Translate(mgl64.Vec3{0, 0, -5}),
	}
	ray := core.Ray{Origin: mgl64.Vec3{0, 0, 5}, Direction: mgl64.Vec3{0, 0, -1}}

	hit, ok := flattenOne(sphere).Intersect(ray, 0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !mgl64.FloatEqualThreshold(hit.Distance, 8, 1e-9) {
		t.Errorf("expected distance 8, got %v", hit.Distance)
	}
}

func TestSphereNormalAndUV(t *testing.T) {
	sphere := flattenOne(&Sphere{Radius: 2})

	n := sphere.NormalAt(mgl64.Vec3{0, 0, 2}, HitData{})
	if !n.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normal: got %v", n)
	}

	uv := sphere.UVAt(mgl64.Vec3{0, 0, 2}, n, HitData{})
	if !mgl64.FloatEqualThreshold(uv.X(), 0.5, 1e-12) || !mgl64.FloatEqualThreshold(uv.Y(), 0.5, 1e-12) {
		t.Errorf("equator facing +Z: expected (0.5, 0.5), got %v", uv)
	}

	uv = sphere.UVAt(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0}, HitData{})
	if !mgl64.FloatEqualThreshold(uv.Y(), 1, 1e-12) {
		t.Errorf("north pole: expected v=1, got %v", uv.Y())
	}
}

func TestSphereBoundsContainHits(t *testing.T) {
	sphere := &Sphere{
		Radius: 1,
		Transform: core.Identity().
			Scale(mgl64.Vec3{1, 3, 1}).
			Rotate(mgl64.Vec3{0, 0, 1}, 30).
			Translate(mgl64.Vec3{2, 1, -4}),
	}
	obj := flattenOne(sphere)
	bounds, bounded := obj.Bounds()
	if !bounded {
		t.Fatal("sphere must be bounded")
	}

	dirs := []mgl64.Vec3{
		{0, 0, -1},
		{0.3, 0.1, -1},
		{-0.4, 0.3, -1},
	}
	for _, d := range dirs {
		ray := core.Ray{Origin: mgl64.Vec3{2, 1, 5}, Direction: d.Normalize()}
		hit, ok := obj.Intersect(ray, 0)
		if !ok {
			continue
		}
		p := ray.At(hit.Distance)
		if !bounds.Contains(p, 1e-9) {
			t.Errorf("hit point %v escapes bounds %+v", p, bounds)
		}
		if !bounds.IntersectedBy(ray) {
			t.Errorf("bounds reject a ray that hits the surface: dir %v", d)
		}
	}

	if math.IsInf(bounds.Min.X(), 0) {
		t.Error("bounds should be finite")
	}
}
