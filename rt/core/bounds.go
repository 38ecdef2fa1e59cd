package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned box in world space.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoundsFromTransform projects the eight corners of the local-space box
// [min, max] through the world transform and takes the per-axis extrema.
// The result is conservative for rotated boxes.
func BoundsFromTransform(min, max mgl64.Vec3, t *Transform) Bounds {
	corners := [8]mgl64.Vec3{
		{min.X(), min.Y(), min.Z()},
		{max.X(), min.Y(), min.Z()},
		{min.X(), max.Y(), min.Z()},
		{max.X(), max.Y(), min.Z()},
		{min.X(), min.Y(), max.Z()},
		{max.X(), min.Y(), max.Z()},
		{min.X(), max.Y(), max.Z()},
		{max.X(), max.Y(), max.Z()},
	}

	m := t.Matrix()
	inf := math.Inf(1)
	wMin := mgl64.Vec3{inf, inf, inf}
	wMax := mgl64.Vec3{-inf, -inf, -inf}
	for _, c := range corners {
		wc := TransformPoint(m, c)
		for i := 0; i < 3; i++ {
			wMin[i] = math.Min(wMin[i], wc[i])
			wMax[i] = math.Max(wMax[i], wc[i])
		}
	}
	return Bounds{Min: wMin, Max: wMax}
}

// Contains reports whether p lies inside the box, expanded by tol per axis.
func (b Bounds) Contains(p mgl64.Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-tol || p[i] > b.Max[i]+tol {
			return false
		}
	}
	return true
}

// IntersectedBy reports whether the ray passes through the box. This is the
// advisory rejection test: a false result proves a miss, a true result says
// nothing about the primitive inside.
func (b Bounds) IntersectedBy(r Ray) bool {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for i := 0; i < 3; i++ {
		invD := 1 / r.Direction[i]
		t0 := (b.Min[i] - r.Origin[i]) * invD
		t1 := (b.Max[i] - r.Origin[i]) * invD
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return tMax >= 0
}
