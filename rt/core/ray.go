package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// RayKind tags a ray with its role in the pipeline. Shadow rays relax the
// sidedness rules (an occluder blocks light regardless of facing) and
// secondary rays start biased off their surface.
type RayKind int

const (
	PrimaryRay RayKind = iota
	ShadowRay
	ReflectedRay
)

func (k RayKind) String() string {
	switch k {
	case PrimaryRay:
		return "primary"
	case ShadowRay:
		return "shadow"
	case ReflectedRay:
		return "reflected"
	}
	return "unknown"
}

// Ray is an origin and direction in some coordinate frame.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Kind      RayKind
}

// TransformBy maps the ray through m. The direction is deliberately not
// renormalized: a distance along the mapped ray then equals the same
// distance along the original ray, so local-space hits are directly
// comparable across primitives with different world transforms.
func (r Ray) TransformBy(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    TransformPoint(m, r.Origin),
		Direction: TransformDir(m, r.Direction),
		Kind:      r.Kind,
	}
}

// At returns the point at the given distance along the ray.
func (r Ray) At(distance float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}
