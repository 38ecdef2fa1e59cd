package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the 64-bit machine epsilon, used as the degeneracy threshold in
// the plane and triangle intersection tests.
const Epsilon = 2.220446049250313e-16

// Bias offsets secondary-ray origins along the surface normal so shadow and
// reflection rays never re-hit the surface they start on.
const Bias = 1e-10

// Gamma is the display gamma applied to final pixel colors.
const Gamma = 2.2

// SolveQuadratic returns the real roots of a*x^2 + b*x + c = 0 with t0 <= t1.
// It uses the cancellation-free form q = -(b + sign(b)*sqrt(disc))/2, then
// t0 = q/a, t1 = c/q. A vanishing leading coefficient (zero-length ray
// direction) reports no roots.
func SolveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	if math.Abs(a) < Epsilon {
		return 0, 0, false
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}
	var q float64
	if b < 0 {
		q = -(b - math.Sqrt(disc)) / 2
	} else {
		q = -(b + math.Sqrt(disc)) / 2
	}
	if q == 0 {
		// b == 0 and disc == 0, so both roots collapse at the origin.
		return 0, 0, true
	}
	t0, t1 = q/a, c/q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// Reflect mirrors direction d about the unit normal n.
func Reflect(d, n mgl64.Vec3) mgl64.Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// MulElem multiplies two vectors componentwise.
func MulElem(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// Clamp01 clamps every channel to [0, 1].
func Clamp01(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(c.X(), 0, 1),
		mgl64.Clamp(c.Y(), 0, 1),
		mgl64.Clamp(c.Z(), 0, 1),
	}
}

// GammaCorrect raises every channel to 1/gamma. Inputs are expected to be
// clamped to [0, 1] first.
func GammaCorrect(c mgl64.Vec3, gamma float64) mgl64.Vec3 {
	inv := 1 / gamma
	return mgl64.Vec3{
		math.Pow(c.X(), inv),
		math.Pow(c.Y(), inv),
		math.Pow(c.Z(), inv),
	}
}

// TransformPoint maps p through m with an implicit w = 1.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDir maps v through m with an implicit w = 0, ignoring translation.
func TransformDir(m mgl64.Mat4, v mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(v.Vec4(0)).Vec3()
}
