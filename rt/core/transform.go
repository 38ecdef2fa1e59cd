package core

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is an invertible affine map from local space to world space.
// The inverse and inverse-transpose are computed on first use and memoized;
// builder ops return fresh transforms with empty caches, so a cached value
// can never outlive the matrix it was derived from. Safe for concurrent
// readers once built.
type Transform struct {
	mat mgl64.Mat4

	invOnce sync.Once
	inv     mgl64.Mat4

	invTOnce sync.Once
	invT     mgl64.Mat4
}

// NewTransform wraps a forward matrix. The matrix must be invertible;
// degenerate matrices are a caller error caught at scene-build time.
func NewTransform(mat mgl64.Mat4) *Transform {
	return &Transform{mat: mat}
}

// Identity returns the identity transform.
func Identity() *Transform {
	return NewTransform(mgl64.Ident4())
}

// Matrix returns the forward (local-to-world) matrix.
func (t *Transform) Matrix() mgl64.Mat4 {
	return t.mat
}

// Inverse returns the world-to-local matrix, computed once.
func (t *Transform) Inverse() mgl64.Mat4 {
	t.invOnce.Do(func() {
		t.inv = t.mat.Inv()
	})
	return t.inv
}

// InverseTranspose returns transpose(inverse(m)), the map that keeps surface
// normals perpendicular under non-uniform scale.
func (t *Transform) InverseTranspose() mgl64.Mat4 {
	t.invTOnce.Do(func() {
		t.invT = t.Inverse().Transpose()
	})
	return t.invT
}

// Mul composes t with o: the result applies o first, then t.
func (t *Transform) Mul(o *Transform) *Transform {
	return NewTransform(t.mat.Mul4(o.mat))
}

// Translate left-composes a translation by v.
func (t *Transform) Translate(v mgl64.Vec3) *Transform {
	return NewTransform(mgl64.Translate3D(v.X(), v.Y(), v.Z()).Mul4(t.mat))
}

// Rotate left-composes a rotation of angle degrees about axis.
func (t *Transform) Rotate(axis mgl64.Vec3, angle float64) *Transform {
	return NewTransform(mgl64.HomogRotate3D(mgl64.DegToRad(angle), axis.Normalize()).Mul4(t.mat))
}

// Scale left-composes a non-uniform scale by v.
func (t *Transform) Scale(v mgl64.Vec3) *Transform {
	return NewTransform(mgl64.Scale3D(v.X(), v.Y(), v.Z()).Mul4(t.mat))
}

// Position is the world-space image of the local origin.
func (t *Transform) Position() mgl64.Vec3 {
	return TransformPoint(t.mat, mgl64.Vec3{})
}
