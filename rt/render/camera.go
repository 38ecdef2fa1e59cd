package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Camera holds a baked camera-to-world matrix. Primary rays leave the camera
// position through a virtual screen one unit down the -Z camera axis.
type Camera struct {
	fov        float64
	position   mgl64.Vec3
	camToWorld mgl64.Mat4
}

// NewCamera bakes the camera-to-world rotation from a look-at view matrix.
// Only directions (w = 0) are ever mapped through it, so the transposed view
// matrix serves as the inverse rotation.
func NewCamera(fov float64, eye, target, up mgl64.Vec3) Camera {
	return Camera{
		fov:        fov,
		position:   eye,
		camToWorld: mgl64.LookAtV(eye, target, up).Transpose(),
	}
}

func (c Camera) Fov() float64         { return c.fov }
func (c Camera) Position() mgl64.Vec3 { return c.position }

// RayThrough builds a world-space primary ray through the fov-scaled NDC
// point (x, y).
func (c Camera) RayThrough(x, y float64) core.Ray {
	local := mgl64.Vec3{x, y, -1}.Normalize()
	dir := core.TransformDir(c.camToWorld, local).Normalize()
	return core.Ray{Origin: c.position, Direction: dir, Kind: core.PrimaryRay}
}

// screenPoint maps a pixel and an intra-pixel offset (dx, dy in [0,1)) to
// fov-scaled NDC. The shorter screen axis is shrunk by the aspect ratio, so
// the field of view spans the longer axis and pixels stay square.
func screenPoint(px, py int, dx, dy float64, width, height int, fov float64) (x, y float64) {
	w := float64(width)
	h := float64(height)
	aspect := w / h
	scale := math.Tan(mgl64.DegToRad(fov) / 2)

	x = ((float64(px)+dx)/w)*2 - 1
	y = 1 - ((float64(py)+dy)/h)*2
	if width < height {
		x *= aspect
	} else {
		y /= aspect
	}
	return x * scale, y * scale
}
