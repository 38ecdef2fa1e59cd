package core

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/draw"
)

// Texture yields a color for a surface UV coordinate.
type Texture interface {
	At(uv mgl64.Vec2) mgl64.Vec3
}

// ImageTexture samples a backing image with wrap-around UVs. V grows upward
// while image rows grow downward, so sampling flips the vertical axis.
type ImageTexture struct {
	img *image.NRGBA
}

// NewImageTexture copies src into a normalized NRGBA grid so sampling never
// pays the dynamic-dispatch cost of an arbitrary image.Image.
func NewImageTexture(src image.Image) *ImageTexture {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
	return &ImageTexture{img: dst}
}

func (t *ImageTexture) At(uv mgl64.Vec2) mgl64.Vec3 {
	w := t.img.Rect.Dx()
	h := t.img.Rect.Dy()
	if w == 0 || h == 0 {
		return mgl64.Vec3{}
	}
	u := wrap01(uv.X())
	v := wrap01(uv.Y())
	x := int(u * float64(w))
	if x > w-1 {
		x = w - 1
	}
	y := int((1 - v) * float64(h))
	if y > h-1 {
		y = h - 1
	}
	c := t.img.NRGBAAt(x, y)
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func wrap01(x float64) float64 {
	return x - math.Floor(x)
}
