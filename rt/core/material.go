package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MaterialSide selects which geometric face(s) of a surface register a hit.
type MaterialSide int

const (
	SideFront MaterialSide = iota
	SideBack
	SideBoth
)

// Material holds the Phong shading parameters of a surface.
type Material struct {
	Color        mgl64.Vec3
	Emissive     mgl64.Vec3
	Specular     mgl64.Vec3
	Shininess    float64
	Reflectivity float64
	Side         MaterialSide
	Texture      Texture
}

// DefaultMaterial is a matte white front-sided surface.
func DefaultMaterial() Material {
	return Material{
		Color:     mgl64.Vec3{1, 1, 1},
		Specular:  mgl64.Vec3{1, 1, 1},
		Shininess: 30,
		Side:      SideFront,
	}
}

// ColorAt returns the diffuse color at the given surface UV. A texture
// modulates the base color channelwise.
func (m Material) ColorAt(uv mgl64.Vec2) mgl64.Vec3 {
	if m.Texture == nil {
		return m.Color
	}
	return MulElem(m.Color, m.Texture.At(uv))
}
