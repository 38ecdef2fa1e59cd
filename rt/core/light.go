package core

import (
	"github.com/go-gl/mathgl/mgl64"
)

// LightType enumerates the closed set of light kinds.
type LightType int

const (
	LightAmbient LightType = iota
	LightPoint
)

// Light is a scene light. Ambient lights contribute a flat term and ignore
// Position; point lights shine from a world-space position. Immutable once
// the scene is built.
type Light struct {
	Type      LightType
	Position  mgl64.Vec3
	Color     mgl64.Vec3
	Intensity float64
}

// NewAmbientLight returns a flat additive light.
func NewAmbientLight(color mgl64.Vec3, intensity float64) Light {
	return Light{Type: LightAmbient, Color: color, Intensity: intensity}
}

// NewPointLight returns a point light at a world-space position.
func NewPointLight(position, color mgl64.Vec3, intensity float64) Light {
	return Light{Type: LightPoint, Position: position, Color: color, Intensity: intensity}
}
