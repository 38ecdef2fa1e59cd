// Package primitive implements the closed set of renderable shapes: sphere,
// cube, plane and triangle. Shapes exist in two forms: tree nodes (Object),
// which carry a local transform and children and only know how to flatten
// themselves, and world objects (WorldObject), the transform-baked flat
// representation the intersection and shading stages operate on.
package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// Object is a node in the local-space scene tree. Child transforms are
// interpreted relative to the parent. The tree is only a construction-time
// structure; rendering uses the flat output of FlattenToWorld.
type Object interface {
	// FlattenToWorld appends world objects depth-first, children before
	// self, composing parent with the node's local transform.
	FlattenToWorld(parent *core.Transform) []WorldObject
}

// WorldObject is a flattened primitive: local geometry plus a single baked
// world transform and a material. Immutable once built.
type WorldObject interface {
	Transform() *core.Transform
	Material() core.Material

	// Intersect tests the world-space ray against the primitive and
	// returns the nearest acceptable hit distance along it. maxDist <= 0
	// means unlimited; a positive maxDist rejects farther hits (used by
	// shadow tests).
	Intersect(ray core.Ray, maxDist float64) (Intersection, bool)

	// NormalAt returns the local-space surface normal at a local-space
	// hit point.
	NormalAt(localPoint mgl64.Vec3, data HitData) mgl64.Vec3

	// UVAt returns the surface UV at a local-space hit point.
	UVAt(localPoint, localNormal mgl64.Vec3, data HitData) mgl64.Vec2

	// Bounds returns the world-space bounding box, or ok=false for
	// unbounded primitives (planes).
	Bounds() (bounds core.Bounds, ok bool)
}

// HitData carries primitive-specific intermediates from the intersection
// test to the later normal/UV lookup, so nothing is recomputed. Only
// triangles populate it (barycentric weights).
type HitData struct {
	U, V, W float64
}

// Intersection is a hit on a world object at a distance along the ray.
type Intersection struct {
	Object   WorldObject
	Distance float64
	Data     HitData
}

// worldTransform composes the ambient parent transform with an optional
// local one. A nil local transform means identity.
func worldTransform(parent, local *core.Transform) *core.Transform {
	if local == nil {
		return parent
	}
	return parent.Mul(local)
}

func flattenChildren(children []Object, world *core.Transform) []WorldObject {
	var objects []WorldObject
	for _, child := range children {
		objects = append(objects, child.FlattenToWorld(world)...)
	}
	return objects
}

// pickDistance applies the shared sidedness rule for primitives with an
// entry and an exit distance (sphere, cube). Shadow rays and both-sided
// materials take the exit when the origin is inside; front-sided materials
// take the entry, back-sided the exit.
func pickDistance(t0, t1 float64, side core.MaterialSide, kind core.RayKind) float64 {
	if kind == core.ShadowRay || side == core.SideBoth {
		if t0 < 0 {
			return t1
		}
		return t0
	}
	if side == core.SideFront {
		return t0
	}
	return t1
}

// acceptDistance filters the selected distance: hits behind the origin,
// beyond maxDist, or numerically broken (NaN/Inf from degenerate slab
// divisions) all resolve to "no hit".
func acceptDistance(d, maxDist float64) bool {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return false
	}
	return maxDist <= 0 || d <= maxDist
}
