// Package render drives the raytracing pipeline: camera ray generation,
// nearest-hit search over the flattened world-object list, recursive
// shading, and the parallel full-frame render loop.
package render

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/lumen3d/lumen/rt/core"
	"github.com/lumen3d/lumen/rt/primitive"
)

// ObjectID identifies one flattened world object within a scene. IDs are
// minted at scene-build time and are stable for the scene's lifetime.
type ObjectID string

type sceneObject struct {
	id      ObjectID
	obj     primitive.WorldObject
	bounds  core.Bounds
	bounded bool
}

// Scene is the immutable render-ready form of a scene description: a baked
// camera, a light list and the flattened world-object list. All methods are
// safe for concurrent use once the scene is built.
type Scene struct {
	camera  Camera
	lights  []core.Light
	objects []sceneObject
	opts    RenderOptions
	log     Logger
	stats   *Stats
}

// NewScene assembles a scene from already-flattened world objects. The
// options are validated here; geometric validation belongs to the
// description layer.
func NewScene(camera Camera, lights []core.Light, objects []primitive.WorldObject, opts RenderOptions, log Logger) (*Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = NewNopLogger()
	}

	s := &Scene{
		camera: camera,
		lights: lights,
		opts:   opts,
		log:    log,
		stats:  NewStats(),
	}
	for _, obj := range objects {
		so := sceneObject{id: ObjectID(uuid.NewString()), obj: obj}
		so.bounds, so.bounded = obj.Bounds()
		s.objects = append(s.objects, so)
	}

	log.Debugf("scene: %d objects, %d lights, %dx%d", len(s.objects), len(lights), opts.Width, opts.Height)
	return s, nil
}

func (s *Scene) Camera() Camera         { return s.camera }
func (s *Scene) Options() RenderOptions { return s.opts }
func (s *Scene) Stats() *Stats          { return s.stats }
func (s *Scene) ObjectCount() int       { return len(s.objects) }

// ObjectIDs returns the ids of all world objects in flatten order.
func (s *Scene) ObjectIDs() []ObjectID {
	ids := make([]ObjectID, len(s.objects))
	for i := range s.objects {
		ids[i] = s.objects[i].id
	}
	return ids
}

// Raycast returns the nearest intersection along the ray, if any. maxDist
// <= 0 means unlimited. When two objects report exactly equal distances the
// earlier one in flatten order wins; scenes should not rely on that.
func (s *Scene) Raycast(ray core.Ray, maxDist float64) (primitive.Intersection, bool) {
	so, hit, ok := s.raycast(ray, maxDist)
	if ok {
		s.stats.CountHit(so.id)
	}
	return hit, ok
}

func (s *Scene) raycast(ray core.Ray, maxDist float64) (*sceneObject, primitive.Intersection, bool) {
	s.stats.CountRay(ray.Kind)

	var bestObj *sceneObject
	best := primitive.Intersection{Distance: math.Inf(1)}
	for i := range s.objects {
		so := &s.objects[i]
		if so.bounded && !so.bounds.IntersectedBy(ray) {
			continue
		}
		hit, ok := so.obj.Intersect(ray, maxDist)
		if !ok {
			continue
		}
		if hit.Distance < best.Distance {
			best = hit
			bestObj = so
		}
	}
	return bestObj, best, bestObj != nil
}

// Pick returns the id of the object visible at pixel (x, y), shooting a
// single centered primary ray. Intended for editor-style object selection.
func (s *Scene) Pick(x, y int) (ObjectID, bool) {
	if x < 0 || x >= s.opts.Width || y < 0 || y >= s.opts.Height {
		return "", false
	}
	nx, ny := screenPoint(x, y, 0.5, 0.5, s.opts.Width, s.opts.Height, s.camera.fov)
	so, _, ok := s.raycast(s.camera.RayThrough(nx, ny), 0)
	if !ok {
		return "", false
	}
	return so.id, true
}

func (s *Scene) checkIndex(index int) error {
	if index < 0 || index >= s.opts.Width*s.opts.Height {
		return fmt.Errorf("pixel index %d out of range [0, %d)", index, s.opts.Width*s.opts.Height)
	}
	return nil
}
