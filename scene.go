package lumen

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
	"github.com/lumen3d/lumen/rt/primitive"
	"github.com/lumen3d/lumen/rt/render"
)

// SceneDef is the already-deserialized scene description consumed by
// BuildScene. How it gets populated (file format, parser) is the host's
// concern; geometric validation happens here, before any rendering.
type SceneDef struct {
	Camera  CameraDef
	Lights  []LightDef
	Objects []ObjectDef
	Options render.RenderOptions

	// Logger receives build and render diagnostics. Nil means silent.
	Logger render.Logger
}

// CameraDef positions the camera. A zero Up defaults to +Y, a zero Fov to
// 65 degrees.
type CameraDef struct {
	Fov      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

// LightDef defines a light instantiation. Transform ops place point lights;
// ambient lights ignore them. A zero Intensity defaults to 1.
type LightDef struct {
	Type      core.LightType
	Color     mgl64.Vec3
	Intensity float64
	Transform []TransformOp
}

// Shape type tags for ObjectDef.
const (
	ShapeSphere   = "sphere"
	ShapeCube     = "cube"
	ShapePlane    = "plane"
	ShapeTriangle = "triangle"
)

// ObjectDef defines one node of the primitive tree. Only the fields for the
// named shape are read: Radius for spheres, Size for cubes, Normal for
// planes, Vertices (plus optional Normals/UVs) for triangles. Children are
// placed relative to this node's transform.
type ObjectDef struct {
	Type string

	Radius   float64
	Size     float64
	Normal   mgl64.Vec3
	Vertices [3]mgl64.Vec3
	Normals  *[3]mgl64.Vec3
	UVs      *[3]mgl64.Vec2

	Transform []TransformOp
	Material  core.Material
	Children  []ObjectDef
}

// TransformOp is one step of an ordered transform sequence; exactly one
// field must be set. Ops apply in slice order, each left-composed onto the
// previous result.
type TransformOp struct {
	Translate *mgl64.Vec3
	Rotate    *RotateOp
	Scale     *mgl64.Vec3
}

// RotateOp rotates by Angle degrees about Axis.
type RotateOp struct {
	Axis  mgl64.Vec3
	Angle float64
}

// BuildScene validates the description, builds the primitive tree, flattens
// it into world space and bakes the camera. Everything that can fail does
// so here; the returned scene renders without further validation.
func BuildScene(def SceneDef) (*render.Scene, error) {
	opts := def.Options
	if opts == (render.RenderOptions{}) {
		opts = render.DefaultRenderOptions()
	}

	camera, err := buildCamera(def.Camera)
	if err != nil {
		return nil, err
	}

	lights := make([]core.Light, 0, len(def.Lights))
	for i, ld := range def.Lights {
		light, err := buildLight(ld)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lights = append(lights, light)
	}

	world := core.Identity()
	var objects []primitive.WorldObject
	for i, od := range def.Objects {
		node, err := buildObject(od)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects = append(objects, node.FlattenToWorld(world)...)
	}

	return render.NewScene(camera, lights, objects, opts, def.Logger)
}

func buildCamera(def CameraDef) (render.Camera, error) {
	fov := def.Fov
	if fov == 0 {
		fov = 65
	}
	if fov <= 0 || fov >= 180 {
		return render.Camera{}, fmt.Errorf("camera: fov %g degrees out of range (0, 180)", fov)
	}

	up := def.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	if def.Position == def.Target {
		return render.Camera{}, fmt.Errorf("camera: position and target coincide at %v", def.Position)
	}
	return render.NewCamera(fov, def.Position, def.Target, up.Normalize()), nil
}

func buildLight(def LightDef) (core.Light, error) {
	intensity := def.Intensity
	if intensity == 0 {
		intensity = 1
	}
	if intensity < 0 {
		return core.Light{}, fmt.Errorf("intensity %g must not be negative", intensity)
	}

	switch def.Type {
	case core.LightAmbient:
		return core.NewAmbientLight(def.Color, intensity), nil
	case core.LightPoint:
		t, err := buildTransform(def.Transform)
		if err != nil {
			return core.Light{}, err
		}
		return core.NewPointLight(t.Position(), def.Color, intensity), nil
	default:
		return core.Light{}, fmt.Errorf("unknown light type %d", def.Type)
	}
}

func buildObject(def ObjectDef) (primitive.Object, error) {
	t, err := buildTransform(def.Transform)
	if err != nil {
		return nil, err
	}

	children := make([]primitive.Object, 0, len(def.Children))
	for i, cd := range def.Children {
		child, err := buildObject(cd)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children = append(children, child)
	}

	switch def.Type {
	case ShapeSphere:
		if def.Radius <= 0 {
			return nil, fmt.Errorf("sphere: radius %g must be positive", def.Radius)
		}
		return &primitive.Sphere{Radius: def.Radius, Transform: t, Material: def.Material, Children: children}, nil

	case ShapeCube:
		if def.Size <= 0 {
			return nil, fmt.Errorf("cube: size %g must be positive", def.Size)
		}
		return &primitive.Cube{Size: def.Size, Transform: t, Material: def.Material, Children: children}, nil

	case ShapePlane:
		normal := def.Normal
		if normal.Len() == 0 {
			normal = mgl64.Vec3{0, 1, 0}
		}
		return &primitive.Plane{Normal: normal, Transform: t, Material: def.Material, Children: children}, nil

	case ShapeTriangle:
		edge1 := def.Vertices[1].Sub(def.Vertices[0])
		edge2 := def.Vertices[2].Sub(def.Vertices[0])
		if edge1.Cross(edge2).Len() < core.Epsilon {
			return nil, fmt.Errorf("triangle: vertices %v are degenerate", def.Vertices)
		}
		return &primitive.Triangle{
			Vertices:  def.Vertices,
			Normals:   def.Normals,
			UVs:       def.UVs,
			Transform: t,
			Material:  def.Material,
			Children:  children,
		}, nil

	default:
		return nil, fmt.Errorf("unknown shape type %q", def.Type)
	}
}

// buildTransform folds an op sequence onto identity. Degenerate scales are
// rejected: the render stage requires every world transform to stay
// invertible.
func buildTransform(ops []TransformOp) (*core.Transform, error) {
	t := core.Identity()
	for i, op := range ops {
		switch {
		case op.Translate != nil:
			t = t.Translate(*op.Translate)
		case op.Rotate != nil:
			if op.Rotate.Axis.Len() == 0 {
				return nil, fmt.Errorf("transform op %d: rotation axis must not be zero", i)
			}
			t = t.Rotate(op.Rotate.Axis, op.Rotate.Angle)
		case op.Scale != nil:
			s := *op.Scale
			if s.X() == 0 || s.Y() == 0 || s.Z() == 0 {
				return nil, fmt.Errorf("transform op %d: scale %v has a zero component", i, s)
			}
			t = t.Scale(s)
		default:
			return nil, fmt.Errorf("transform op %d: no operation set", i)
		}
	}
	return t, nil
}
