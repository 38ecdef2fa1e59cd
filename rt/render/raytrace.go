package render

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
)

// colorData is the unfinalized result of tracing one ray: the lit surface
// color, the emissive term, and the ambient-occlusion factor. Occlusion is
// kept separate so a full-frame render can blur it across pixels before
// applying it.
type colorData struct {
	color    mgl64.Vec3
	emissive mgl64.Vec3
	ao       float64
}

// finalize folds occlusion into the lit color, clamps, and gamma corrects.
func (c colorData) finalize() mgl64.Vec3 {
	out := c.emissive.Add(c.color.Mul(c.ao))
	return core.GammaCorrect(core.Clamp01(out), core.Gamma)
}

// RenderPixel traces the pixel at the given linear index and returns its
// final gamma-corrected, clamped color. The sample RNG is seeded from the
// index, so the result is a pure function of scene and index. The index
// must satisfy 0 <= index < width*height.
func (s *Scene) RenderPixel(index int) (mgl64.Vec3, error) {
	if err := s.checkIndex(index); err != nil {
		return mgl64.Vec3{}, err
	}
	cd := s.renderSamples(index, rand.New(rand.NewSource(int64(index)+1)))
	return cd.finalize(), nil
}

// renderSamples averages SamplesPerPixel camera samples for one pixel. A
// single sample goes through the pixel center; multiple samples jitter
// inside the pixel footprint.
func (s *Scene) renderSamples(index int, rng *rand.Rand) colorData {
	px := index % s.opts.Width
	py := index / s.opts.Width

	spp := s.opts.SamplesPerPixel
	var sum colorData
	for i := 0; i < spp; i++ {
		dx, dy := 0.5, 0.5
		if spp > 1 {
			dx, dy = rng.Float64(), rng.Float64()
		}
		x, y := screenPoint(px, py, dx, dy, s.opts.Width, s.opts.Height, s.camera.fov)

		budget := s.opts.MaxReflectedRays
		cd, ok := s.trace(s.camera.RayThrough(x, y), 0, &budget, rng)
		if !ok {
			// Background contributes zero color; occlusion must stay
			// neutral so misses don't darken the averaged hits.
			sum.ao++
			continue
		}
		sum.color = sum.color.Add(cd.color)
		sum.emissive = sum.emissive.Add(cd.emissive)
		sum.ao += cd.ao
	}

	inv := 1 / float64(spp)
	sum.color = sum.color.Mul(inv)
	sum.emissive = sum.emissive.Mul(inv)
	sum.ao *= inv
	return sum
}

// trace casts one ray into the scene and shades the nearest hit. The bool
// result distinguishes a shaded hit from the background. budget counts down
// the reflected rays one camera sample may still spawn.
func (s *Scene) trace(ray core.Ray, depth int, budget *int, rng *rand.Rand) (colorData, bool) {
	_, hit, ok := s.raycast(ray, 0)
	if !ok {
		return colorData{}, false
	}

	obj := hit.Object
	mat := obj.Material()

	worldPoint := ray.At(hit.Distance)
	localPoint := core.TransformPoint(obj.Transform().Inverse(), worldPoint)
	localNormal := obj.NormalAt(localPoint, hit.Data)

	// Normals lift to world space through the inverse-transpose so they
	// stay perpendicular under non-uniform scale.
	normal := core.TransformDir(obj.Transform().InverseTranspose(), localNormal).Normalize()
	if mat.Side == core.SideBoth && normal.Dot(ray.Direction) > 0 {
		normal = normal.Mul(-1)
	}

	uv := obj.UVAt(localPoint, localNormal, hit.Data)
	base := mat.ColorAt(uv)
	view := ray.Direction.Mul(-1).Normalize()

	var color mgl64.Vec3
	for _, light := range s.lights {
		switch light.Type {
		case core.LightAmbient:
			color = color.Add(core.MulElem(base, light.Color.Mul(light.Intensity)))

		case core.LightPoint:
			toLight := light.Position.Sub(worldPoint)
			lightDist := toLight.Len()
			if lightDist < core.Epsilon {
				continue
			}
			lightDir := toLight.Mul(1 / lightDist)

			nDotL := normal.Dot(lightDir)
			if nDotL <= 0 {
				continue
			}

			shadow := core.Ray{
				Origin:    worldPoint.Add(normal.Mul(core.Bias)),
				Direction: lightDir,
				Kind:      core.ShadowRay,
			}
			if _, _, blocked := s.raycast(shadow, lightDist); blocked {
				continue
			}

			contribution := light.Color.Mul(light.Intensity)
			color = color.Add(core.MulElem(base, contribution.Mul(nDotL)))

			// Blinn-Phong highlight.
			if mat.Shininess > 0 {
				half := lightDir.Add(view).Normalize()
				spec := math.Pow(math.Max(normal.Dot(half), 0), mat.Shininess)
				color = color.Add(core.MulElem(mat.Specular, contribution.Mul(spec)))
			}
		}
	}

	if mat.Reflectivity > 0 && depth < s.opts.MaxDepth && *budget > 0 {
		*budget--
		reflected := core.Ray{
			Origin:    worldPoint.Add(normal.Mul(core.Bias)),
			Direction: core.Reflect(ray.Direction.Normalize(), normal),
			Kind:      core.ReflectedRay,
		}
		if rc, hitSomething := s.trace(reflected, depth+1, budget, rng); hitSomething {
			mirror := rc.emissive.Add(rc.color.Mul(rc.ao))
			color = color.Mul(1 - mat.Reflectivity).Add(mirror.Mul(mat.Reflectivity))
		} else {
			color = color.Mul(1 - mat.Reflectivity)
		}
	}

	ao := 1.0
	if ray.Kind == core.PrimaryRay && s.opts.MaxOcclusionRays > 0 {
		ao = s.ambientOcclusion(worldPoint, normal, rng)
	}

	return colorData{color: color, emissive: mat.Emissive, ao: ao}, true
}

// ambientOcclusion estimates how exposed a point is by shooting hemisphere
// rays and counting the ones that escape within MaxOcclusionDistance.
func (s *Scene) ambientOcclusion(point, normal mgl64.Vec3, rng *rand.Rand) float64 {
	rays := s.opts.MaxOcclusionRays
	tangent, bitangent := orthonormalBasis(normal)

	origin := point.Add(normal.Mul(core.Bias))
	unoccluded := 0
	for i := 0; i < rays; i++ {
		dir := cosineSample(normal, tangent, bitangent, rng)
		probe := core.Ray{Origin: origin, Direction: dir, Kind: core.ShadowRay}
		if _, _, blocked := s.raycast(probe, s.opts.MaxOcclusionDistance); !blocked {
			unoccluded++
		}
	}
	return float64(unoccluded) / float64(rays)
}

// orthonormalBasis completes a unit normal into a right-handed frame.
func orthonormalBasis(n mgl64.Vec3) (tangent, bitangent mgl64.Vec3) {
	axis := mgl64.Vec3{0, 1, 0}
	if math.Abs(n.Y()) > 0.9 {
		axis = mgl64.Vec3{1, 0, 0}
	}
	tangent = n.Cross(axis).Normalize()
	bitangent = n.Cross(tangent)
	return tangent, bitangent
}

// cosineSample draws a cosine-weighted direction in the hemisphere around n.
func cosineSample(n, tangent, bitangent mgl64.Vec3, rng *rand.Rand) mgl64.Vec3 {
	u1 := rng.Float64()
	u2 := rng.Float64()
	r := math.Sqrt(u1)
	theta := 2 * math.Pi * u2

	x := r * math.Cos(theta)
	y := r * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-u1))

	return tangent.Mul(x).Add(bitangent.Mul(y)).Add(n.Mul(z)).Normalize()
}
