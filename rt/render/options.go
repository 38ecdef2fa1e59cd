package render

import (
	"fmt"
)

// RenderOptions controls resolution, sampling and recursion limits.
type RenderOptions struct {
	Width  int
	Height int

	// MaxDepth bounds the reflection recursion; 0 disables reflections.
	MaxDepth int

	// SamplesPerPixel stochastic camera samples are averaged per pixel.
	// 1 shoots a single centered ray.
	SamplesPerPixel int

	// MaxReflectedRays caps the total reflected rays spawned by one
	// camera sample across all bounces.
	MaxReflectedRays int

	// MaxOcclusionRays hemisphere samples estimate ambient occlusion;
	// 0 disables occlusion entirely.
	MaxOcclusionRays int

	// MaxOcclusionDistance bounds how far an occluder can be and still
	// darken a point.
	MaxOcclusionDistance float64

	// OcclusionBlurRadius is the box radius, in pixels, for smoothing the
	// occlusion channel during a full-frame render.
	OcclusionBlurRadius int
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:                100,
		Height:               100,
		MaxDepth:             3,
		SamplesPerPixel:      4,
		MaxReflectedRays:     32,
		MaxOcclusionRays:     16,
		MaxOcclusionDistance: 1.0,
		OcclusionBlurRadius:  2,
	}
}

func (o RenderOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("render options: resolution %dx%d must be positive", o.Width, o.Height)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("render options: max depth %d must not be negative", o.MaxDepth)
	}
	if o.SamplesPerPixel < 1 {
		return fmt.Errorf("render options: samples per pixel %d must be at least 1", o.SamplesPerPixel)
	}
	if o.MaxReflectedRays < 0 {
		return fmt.Errorf("render options: max reflected rays %d must not be negative", o.MaxReflectedRays)
	}
	if o.MaxOcclusionRays < 0 {
		return fmt.Errorf("render options: max occlusion rays %d must not be negative", o.MaxOcclusionRays)
	}
	if o.MaxOcclusionRays > 0 && o.MaxOcclusionDistance <= 0 {
		return fmt.Errorf("render options: max occlusion distance %g must be positive", o.MaxOcclusionDistance)
	}
	if o.OcclusionBlurRadius < 0 {
		return fmt.Errorf("render options: occlusion blur radius %d must not be negative", o.OcclusionBlurRadius)
	}
	return nil
}
