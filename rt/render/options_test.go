package render

import (
	"testing"
)

func TestRenderOptionsValidate(t *testing.T) {
	valid := DefaultRenderOptions()
	if err := valid.Validate(); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RenderOptions)
	}{
		{name: "Zero width", mutate: func(o *RenderOptions) { o.Width = 0 }},
		{name: "Negative height", mutate: func(o *RenderOptions) { o.Height = -1 }},
		{name: "Negative depth", mutate: func(o *RenderOptions) { o.MaxDepth = -1 }},
		{name: "Zero samples", mutate: func(o *RenderOptions) { o.SamplesPerPixel = 0 }},
		{name: "Negative reflected rays", mutate: func(o *RenderOptions) { o.MaxReflectedRays = -1 }},
		{name: "Negative occlusion rays", mutate: func(o *RenderOptions) { o.MaxOcclusionRays = -1 }},
		{name: "Occlusion without distance", mutate: func(o *RenderOptions) { o.MaxOcclusionDistance = 0 }},
		{name: "Negative blur radius", mutate: func(o *RenderOptions) { o.OcclusionBlurRadius = -1 }},
	}

	for _, tc := range tests {
		opts := DefaultRenderOptions()
		tc.mutate(&opts)
		if err := opts.Validate(); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestRenderOptionsOcclusionDisabled(t *testing.T) {
	opts := DefaultRenderOptions()
	opts.MaxOcclusionRays = 0
	opts.MaxOcclusionDistance = 0
	if err := opts.Validate(); err != nil {
		t.Errorf("distance is irrelevant with occlusion off, got %v", err)
	}
}
