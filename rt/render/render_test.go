package render

import (
	"context"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lumen3d/lumen/rt/core"
	"github.com/lumen3d/lumen/rt/primitive"
)

func TestRenderFrameMatchesRenderPixel(t *testing.T) {
	// With one sample per pixel, no occlusion and no blur, the frame loop
	// must agree with per-pixel rendering exactly.
	sphere := &primitive.Sphere{Radius: 1, Material: core.Material{Color: mgl64.Vec3{1, 0.5, 0.25}, Side: core.SideFront}}
	light := core.NewPointLight(mgl64.Vec3{3, 3, 3}, mgl64.Vec3{1, 1, 1}, 1)

	opts := RenderOptions{Width: 8, Height: 6, SamplesPerPixel: 1, MaxDepth: 2, MaxReflectedRays: 4}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, []core.Light{light}, sphere)

	fb := NewFramebuffer(opts.Width, opts.Height)
	if err := s.RenderFrame(context.Background(), fb); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < opts.Width*opts.Height; i++ {
		want, err := s.RenderPixel(i)
		if err != nil {
			t.Fatal(err)
		}
		if got := fb.At(i); !got.ApproxEqualThreshold(want, 1e-12) {
			t.Errorf("pixel %d: frame %v, direct %v", i, got, want)
		}
	}
}

func TestRenderFrameWorkerPartition(t *testing.T) {
	// Ceil-divided chunks can overshoot the pixel count when it barely
	// exceeds the worker count (9 pixels over 8 workers gives chunks of 2,
	// putting the fifth worker's start past the end). Trailing workers
	// must be skipped, not sliced out of range.
	sphere := &primitive.Sphere{Radius: 1, Material: core.Material{Color: mgl64.Vec3{1, 1, 1}, Side: core.SideFront}}
	light := core.NewPointLight(mgl64.Vec3{3, 3, 3}, mgl64.Vec3{1, 1, 1}, 1)

	opts := RenderOptions{Width: 3, Height: 3, SamplesPerPixel: 1}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, []core.Light{light}, sphere)

	for _, workers := range []int{8, 5, 9, 100} {
		fb := NewFramebuffer(opts.Width, opts.Height)
		if err := s.renderFrame(context.Background(), fb, workers); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		for i := 0; i < opts.Width*opts.Height; i++ {
			want, err := s.RenderPixel(i)
			if err != nil {
				t.Fatal(err)
			}
			if got := fb.At(i); !got.ApproxEqualThreshold(want, 1e-12) {
				t.Errorf("workers=%d pixel %d: frame %v, direct %v", workers, i, got, want)
			}
		}
	}
}

func TestRenderFrameJitteredMatchesRenderPixel(t *testing.T) {
	// Sample jitter and occlusion probes draw from an RNG seeded by pixel
	// index, so the frame loop agrees with per-pixel rendering even with
	// stochastic sampling on (blur off, which is the only cross-pixel pass).
	sphere := &primitive.Sphere{Radius: 1, Material: core.Material{Color: mgl64.Vec3{1, 1, 1}, Side: core.SideFront}}
	light := core.NewPointLight(mgl64.Vec3{3, 3, 3}, mgl64.Vec3{1, 1, 1}, 1)

	opts := RenderOptions{
		Width:                5,
		Height:               4,
		SamplesPerPixel:      4,
		MaxOcclusionRays:     4,
		MaxOcclusionDistance: 1,
	}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, []core.Light{light}, sphere)

	fb := NewFramebuffer(opts.Width, opts.Height)
	if err := s.renderFrame(context.Background(), fb, 3); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < opts.Width*opts.Height; i++ {
		want, err := s.RenderPixel(i)
		if err != nil {
			t.Fatal(err)
		}
		if got := fb.At(i); !got.ApproxEqualThreshold(want, 1e-12) {
			t.Errorf("pixel %d: frame %v, direct %v", i, got, want)
		}
	}
}

func TestRenderFrameDimensionMismatch(t *testing.T) {
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, onePixelOptions(), nil)
	fb := NewFramebuffer(2, 2)
	if err := s.RenderFrame(context.Background(), fb); err == nil {
		t.Fatal("expected a dimension mismatch error")
	}
}

func TestRenderFrameCancelled(t *testing.T) {
	sphere := &primitive.Sphere{Radius: 1}
	opts := RenderOptions{Width: 16, Height: 16, SamplesPerPixel: 1}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, nil, sphere)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fb := NewFramebuffer(opts.Width, opts.Height)
	if err := s.RenderFrame(ctx, fb); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFramebufferSnapshot(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(3, mgl64.Vec3{1, 0, 0})

	snap := fb.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 pixels, got %d", len(snap))
	}
	if snap[3] != (mgl64.Vec3{1, 0, 0}) {
		t.Errorf("snapshot pixel 3: got %v", snap[3])
	}

	// The snapshot is a copy, not a view.
	snap[0] = mgl64.Vec3{1, 1, 1}
	if fb.At(0) != (mgl64.Vec3{}) {
		t.Error("mutating the snapshot leaked into the framebuffer")
	}
}

func TestFramebufferToNRGBA(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, mgl64.Vec3{1, 0, 0})
	fb.Set(1, mgl64.Vec3{0, 0.5, 1})

	img := fb.ToNRGBA()
	if img.Rect.Dx() != 2 || img.Rect.Dy() != 1 {
		t.Fatalf("unexpected image size %v", img.Rect)
	}
	p0 := img.NRGBAAt(0, 0)
	if p0.R != 255 || p0.G != 0 || p0.B != 0 || p0.A != 255 {
		t.Errorf("pixel 0: got %+v", p0)
	}
	p1 := img.NRGBAAt(1, 0)
	if p1.G != 128 || p1.B != 255 {
		t.Errorf("pixel 1: got %+v", p1)
	}
}

func TestBlurOcclusion(t *testing.T) {
	opts := RenderOptions{Width: 3, Height: 3, SamplesPerPixel: 1, OcclusionBlurRadius: 1}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, nil)

	samples := make([]colorData, 9)
	done := make([]bool, 9)
	for i := range samples {
		samples[i].ao = 1
		done[i] = true
	}
	samples[4].ao = 0 // dark center

	ao := s.blurOcclusion(samples, done)
	if want := 8.0 / 9.0; !mgl64.FloatEqualThreshold(ao[4], want, 1e-12) {
		t.Errorf("center: expected %v, got %v", want, ao[4])
	}
	if want := 3.0 / 4.0; !mgl64.FloatEqualThreshold(ao[0], want, 1e-12) {
		t.Errorf("corner: expected %v, got %v", want, ao[0])
	}

	// Untraced pixels neither receive nor contribute.
	done[8] = false
	ao = s.blurOcclusion(samples, done)
	if ao[8] != 0 {
		t.Errorf("untraced pixel must stay zero, got %v", ao[8])
	}
	if want := 3.0 / 4.0; !mgl64.FloatEqualThreshold(ao[0], want, 1e-12) {
		t.Errorf("corner unaffected by far untraced pixel: got %v", ao[0])
	}
}

func TestRenderFrameRecordsScopes(t *testing.T) {
	opts := RenderOptions{Width: 2, Height: 2, SamplesPerPixel: 1}
	s := oneLook(t, mgl64.Vec3{0, 0, 5}, opts, nil, &primitive.Sphere{Radius: 1})

	fb := NewFramebuffer(2, 2)
	if err := s.RenderFrame(context.Background(), fb); err != nil {
		t.Fatal(err)
	}

	report := s.Stats().Report()
	for _, scope := range []string{"trace", "blur", "finalize"} {
		if !strings.Contains(report, scope) {
			t.Errorf("report missing scope %q:\n%s", scope, report)
		}
	}
	if s.Stats().RayCount(core.PrimaryRay) != 4 {
		t.Errorf("expected 4 primary rays, got %d", s.Stats().RayCount(core.PrimaryRay))
	}
}
