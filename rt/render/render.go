package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Framebuffer is the shared output buffer of a frame render. Workers each
// write distinct pixel indices, so a single mutex is enough to let a live
// display host snapshot the buffer mid-render.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pixels []mgl64.Vec3
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]mgl64.Vec3, width*height),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

func (f *Framebuffer) Set(index int, c mgl64.Vec3) {
	f.mu.Lock()
	f.pixels[index] = c
	f.mu.Unlock()
}

func (f *Framebuffer) At(index int) mgl64.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pixels[index]
}

// Snapshot copies the current pixel state, for live display while a render
// is still in flight.
func (f *Framebuffer) Snapshot() []mgl64.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mgl64.Vec3, len(f.pixels))
	copy(out, f.pixels)
	return out
}

// ToNRGBA converts the buffer to an 8-bit image for the host's I/O layer.
// Colors are already gamma corrected and clamped.
func (f *Framebuffer) ToNRGBA() *image.NRGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	for i, p := range f.pixels {
		img.SetNRGBA(i%f.width, i/f.width, color.NRGBA{
			R: uint8(p.X()*255 + 0.5),
			G: uint8(p.Y()*255 + 0.5),
			B: uint8(p.Z()*255 + 0.5),
			A: 255,
		})
	}
	return img
}

// RenderFrame renders the whole frame into fb using one worker per CPU.
// Pixels are handed out in shuffled order (so a live view fills in evenly)
// and each pixel's sample RNG is seeded from its index, so the output is
// identical to calling RenderPixel for every pixel. Cancelling the context
// stops new pixel work between units; in-flight pixels finish. Occlusion is
// collected per pixel, box-blurred by OcclusionBlurRadius, then folded into
// the final colors.
func (s *Scene) RenderFrame(ctx context.Context, fb *Framebuffer) error {
	return s.renderFrame(ctx, fb, runtime.NumCPU())
}

func (s *Scene) renderFrame(ctx context.Context, fb *Framebuffer, workers int) error {
	if fb.width != s.opts.Width || fb.height != s.opts.Height {
		return fmt.Errorf("framebuffer %dx%d does not match render options %dx%d",
			fb.width, fb.height, s.opts.Width, s.opts.Height)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	total := s.opts.Width * s.opts.Height
	indices := rand.Perm(total)
	samples := make([]colorData, total)
	done := make([]bool, total)

	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	s.log.Infof("render: %dx%d, %d samples/pixel, %d workers",
		s.opts.Width, s.opts.Height, s.opts.SamplesPerPixel, workers)
	start := time.Now()

	s.stats.BeginScope("trace")
	var wg sync.WaitGroup
	chunk := (total + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= total {
			// Earlier workers already cover the tail: ceil division can
			// overshoot when total barely exceeds the worker count.
			break
		}
		hi := lo + chunk
		if hi > total {
			hi = total
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for _, index := range indices[lo:hi] {
				if ctx.Err() != nil {
					return
				}
				samples[index] = s.renderSamples(index, rand.New(rand.NewSource(int64(index)+1)))
				done[index] = true
				// Write a provisional color so live snapshots show progress
				// before the occlusion blur pass.
				fb.Set(index, samples[index].finalize())
			}
		}(lo, hi)
	}
	wg.Wait()
	s.stats.EndScope("trace")

	s.stats.BeginScope("blur")
	ao := s.blurOcclusion(samples, done)
	s.stats.EndScope("blur")

	s.stats.BeginScope("finalize")
	for i := range samples {
		if !done[i] {
			continue
		}
		cd := samples[i]
		cd.ao = ao[i]
		fb.Set(i, cd.finalize())
	}
	s.stats.EndScope("finalize")

	if err := ctx.Err(); err != nil {
		s.log.Warnf("render: cancelled after %s", time.Since(start))
		return err
	}
	s.log.Infof("render: done in %s, %d rays", time.Since(start), s.stats.TotalRays())
	s.log.Debugf("render stats:\n%s", s.stats.Report())
	return nil
}

// blurOcclusion box-blurs the occlusion channel. Pixels never traced (after
// a cancellation) neither contribute nor receive.
func (s *Scene) blurOcclusion(samples []colorData, done []bool) []float64 {
	w := s.opts.Width
	h := s.opts.Height
	r := s.opts.OcclusionBlurRadius

	ao := make([]float64, len(samples))
	if r == 0 {
		for i := range samples {
			ao[i] = samples[i].ao
		}
		return ao
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !done[i] {
				continue
			}
			sum := 0.0
			n := 0
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					nx := x + dx
					ny := y + dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					j := ny*w + nx
					if !done[j] {
						continue
					}
					sum += samples[j].ao
					n++
				}
			}
			ao[i] = sum / float64(n)
		}
	}
	return ao
}
