package kaku

import (
	"github.com/gogpu/gpucontext"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	// CPU only: glyphs are cached but never uploaded
//	r := kaku.NewRenderer()
//
//	// Upload glyph textures as they are cached
//	r := kaku.NewRenderer(kaku.WithTextureCreator(creator))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	workers      int
	creator      gpucontext.TextureCreator
	screenWidth  int
	screenHeight int
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		workers:      0, // GOMAXPROCS
		screenWidth:  800,
		screenHeight: 600,
	}
}

// WithWorkers sets how many goroutines rasterize glyphs in parallel.
// Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *rendererOptions) {
		o.workers = n
	}
}

// WithTextureCreator uploads glyph textures through c whenever new glyphs
// are cached.
func WithTextureCreator(c gpucontext.TextureCreator) Option {
	return func(o *rendererOptions) {
		o.creator = c
	}
}

// WithScreenSize sets the initial render target size used for the screen
// projection. See Renderer.Resize.
func WithScreenSize(width, height int) Option {
	return func(o *rendererOptions) {
		if width > 0 && height > 0 {
			o.screenWidth = width
			o.screenHeight = height
		}
	}
}
