package kaku

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/kaku/gpu"
	"github.com/gogpu/kaku/text"
)

// SdfSettings configures signed distance field rendering for a font.
type SdfSettings struct {
	// Radius is the spread of the distance field in pixels. It limits the
	// width of outlines; larger radii cost more texture memory.
	Radius float32
}

// Renderer owns the loaded fonts, their glyph caches and, when a texture
// creator is configured, the uploaded glyph textures.
//
// Renderer is safe for concurrent use.
type Renderer struct {
	registry *text.FontRegistry
	uploader *gpu.Uploader // nil without a texture creator

	mu     sync.RWMutex
	screen gpu.ScreenUniform
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		registry: text.NewFontRegistry(text.WithWorkers(o.workers)),
		screen:   gpu.NewScreenUniform(o.screenWidth, o.screenHeight),
	}
	if o.creator != nil {
		r.uploader = gpu.NewUploader(o.creator)
	}
	return r
}

// LoadFont loads a font that renders with coverage masks.
func (r *Renderer) LoadFont(src *text.FontSource, size text.FontSize) (text.FontHandle, error) {
	h, err := r.registry.Load(src, size.Pixels())
	if err != nil {
		return text.FontHandle{}, err
	}
	Logger().Debug("font loaded", "font", h.String(), "name", src.Name(), "size", size.String())
	return h, nil
}

// LoadFontWithSdf loads a font that renders with signed distance fields.
func (r *Renderer) LoadFontWithSdf(src *text.FontSource, size text.FontSize, settings SdfSettings) (text.FontHandle, error) {
	h, err := r.registry.LoadWithSdf(src, size.Pixels(), settings.Radius)
	if err != nil {
		return text.FontHandle{}, err
	}
	Logger().Debug("font loaded", "font", h.String(), "name", src.Name(),
		"size", size.String(), "sdf_radius", settings.Radius)
	return h, nil
}

// Font returns the registry entry of a loaded font.
func (r *Renderer) Font(h text.FontHandle) (*text.FontEntry, error) {
	return r.registry.Get(h)
}

// Registry returns the font registry backing the renderer.
func (r *Renderer) Registry() *text.FontRegistry { return r.registry }

// UsesSdf reports whether a font renders with signed distance fields.
func (r *Renderer) UsesSdf(h text.FontHandle) bool {
	e, err := r.registry.Get(h)
	if err != nil {
		return false
	}
	_, ok := e.SDF()
	return ok
}

// UpdateCharTextures caches the glyphs of s, in NFC form, for a font and
// uploads any new textures.
//
// Building or updating a Text does this automatically. Call it ahead of
// time for text that will appear later, such as the digits of a score
// counter, so that the work does not happen mid-frame.
func (r *Renderer) UpdateCharTextures(s string, font text.FontHandle) error {
	e, err := r.registry.Get(font)
	if err != nil {
		return err
	}
	e.EnsureString(norm.NFC.String(s))
	return r.upload(font, e)
}

func (r *Renderer) upload(font text.FontHandle, e *text.FontEntry) error {
	if r.uploader == nil {
		return nil
	}
	if _, err := r.uploader.Upload(font, e.Cache()); err != nil {
		return fmt.Errorf("kaku: %w", err)
	}
	return nil
}

// Texture returns the uploaded backend texture for a glyph texture.
// Returns false when no texture creator is configured.
func (r *Renderer) Texture(font text.FontHandle, id text.TextureID) (gpucontext.Texture, bool) {
	if r.uploader == nil {
		return nil, false
	}
	return r.uploader.Texture(font, id)
}

// Resize updates the screen projection for a new render target size.
// Non-positive sizes are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.screen = gpu.NewScreenUniform(width, height)
	r.mu.Unlock()
}

// ScreenUniform returns the current screen projection.
func (r *Renderer) ScreenUniform() gpu.ScreenUniform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.screen
}
