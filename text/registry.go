package text

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/kaku/internal/parallel"
	"github.com/gogpu/kaku/sdf"
)

// FontHandle identifies a font loaded into a FontRegistry.
// Handles are comparable. The zero value is never issued.
type FontHandle struct {
	registry uint64
	index    uint32 // 1-based
}

// IsZero reports whether h is the zero handle.
func (h FontHandle) IsZero() bool { return h == FontHandle{} }

// String implements fmt.Stringer.
func (h FontHandle) String() string {
	return fmt.Sprintf("font#%d.%d", h.registry, h.index)
}

// registryIDs issues registry identities so handles cannot cross registries.
var registryIDs atomic.Uint64

// FontRegistry owns loaded fonts and their glyph caches.
// Fonts are never removed.
//
// FontRegistry is safe for concurrent use.
type FontRegistry struct {
	id    uint64
	pool  *parallel.WorkerPool
	mu    sync.RWMutex
	fonts []*FontEntry
}

// NewFontRegistry creates an empty registry.
func NewFontRegistry(opts ...RegistryOption) *FontRegistry {
	var cfg registryConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FontRegistry{
		id:   registryIDs.Add(1),
		pool: parallel.NewWorkerPool(cfg.workers),
	}
}

// Load registers src at the given pixel size without distance fields.
func (r *FontRegistry) Load(src *FontSource, pixelSize float64) (FontHandle, error) {
	return r.load(src, pixelSize, nil)
}

// LoadWithSdf registers src at the given pixel size; its glyphs are stored
// as signed distance fields of the given radius.
//
// Returns an error wrapping ErrInvalidSdfConfig and sdf.ErrInvalidConfig if
// radius is not a positive finite number.
func (r *FontRegistry) LoadWithSdf(src *FontSource, pixelSize float64, radius float32) (FontHandle, error) {
	cfg := sdf.Config{Radius: radius}
	if err := cfg.Validate(); err != nil {
		return FontHandle{}, fmt.Errorf("%w: %w", ErrInvalidSdfConfig, err)
	}
	return r.load(src, pixelSize, &cfg)
}

func (r *FontRegistry) load(src *FontSource, pixelSize float64, cfg *sdf.Config) (FontHandle, error) {
	if src == nil {
		return FontHandle{}, ErrNilSource
	}
	if math.IsNaN(pixelSize) || math.IsInf(pixelSize, 0) || pixelSize <= 0 {
		return FontHandle{}, fmt.Errorf("%w: %v", ErrInvalidFontSize, pixelSize)
	}

	entry := &FontEntry{
		source:    src,
		pixelSize: pixelSize,
		sdf:       cfg,
		metrics:   src.Parsed().Metrics(pixelSize),
		cache:     newGlyphCache(),
		pool:      r.pool,
	}

	r.mu.Lock()
	r.fonts = append(r.fonts, entry)
	h := FontHandle{registry: r.id, index: uint32(len(r.fonts))} //nolint:gosec // font count fits
	r.mu.Unlock()

	slogger().Debug("text: font loaded",
		"font", src.Name(),
		"handle", h.String(),
		"px", pixelSize,
		"sdf", cfg != nil)
	return h, nil
}

// Get returns the entry of a loaded font.
// Returns an *UnknownFontError for handles this registry did not issue.
func (r *FontRegistry) Get(h FontHandle) (*FontEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if h.registry != r.id || h.index == 0 || int(h.index) > len(r.fonts) {
		return nil, &UnknownFontError{Handle: h}
	}
	return r.fonts[h.index-1], nil
}

// Ensure caches every codepoint of runes for the font.
func (r *FontRegistry) Ensure(h FontHandle, runes []rune) error {
	e, err := r.Get(h)
	if err != nil {
		return err
	}
	e.Ensure(runes)
	return nil
}

// EnsureString caches every codepoint of s for the font.
func (r *FontRegistry) EnsureString(h FontHandle, s string) error {
	return r.Ensure(h, []rune(s))
}

// Len returns the number of loaded fonts.
func (r *FontRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fonts)
}

// FontEntry is one font at one pixel size with its glyph cache.
type FontEntry struct {
	source    *FontSource
	pixelSize float64
	sdf       *sdf.Config
	metrics   FontMetrics
	cache     *GlyphCache
	pool      *parallel.WorkerPool

	// fill serializes batch fills so each codepoint is computed once.
	fill sync.Mutex
}

// Source returns the font source.
func (e *FontEntry) Source() *FontSource { return e.source }

// PixelSize returns the size glyphs are rasterized at.
func (e *FontEntry) PixelSize() float64 { return e.pixelSize }

// SDF returns the distance field configuration, or false for coverage
// fonts.
func (e *FontEntry) SDF() (sdf.Config, bool) {
	if e.sdf == nil {
		return sdf.Config{}, false
	}
	return *e.sdf, true
}

// Metrics returns the font metrics at the entry's pixel size.
func (e *FontEntry) Metrics() FontMetrics { return e.metrics }

// Cache returns the glyph cache.
func (e *FontEntry) Cache() *GlyphCache { return e.cache }

// Ensure caches every codepoint of runes that is not cached yet.
//
// Missing glyphs are computed in parallel without holding the cache lock
// and committed as one batch. Concurrent calls are serialized; readers are
// not blocked while glyphs are computed. Returns the number of new entries.
func (e *FontEntry) Ensure(runes []rune) int {
	if len(e.cache.Missing(runes)) == 0 {
		return 0
	}

	e.fill.Lock()
	defer e.fill.Unlock()

	// Another fill may have committed some of them meanwhile.
	missing := e.cache.Missing(runes)
	if len(missing) == 0 {
		return 0
	}

	start := time.Now()
	batch := parallel.Map(e.pool, missing, e.computeGlyph)
	n := e.cache.commit(batch)

	slogger().Debug("text: glyph batch",
		"font", e.source.Name(),
		"glyphs", n,
		"duration", time.Since(start))
	return n
}

// EnsureString caches every codepoint of s.
func (e *FontEntry) EnsureString(s string) int {
	return e.Ensure([]rune(s))
}

// computeGlyph rasterizes one codepoint and, for SDF fonts, converts the
// coverage into a distance field.
func (e *FontEntry) computeGlyph(r rune) computedGlyph {
	parsed := e.source.Parsed()
	gid := parsed.GlyphIndex(r)
	g := computedGlyph{
		r:       r,
		advance: float32(parsed.GlyphAdvance(gid, e.pixelSize)),
	}
	if gid == 0 {
		return g
	}

	outline, err := parsed.GlyphOutline(gid, e.pixelSize)
	if err != nil {
		slogger().Warn("text: glyph outline failed",
			"font", e.source.Name(),
			"rune", string(r),
			"gid", gid,
			"err", err)
		return g
	}

	cov := Rasterize(outline)
	if cov == nil {
		return g
	}

	if e.sdf == nil {
		g.texture = &GlyphTexture{
			OriginX: float32(cov.Origin.X),
			OriginY: float32(cov.Origin.Y),
			Width:   cov.Mask.Rect.Dx(),
			Height:  cov.Mask.Rect.Dy(),
			Pixels:  cov.Mask,
		}
		return g
	}

	field := sdf.Build(cov.Mask, *e.sdf)
	g.texture = &GlyphTexture{
		OriginX: float32(cov.Origin.X - field.Padding),
		OriginY: float32(cov.Origin.Y - field.Padding),
		Width:   field.Width(),
		Height:  field.Height(),
		Pixels:  field.Image,
		SDF:     true,
	}
	return g
}
