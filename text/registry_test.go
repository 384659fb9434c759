package text

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/kaku/sdf"
)

func loadTest(t *testing.T, reg *FontRegistry, px float64, radius float32) (FontHandle, *FontEntry) {
	t.Helper()
	source := testSource(t, "ximage")
	var (
		h   FontHandle
		err error
	)
	if radius > 0 {
		h, err = reg.LoadWithSdf(source, px, radius)
	} else {
		h, err = reg.Load(source, px)
	}
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	e, err := reg.Get(h)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	return h, e
}

func TestFontRegistry_LoadAndGet(t *testing.T) {
	reg := NewFontRegistry()
	h1, e1 := loadTest(t, reg, 24, 0)
	h2, e2 := loadTest(t, reg, 32, 4)

	if h1 == h2 || h1.IsZero() || h2.IsZero() {
		t.Errorf("handles %v and %v should be distinct and non-zero", h1, h2)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
	if e1.PixelSize() != 24 || e2.PixelSize() != 32 {
		t.Errorf("pixel sizes = %v, %v", e1.PixelSize(), e2.PixelSize())
	}
	if _, ok := e1.SDF(); ok {
		t.Error("coverage font reports SDF")
	}
	if cfg, ok := e2.SDF(); !ok || cfg.Radius != 4 {
		t.Errorf("SDF() = %+v, %v; want radius 4", cfg, ok)
	}
	if e1.Metrics().Ascent <= 0 {
		t.Error("metrics not populated")
	}
}

func TestFontRegistry_UnknownFont(t *testing.T) {
	reg := NewFontRegistry()
	other := NewFontRegistry()
	foreign, _ := loadTest(t, other, 16, 0)

	for _, h := range []FontHandle{{}, foreign} {
		_, err := reg.Get(h)
		if !errors.Is(err, ErrUnknownFont) {
			t.Errorf("Get(%v) error = %v, want ErrUnknownFont", h, err)
		}
		var fontErr *UnknownFontError
		if !errors.As(err, &fontErr) || fontErr.Handle != h {
			t.Errorf("error %v does not carry the handle", err)
		}
		if err := reg.EnsureString(h, "a"); !errors.Is(err, ErrUnknownFont) {
			t.Errorf("EnsureString(%v) error = %v", h, err)
		}
	}
}

func TestFontRegistry_LoadErrors(t *testing.T) {
	reg := NewFontRegistry()
	source := testSource(t, "ximage")

	if _, err := reg.Load(nil, 12); !errors.Is(err, ErrNilSource) {
		t.Errorf("Load(nil) error = %v, want ErrNilSource", err)
	}
	for _, px := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := reg.Load(source, px); !errors.Is(err, ErrInvalidFontSize) {
			t.Errorf("Load(px=%v) error = %v, want ErrInvalidFontSize", px, err)
		}
	}
	for _, radius := range []float32{0, -2, float32(math.NaN()), float32(math.Inf(1))} {
		_, err := reg.LoadWithSdf(source, 12, radius)
		if !errors.Is(err, ErrInvalidSdfConfig) || !errors.Is(err, sdf.ErrInvalidConfig) {
			t.Errorf("LoadWithSdf(r=%v) error = %v, want ErrInvalidSdfConfig", radius, err)
		}
	}
	if reg.Len() != 0 {
		t.Errorf("failed loads registered %d fonts", reg.Len())
	}
}

func TestFontEntry_EnsureDeduplicates(t *testing.T) {
	_, e := loadTest(t, NewFontRegistry(), 24, 0)

	if n := e.Ensure([]rune{'a', 'a', 'b'}); n != 2 {
		t.Errorf("Ensure inserted %d entries, want 2", n)
	}
	if e.Cache().Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Cache().Len())
	}
	if s := e.Cache().Stats(); s.Insertions != 2 || s.Batches != 1 {
		t.Errorf("Stats = %+v, want 2 insertions in 1 batch", s)
	}
}

func TestFontEntry_SpaceHasNoTexture(t *testing.T) {
	for _, radius := range []float32{0, 5} {
		_, e := loadTest(t, NewFontRegistry(), 24, radius)
		e.EnsureString(" ")

		g, err := e.Cache().Get(' ')
		if err != nil {
			t.Fatal(err)
		}
		if g.Texture != nil {
			t.Errorf("radius %v: space has a texture", radius)
		}
		if g.Advance <= 0 {
			t.Errorf("radius %v: space advance = %v, want > 0", radius, g.Advance)
		}
	}
}

func TestFontEntry_UnmappedHasNoTexture(t *testing.T) {
	_, e := loadTest(t, NewFontRegistry(), 24, 0)
	e.Ensure([]rune{'\U0001F600'})

	g, err := e.Cache().Get('\U0001F600')
	if err != nil {
		t.Fatal(err)
	}
	if g.Texture != nil {
		t.Error("unmapped codepoint has a texture")
	}
}

func TestFontEntry_EnsureIdempotent(t *testing.T) {
	_, e := loadTest(t, NewFontRegistry(), 20, 3)
	const s = "Idempotent glyphs!"

	e.EnsureString(s)
	first := snapshot(t, e, s)

	if n := e.EnsureString(s); n != 0 {
		t.Errorf("second Ensure inserted %d entries", n)
	}
	if diff := cmp.Diff(first, snapshot(t, e, s)); diff != "" {
		t.Errorf("entries changed after second Ensure (-first +second):\n%s", diff)
	}
	if st := e.Cache().Stats(); st.Batches != 1 {
		t.Errorf("Batches = %d, want 1", st.Batches)
	}
}

func snapshot(t *testing.T, e *FontEntry, s string) map[rune]GlyphEntry {
	t.Helper()
	out := make(map[rune]GlyphEntry)
	for _, r := range s {
		g, err := e.Cache().Get(r)
		if err != nil {
			t.Fatal(err)
		}
		out[r] = g
	}
	return out
}

func TestFontEntry_SdfTextureGeometry(t *testing.T) {
	reg := NewFontRegistry()
	_, cov := loadTest(t, reg, 32, 0)
	_, field := loadTest(t, reg, 32, 4.5)

	cov.EnsureString("g")
	field.EnsureString("g")
	c, _ := cov.Cache().Get('g')
	f, _ := field.Cache().Get('g')

	const pad = 5 // ceil(4.5)
	if c.Texture.SDF || !f.Texture.SDF {
		t.Errorf("SDF flags: coverage %v, field %v", c.Texture.SDF, f.Texture.SDF)
	}
	if f.Texture.Width != c.Texture.Width+2*pad || f.Texture.Height != c.Texture.Height+2*pad {
		t.Errorf("field size %dx%d, coverage %dx%d, want +%d per side",
			f.Texture.Width, f.Texture.Height, c.Texture.Width, c.Texture.Height, pad)
	}
	if f.Texture.OriginX != c.Texture.OriginX-pad || f.Texture.OriginY != c.Texture.OriginY-pad {
		t.Errorf("field origin (%v,%v), coverage (%v,%v)",
			f.Texture.OriginX, f.Texture.OriginY, c.Texture.OriginX, c.Texture.OriginY)
	}
	if f.Advance != c.Advance {
		t.Errorf("advances differ: %v vs %v", f.Advance, c.Advance)
	}
}

func TestFontEntry_DeterministicAcrossWorkers(t *testing.T) {
	const s = "The quick brown fox jumps over the lazy dog 0123456789"

	build := func(workers int) *FontEntry {
		_, e := loadTest(t, NewFontRegistry(WithWorkers(workers)), 28, 6)
		e.EnsureString(s)
		return e
	}
	serial, wide := build(1), build(8)

	a, b := serial.Cache().Textures(), wide.Cache().Textures()
	if len(a) != len(b) {
		t.Fatalf("texture counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || !bytes.Equal(a[i].Pixels.Pix, b[i].Pixels.Pix) {
			t.Errorf("texture %d differs between 1 and 8 workers", i)
		}
	}
}

func TestFontEntry_ConcurrentEnsure(t *testing.T) {
	_, e := loadTest(t, NewFontRegistry(WithWorkers(4)), 18, 0)
	const s = "concurrent ensure calls"

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.EnsureString(s)
		}()
	}
	wg.Wait()

	distinct := map[rune]bool{}
	for _, r := range s {
		distinct[r] = true
	}
	if got := e.Cache().Len(); got != len(distinct) {
		t.Errorf("Len() = %d, want %d", got, len(distinct))
	}
	if got := e.Cache().Stats().Insertions; got != uint64(len(distinct)) {
		t.Errorf("Insertions = %d, want %d (each glyph computed once)", got, len(distinct))
	}
}
