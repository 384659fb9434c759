// Package atlas packs cached glyph textures into a single grayscale image.
//
// Backends that prefer one texture per font over one texture per glyph
// upload the atlas image once and sample each glyph through its Region.
package atlas

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"slices"

	"github.com/gogpu/kaku/text"
)

// ErrAtlasFull is returned when a texture cannot be placed.
var ErrAtlasFull = errors.New("atlas: no space left")

// ConfigError represents an atlas configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid " + e.Field + ": " + e.Reason
}

// Region describes a glyph texture's location in the atlas.
type Region struct {
	// ID is the texture's ID in its glyph cache.
	ID text.TextureID

	// Pixel coordinates in the atlas.
	X, Y, Width, Height int

	// UV coordinates [0, 1] for texture sampling.
	U0, V0, U1, V1 float32
}

// Atlas is a grayscale image holding packed glyph textures.
type Atlas struct {
	img       *image.Gray
	allocator *ShelfAllocator
	regions   map[text.TextureID]Region
	order     []text.TextureID
}

// New creates an empty atlas of the given size. Padding is the gap kept
// between textures so linear sampling does not bleed across glyphs.
func New(width, height, padding int) (*Atlas, error) {
	switch {
	case width <= 0:
		return nil, &ConfigError{Field: "Width", Reason: "must be positive"}
	case height <= 0:
		return nil, &ConfigError{Field: "Height", Reason: "must be positive"}
	case padding < 0:
		return nil, &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return &Atlas{
		img:       image.NewGray(image.Rect(0, 0, width, height)),
		allocator: NewShelfAllocator(width, height, padding),
		regions:   make(map[text.TextureID]Region),
	}, nil
}

// Add copies a texture into the atlas and returns where it was placed.
// Adding the same texture ID twice returns the existing region.
func (a *Atlas) Add(tex *text.GlyphTexture) (Region, error) {
	if r, ok := a.regions[tex.ID]; ok {
		return r, nil
	}

	x, y, ok := a.allocator.Allocate(tex.Width, tex.Height)
	if !ok {
		return Region{}, fmt.Errorf("%w: texture %d (%dx%d)", ErrAtlasFull, tex.ID, tex.Width, tex.Height)
	}

	dst := image.Rect(x, y, x+tex.Width, y+tex.Height)
	draw.Draw(a.img, dst, tex.Pixels, tex.Pixels.Rect.Min, draw.Src)

	b := a.img.Rect
	r := Region{
		ID:     tex.ID,
		X:      x,
		Y:      y,
		Width:  tex.Width,
		Height: tex.Height,
		U0:     float32(x) / float32(b.Dx()),
		V0:     float32(y) / float32(b.Dy()),
		U1:     float32(x+tex.Width) / float32(b.Dx()),
		V1:     float32(y+tex.Height) / float32(b.Dy()),
	}
	a.regions[tex.ID] = r
	a.order = append(a.order, tex.ID)
	return r, nil
}

// Image returns the atlas image.
func (a *Atlas) Image() *image.Gray { return a.img }

// Region returns the region of a texture.
func (a *Atlas) Region(id text.TextureID) (Region, bool) {
	r, ok := a.regions[id]
	return r, ok
}

// Regions returns all regions in insertion order.
func (a *Atlas) Regions() []Region {
	out := make([]Region, len(a.order))
	for i, id := range a.order {
		out[i] = a.regions[id]
	}
	return out
}

// Len returns the number of packed textures.
func (a *Atlas) Len() int { return len(a.order) }

// Utilization returns the fraction of atlas pixels covered by textures.
func (a *Atlas) Utilization() float64 { return a.allocator.Utilization() }

// minPackSize is the side of the first square tried by Pack.
const minPackSize = 64

// Pack places every texture in the smallest power-of-two square atlas,
// starting at 64, that holds them all. Textures are placed tallest first.
// Returns an error wrapping ErrAtlasFull if they do not fit in maxSize.
func Pack(textures []*text.GlyphTexture, maxSize, padding int) (*Atlas, error) {
	sorted := make([]*text.GlyphTexture, 0, len(textures))
	for _, t := range textures {
		if t != nil {
			sorted = append(sorted, t)
		}
	}
	slices.SortStableFunc(sorted, func(a, b *text.GlyphTexture) int {
		if c := cmp.Compare(b.Height, a.Height); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for size := minPackSize; size <= maxSize; size *= 2 {
		a, err := New(size, size, padding)
		if err != nil {
			return nil, err
		}
		if a.addAll(sorted) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %d textures exceed %dx%d", ErrAtlasFull, len(sorted), maxSize, maxSize)
}

func (a *Atlas) addAll(textures []*text.GlyphTexture) bool {
	for _, t := range textures {
		if _, err := a.Add(t); err != nil {
			return false
		}
	}
	return true
}
