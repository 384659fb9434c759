package text

import "image"

// TextureID indexes a texture in a GlyphCache's texture arena.
// IDs start at 0 and are never reused.
type TextureID uint32

// GlyphTexture is the rasterized form of one glyph: a coverage bitmap or,
// for SDF fonts, a padded distance field.
type GlyphTexture struct {
	// ID is the texture's index in the owning cache.
	ID TextureID

	// OriginX and OriginY locate the top-left corner of the texture relative
	// to the pen position on the baseline, in pixels, y down. SDF textures
	// include the padding.
	OriginX, OriginY float32

	// Width and Height are the texture size in pixels.
	Width, Height int

	// Pixels holds one byte per pixel, rows top to bottom.
	Pixels *image.Gray

	// SDF reports whether Pixels holds encoded distances rather than
	// coverage.
	SDF bool
}

// GlyphEntry is the cached result for one codepoint of one font.
type GlyphEntry struct {
	// Advance is the horizontal pen advance in pixels.
	Advance float32

	// Texture is nil when the glyph draws nothing: whitespace, codepoints
	// the font does not map, and outlines with no area.
	Texture *GlyphTexture
}

// HasTexture reports whether the entry carries a texture.
func (e GlyphEntry) HasTexture() bool { return e.Texture != nil }
