package text

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HorizontalAlignment anchors the layout position along each line:
// 0 anchors the left edge, 1 the right edge, values in between shift
// continuously.
type HorizontalAlignment float32

const (
	// AlignLeft draws text starting at the position (default).
	AlignLeft HorizontalAlignment = 0
	// AlignCenter centers each line on the position.
	AlignCenter HorizontalAlignment = 0.5
	// AlignRight draws text ending at the position.
	AlignRight HorizontalAlignment = 1
)

// AlignRatio returns a horizontal alignment at proportion r of the line
// width, clamped to [0, 1].
func AlignRatio(r float32) HorizontalAlignment {
	return HorizontalAlignment(clamp01(r))
}

// Proportion returns the alignment as a value in [0, 1].
func (a HorizontalAlignment) Proportion() float32 {
	return clamp01(float32(a))
}

// String returns the string representation of the alignment.
func (a HorizontalAlignment) String() string {
	switch a.Proportion() {
	case 0:
		return "Left"
	case 0.5:
		return "Center"
	case 1:
		return "Right"
	default:
		return fmt.Sprintf("Ratio(%g)", a.Proportion())
	}
}

// VerticalAlignment anchors the layout position vertically. The zero value
// anchors the baseline of the first line.
type VerticalAlignment struct {
	ratio    float32
	anchored bool
}

var (
	// AlignBaseline puts the first line's baseline at the position (default).
	AlignBaseline = VerticalAlignment{}
	// AlignTop keeps glyphs from rising above the position.
	AlignTop = VerticalAlignment{ratio: 1, anchored: true}
	// AlignMiddle centers the text between the font's highest and lowest
	// points.
	AlignMiddle = VerticalAlignment{ratio: 0.5, anchored: true}
	// AlignBottom keeps glyphs from going below the position.
	AlignBottom = VerticalAlignment{ratio: 0, anchored: true}
)

// VAlignRatio returns a vertical alignment at proportion r between the
// bottom (0) and the top (1) of the text, clamped to [0, 1].
func VAlignRatio(r float32) VerticalAlignment {
	return VerticalAlignment{ratio: clamp01(r), anchored: true}
}

// String returns the string representation of the alignment.
func (a VerticalAlignment) String() string {
	if !a.anchored {
		return "Baseline"
	}
	switch a.ratio {
	case 1:
		return "Top"
	case 0.5:
		return "Middle"
	case 0:
		return "Bottom"
	default:
		return fmt.Sprintf("Ratio(%g)", a.ratio)
	}
}

func clamp01(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v >= 0:
		return v
	default: // negative or NaN
		return 0
	}
}

// LayoutOptions configures text layout.
type LayoutOptions struct {
	// X and Y are the anchor position in pixels, y down.
	X, Y float32

	// Scale multiplies glyph geometry and advances. 0 means 1.
	Scale float32

	// LineSpacing multiplies the font's line height. 0 means 1.
	LineSpacing float32

	HorizontalAlign HorizontalAlignment
	VerticalAlign   VerticalAlignment
}

// Quad is a positioned glyph texture.
type Quad struct {
	Rune rune

	// X and Y locate the texture's top-left corner.
	X, Y float32

	// Width and Height are the texture size times the scale.
	Width, Height float32

	Texture *GlyphTexture
}

// TextLayout is a laid out string.
type TextLayout struct {
	// Quads holds one quad per textured glyph in string order.
	Quads []Quad

	// Lines is the number of lines.
	Lines int

	// Width is the widest line's advance, scaled.
	Width float32
}

// Layout normalizes s to NFC, ensures its glyphs and places one quad per
// glyph with a texture. The pen starts at the anchor and moves by each
// glyph's advance; '\n' starts a new line.
//
// Layout only reads cache entries.
func Layout(entry *FontEntry, s string, opts LayoutOptions) (*TextLayout, error) {
	s = norm.NFC.String(s)
	lines := strings.Split(s, "\n")

	runes := make([]rune, 0, len(s))
	for _, line := range lines {
		runes = append(runes, []rune(line)...)
	}
	entry.Ensure(runes)

	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	spacing := opts.LineSpacing
	if spacing == 0 {
		spacing = 1
	}

	m := entry.Metrics()
	ascent := float32(m.Ascent) * scale
	descent := float32(m.Descent) * scale
	lineHeight := float32(m.Height()) * scale * spacing

	baseline := opts.Y
	if va := opts.VerticalAlign; va.anchored {
		// Between the last line's lowest point and the first line's highest.
		below := float32(len(lines)-1)*lineHeight + descent
		baseline = opts.Y - below + va.ratio*(below+ascent)
	}

	cache := entry.Cache()
	layout := &TextLayout{Lines: len(lines)}
	proportion := opts.HorizontalAlign.Proportion()

	for i, line := range lines {
		entries := make([]GlyphEntry, 0, len(line))
		width := float32(0)
		for _, r := range line {
			g, err := cache.Get(r)
			if err != nil {
				return nil, fmt.Errorf("text: layout: %w", err)
			}
			entries = append(entries, g)
			width += g.Advance * scale
		}
		layout.Width = max(layout.Width, width)

		penX := opts.X - proportion*width
		penY := baseline + float32(i)*lineHeight
		for j, r := range []rune(line) {
			g := entries[j]
			if t := g.Texture; t != nil {
				layout.Quads = append(layout.Quads, Quad{
					Rune:    r,
					X:       penX + t.OriginX*scale,
					Y:       penY + t.OriginY*scale,
					Width:   float32(t.Width) * scale,
					Height:  float32(t.Height) * scale,
					Texture: t,
				})
			}
			penX += g.Advance * scale
		}
	}
	return layout, nil
}
