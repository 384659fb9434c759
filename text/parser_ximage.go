package text

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/sfnt.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	return &ximageParsedFont{
		font: f,
		bufs: sync.Pool{New: func() any { return new(sfnt.Buffer) }},
	}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt.Font is safe for concurrent use as long as every goroutine brings
// its own sfnt.Buffer; buffers are pooled.
type ximageParsedFont struct {
	font *sfnt.Font
	bufs sync.Pool
}

func (f *ximageParsedFont) buffer() *sfnt.Buffer { return f.bufs.Get().(*sfnt.Buffer) }

func (f *ximageParsedFont) release(b *sfnt.Buffer) { f.bufs.Put(b) }

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	b := f.buffer()
	defer f.release(b)
	if name, err := f.font.Name(b, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	b := f.buffer()
	defer f.release(b)
	if name, err := f.font.Name(b, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) GlyphID {
	b := f.buffer()
	defer f.release(b)
	idx, err := f.font.GlyphIndex(b, r)
	if err != nil {
		return 0
	}
	return GlyphID(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	b := f.buffer()
	defer f.release(b)
	advance, err := f.font.GlyphAdvance(b, sfnt.GlyphIndex(gid), floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(advance)
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *ximageParsedFont) GlyphOutline(gid GlyphID, ppem float64) (*GlyphOutline, error) {
	b := f.buffer()
	defer f.release(b)

	segments, err := f.font.LoadGlyph(b, sfnt.GlyphIndex(gid), floatToFixed(ppem), nil)
	if err != nil {
		return nil, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	// LoadGlyph reuses the buffer's storage; copy before releasing it.
	outline := &GlyphOutline{Segments: make([]OutlineSegment, len(segments))}
	for i, seg := range segments {
		out := OutlineSegment{Op: segmentOp(seg.Op)}
		for j := range out.Op.pointCount() {
			out.Points[j] = OutlinePoint{
				X: float32(fixedToFloat64(seg.Args[j].X)),
				Y: float32(fixedToFloat64(seg.Args[j].Y)),
			}
		}
		outline.Segments[i] = out
	}
	outline.computeBounds()
	return outline, nil
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	b := f.buffer()
	defer f.release(b)

	m, err := f.font.Metrics(b, floatToFixed(ppem), font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	return FontMetrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: max(0, fixedToFloat64(m.Height)-ascent-descent),
	}
}

func segmentOp(op sfnt.SegmentOp) OutlineOp {
	switch op {
	case sfnt.SegmentOpLineTo:
		return OutlineOpLineTo
	case sfnt.SegmentOpQuadTo:
		return OutlineOpQuadTo
	case sfnt.SegmentOpCubeTo:
		return OutlineOpCubicTo
	default:
		return OutlineOpMoveTo
	}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// floatToFixed converts a pixel size to fixed.Int26_6, rounding to the
// nearest 1/64.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
