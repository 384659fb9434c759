package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// gotextParser implements FontParser using github.com/go-text/typesetting.
type gotextParser struct{}

// Parse implements FontParser.Parse.
func (p *gotextParser) Parse(data []byte) (ParsedFont, error) {
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}
	ft, err := font.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	numGlyphs := 0
	if raw, err := ld.RawTable(ot.MustNewTag("maxp")); err == nil {
		if maxp, _, err := tables.ParseMaxp(raw); err == nil {
			numGlyphs = int(maxp.NumGlyphs)
		}
	}

	f := &gotextParsedFont{
		font:      ft,
		family:    ft.Describe().Family,
		numGlyphs: numGlyphs,
	}
	f.faces.New = func() any { return font.NewFace(ft) }
	return f, nil
}

// gotextParsedFont implements ParsedFont using go-text font.Font.
//
// font.Font is read-only and safe for concurrent use, unlike font.Face,
// which caches lookups. Faces are pooled so each call gets its own.
type gotextParsedFont struct {
	font      *font.Font
	faces     sync.Pool
	family    string
	numGlyphs int
}

func (f *gotextParsedFont) face() *font.Face { return f.faces.Get().(*font.Face) }

func (f *gotextParsedFont) release(face *font.Face) { f.faces.Put(face) }

// scale converts font units to pixels at ppem.
func (f *gotextParsedFont) scale(ppem float64) float64 {
	upem := f.font.Upem()
	if upem == 0 {
		return 0
	}
	return ppem / float64(upem)
}

// Name implements ParsedFont.Name.
func (f *gotextParsedFont) Name() string { return f.family }

// FullName implements ParsedFont.FullName.
// go-text only exposes the family name.
func (f *gotextParsedFont) FullName() string { return "" }

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *gotextParsedFont) NumGlyphs() int { return f.numGlyphs }

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *gotextParsedFont) UnitsPerEm() int { return int(f.font.Upem()) }

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *gotextParsedFont) GlyphIndex(r rune) GlyphID {
	gid, ok := f.font.NominalGlyph(r)
	if !ok || gid > 0xFFFF {
		return 0
	}
	return GlyphID(gid)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *gotextParsedFont) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	face := f.face()
	defer f.release(face)
	return float64(face.HorizontalAdvance(font.GID(gid))) * f.scale(ppem)
}

// GlyphOutline implements ParsedFont.GlyphOutline.
func (f *gotextParsedFont) GlyphOutline(gid GlyphID, ppem float64) (*GlyphOutline, error) {
	face := f.face()
	defer f.release(face)

	data, ok := face.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok {
		if int(gid) >= f.numGlyphs && f.numGlyphs > 0 {
			return nil, fmt.Errorf("text: load glyph %d: index out of range", gid)
		}
		// Bitmap, SVG and color glyphs have no vector outline.
		return &GlyphOutline{}, nil
	}

	s := float32(f.scale(ppem))
	outline := &GlyphOutline{Segments: make([]OutlineSegment, len(data.Segments))}
	for i, seg := range data.Segments {
		out := OutlineSegment{Op: gotextSegmentOp(seg.Op)}
		for j := range out.Op.pointCount() {
			out.Points[j] = OutlinePoint{
				X: seg.Args[j].X * s,
				Y: -seg.Args[j].Y * s, // go-text grows up
			}
		}
		outline.Segments[i] = out
	}
	outline.computeBounds()
	return outline, nil
}

// Metrics implements ParsedFont.Metrics.
func (f *gotextParsedFont) Metrics(ppem float64) FontMetrics {
	face := f.face()
	defer f.release(face)

	ext, ok := face.FontHExtents()
	if !ok {
		return FontMetrics{}
	}
	s := f.scale(ppem)
	return FontMetrics{
		Ascent:  float64(ext.Ascender) * s,
		Descent: -float64(ext.Descender) * s,
		LineGap: float64(ext.LineGap) * s,
	}
}

func gotextSegmentOp(op ot.SegmentOp) OutlineOp {
	switch op {
	case ot.SegmentOpLineTo:
		return OutlineOpLineTo
	case ot.SegmentOpQuadTo:
		return OutlineOpQuadTo
	case ot.SegmentOpCubeTo:
		return OutlineOpCubicTo
	default:
		return OutlineOpMoveTo
	}
}
