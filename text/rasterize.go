package text

import (
	"image"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/vector"
)

// Coverage is a rasterized glyph: one byte of coverage per pixel and the
// offset of the bitmap's top-left corner from the pen position on the
// baseline, y down.
type Coverage struct {
	Mask   *image.Gray
	Origin image.Point
}

var rasterizers = sync.Pool{New: func() any { return new(vector.Rasterizer) }}

// Rasterize renders an outline into a coverage bitmap, antialiased,
// nonzero winding. The bitmap covers the outline bounds rounded outward to
// whole pixels.
//
// Returns nil when the outline draws nothing or its bounds have no area.
func Rasterize(outline *GlyphOutline) *Coverage {
	if outline.IsEmpty() {
		return nil
	}

	b := outline.Bounds
	minX, minY := int(math.Floor(b.MinX)), int(math.Floor(b.MinY))
	maxX, maxY := int(math.Ceil(b.MaxX)), int(math.Ceil(b.MaxY))
	width, height := maxX-minX, maxY-minY
	if width <= 0 || height <= 0 {
		return nil
	}

	z := rasterizers.Get().(*vector.Rasterizer)
	defer rasterizers.Put(z)
	z.Reset(width, height)
	z.DrawOp = draw.Src

	dx, dy := float32(minX), float32(minY)
	open := false
	for _, seg := range outline.Segments {
		p := seg.Points
		switch seg.Op {
		case OutlineOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(p[0].X-dx, p[0].Y-dy)
			open = true
		case OutlineOpLineTo:
			z.LineTo(p[0].X-dx, p[0].Y-dy)
		case OutlineOpQuadTo:
			z.QuadTo(p[0].X-dx, p[0].Y-dy, p[1].X-dx, p[1].Y-dy)
		case OutlineOpCubicTo:
			z.CubeTo(p[0].X-dx, p[0].Y-dy, p[1].X-dx, p[1].Y-dy, p[2].X-dx, p[2].Y-dy)
		}
	}
	if open {
		z.ClosePath()
	}

	alpha := image.NewAlpha(z.Bounds())
	z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	// Alpha and Gray share the one-byte-per-pixel layout.
	mask := &image.Gray{Pix: alpha.Pix, Stride: alpha.Stride, Rect: alpha.Rect}
	return &Coverage{Mask: mask, Origin: image.Pt(minX, minY)}
}
