package text

import "math"

// OutlinePoint is a point of a glyph outline in pixels, y axis down.
type OutlinePoint struct {
	X, Y float32
}

// OutlineOp is the type of path operation.
type OutlineOp uint8

const (
	// OutlineOpMoveTo starts a new contour.
	OutlineOpMoveTo OutlineOp = iota

	// OutlineOpLineTo draws a line to the target point.
	OutlineOpLineTo

	// OutlineOpQuadTo draws a quadratic bezier curve.
	OutlineOpQuadTo

	// OutlineOpCubicTo draws a cubic bezier curve.
	OutlineOpCubicTo
)

// String returns a string representation of the operation.
func (op OutlineOp) String() string {
	switch op {
	case OutlineOpMoveTo:
		return "MoveTo"
	case OutlineOpLineTo:
		return "LineTo"
	case OutlineOpQuadTo:
		return "QuadTo"
	case OutlineOpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// pointCount returns how many entries of OutlineSegment.Points op uses.
func (op OutlineOp) pointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// OutlineSegment represents a segment of a glyph outline.
type OutlineSegment struct {
	// Op is the segment operation type.
	Op OutlineOp

	// Points contains the control and end points for this segment.
	// - MoveTo: Points[0] is the target point
	// - LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]OutlinePoint
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// GlyphOutline is the vector outline of a glyph scaled to pixels.
// The origin is the pen position on the baseline; y grows downward.
type GlyphOutline struct {
	// Segments is the list of path segments that make up the outline.
	Segments []OutlineSegment

	// Bounds encloses every point of every segment, control points
	// included.
	Bounds Rect
}

// IsEmpty reports whether the outline draws nothing: no segments, or only
// MoveTo segments.
func (o *GlyphOutline) IsEmpty() bool {
	if o == nil {
		return true
	}
	for _, seg := range o.Segments {
		if seg.Op != OutlineOpMoveTo {
			return false
		}
	}
	return true
}

// computeBounds sets Bounds from the segment points.
func (o *GlyphOutline) computeBounds() {
	if len(o.Segments) == 0 {
		o.Bounds = Rect{}
		return
	}
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, seg := range o.Segments {
		for _, p := range seg.Points[:seg.Op.pointCount()] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	o.Bounds = Rect{
		MinX: float64(minX),
		MinY: float64(minY),
		MaxX: float64(maxX),
		MaxY: float64(maxY),
	}
}
