package sdf

import "image"

// Class is the role a coverage pixel plays in distance field seeding.
type Class uint8

const (
	// ClassEmpty is a pixel with zero coverage. It is never a boundary.
	ClassEmpty Class = iota

	// ClassBoundary is a pixel the glyph edge passes through: either
	// partially covered, or filled with at least one empty 8-neighbour.
	// Neighbours outside the bitmap count as empty.
	ClassBoundary

	// ClassInterior is a filled pixel with no empty 8-neighbour.
	ClassInterior
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case ClassEmpty:
		return "Empty"
	case ClassBoundary:
		return "Boundary"
	case ClassInterior:
		return "Interior"
	default:
		return "Unknown"
	}
}

// IsFilled reports whether a coverage value counts as fully covered.
// 254 is accepted as well to absorb rasterizer rounding.
func IsFilled(v uint8) bool {
	return v >= 254
}

// IsEmpty reports whether a coverage value is fully uncovered.
func IsEmpty(v uint8) bool {
	return v == 0
}

// neighbours are the 8 grid offsets around a pixel.
var neighbours = [8]image.Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Classify returns the class of the pixel at (x, y) of the coverage bitmap.
// Coordinates are relative to the bitmap's Bounds().Min.
func Classify(coverage *image.Gray, x, y int) Class {
	b := coverage.Bounds()
	w, h := b.Dx(), b.Dy()
	v := coverage.Pix[y*coverage.Stride+x]

	if IsEmpty(v) {
		return ClassEmpty
	}
	if !IsFilled(v) {
		return ClassBoundary
	}

	for _, d := range neighbours {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || ny < 0 || nx >= w || ny >= h {
			// The bitmap edge is the glyph edge too.
			return ClassBoundary
		}
		if IsEmpty(coverage.Pix[ny*coverage.Stride+nx]) {
			return ClassBoundary
		}
	}
	return ClassInterior
}
