package text

import "fmt"

// FontSize is a font size in points or pixels.
type FontSize struct {
	value  float64
	points bool
}

// Pt returns a size in points. One point is 96/72 pixels.
func Pt(v float64) FontSize { return FontSize{value: v, points: true} }

// Px returns a size in pixels.
func Px(v float64) FontSize { return FontSize{value: v} }

// Pixels returns the size in pixels.
func (s FontSize) Pixels() float64 {
	if s.points {
		return s.value * 96 / 72
	}
	return s.value
}

// String implements fmt.Stringer.
func (s FontSize) String() string {
	if s.points {
		return fmt.Sprintf("%gpt", s.value)
	}
	return fmt.Sprintf("%gpx", s.value)
}
