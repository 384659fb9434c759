package sdf

import (
	"image"
	"math"
)

// Field is a padded, quantized signed distance field.
type Field struct {
	// Image holds one byte per pixel. Decode maps a byte back to a distance
	// in [-Radius, +Radius].
	Image *image.Gray

	// Padding is the number of pixels added on every side of the coverage
	// bitmap. The glyph origin of the field is the coverage origin minus
	// Padding on both axes.
	Padding int

	// Radius is the spread the field was built with.
	Radius float32
}

// Width returns the field width in pixels.
func (f *Field) Width() int { return f.Image.Rect.Dx() }

// Height returns the field height in pixels.
func (f *Field) Height() int { return f.Image.Rect.Dy() }

// Decode converts a stored byte to a signed distance in pixels.
func (f *Field) Decode(v uint8) float32 {
	return Decode(v, f.Radius)
}

// DistanceAt returns the decoded distance at (x, y), relative to the field's
// top-left corner.
func (f *Field) DistanceAt(x, y int) float32 {
	return f.Decode(f.Image.Pix[y*f.Image.Stride+x])
}

// Encode quantizes a signed distance to a byte:
// -radius maps to 0, 0 to 127, +radius to 255.
// The result is truncated and saturated to the byte range.
func Encode(d, radius float32) uint8 {
	v := (d/(2*radius) + 0.5) * 255
	switch {
	case math.IsNaN(float64(v)), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Decode is the inverse of Encode, up to quantization.
func Decode(v uint8, radius float32) float32 {
	return (float32(v)/255 - 0.5) * 2 * radius
}

// Build computes the signed distance field of a coverage bitmap.
//
// Coverage values use the full byte range: 0 is outside the glyph, 254 and
// 255 are inside, anything in between is an antialiased edge pixel whose
// value estimates how much of the pixel the glyph covers.
//
// The configuration must be valid; see Config.Validate.
func Build(coverage *image.Gray, cfg Config) *Field {
	radius := cfg.Radius
	pad := cfg.Padding()

	b := coverage.Bounds()
	w, h := b.Dx(), b.Dy()
	fw, fh := w+2*pad, h+2*pad

	out := image.NewGray(image.Rect(0, 0, fw, fh))
	far := Encode(radius, radius)
	for i := range out.Pix {
		out.Pix[i] = far
	}

	field := &Field{Image: out, Padding: pad, Radius: radius}
	if w == 0 || h == 0 {
		return field
	}

	cov := func(x, y int) uint8 { return coverage.Pix[y*coverage.Stride+x] }

	queue := newFrontier(fw * fh)
	visited := make([]bool, fw*fh)

	// Seed boundary pixels, saturate interior ones.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := (y+pad)*fw + (x + pad)
			switch Classify(coverage, x, y) {
			case ClassBoundary:
				correction := 0.5 - float32(cov(x, y))/255
				out.Pix[p] = Encode(correction, radius)
				queue.push(p, seedKey{dist: correction, interior: true})
				visited[p] = true
			case ClassInterior:
				out.Pix[p] = Encode(-radius, radius)
			}
		}
	}

	for queue.Len() > 0 {
		p, key := queue.pop()
		out.Pix[p] = Encode(key.distance(), radius)

		px, py := p%fw, p/fw
		for _, d := range neighbours {
			nx, ny := px+d.X, py+d.Y
			if nx < 0 || ny < 0 || nx >= fw || ny >= fh {
				continue
			}
			n := ny*fw + nx
			if visited[n] {
				continue
			}

			// Pixels outside the coverage bitmap are exterior.
			interior := false
			if ox, oy := nx-pad, ny-pad; ox >= 0 && oy >= 0 && ox < w && oy < h {
				v := cov(ox, oy)
				switch {
				case IsEmpty(v):
				case IsFilled(v):
					interior = true
				default:
					// Partially covered pixels are seeds of their own.
					continue
				}
			}

			candidate := seedKey{
				vx:       key.vx + float32(d.X),
				vy:       key.vy + float32(d.Y),
				dist:     key.dist,
				interior: interior,
			}
			if float32(math.Abs(float64(candidate.distance()))) >= radius {
				continue
			}
			queue.push(n, candidate)
		}

		visited[p] = true
	}

	return field
}
