// Package sdf converts antialiased glyph coverage bitmaps into single-channel
// signed distance fields.
//
// A distance field stores, for every pixel, the distance to the nearest glyph
// edge: negative inside the glyph, positive outside, clamped to the configured
// radius. Sampled with bilinear filtering in a shader, it keeps glyph edges
// sharp under scaling and allows outlines and glows up to the radius in width.
//
// # How it works
//
//  1. Every pixel of the coverage bitmap is classified as empty, boundary or
//     interior (see [Classify]).
//  2. Boundary pixels seed a priority queue. The antialiasing value of each
//     seed gives a sub-pixel correction of where the edge really lies.
//  3. A bounded Dijkstra relaxation propagates displacement vectors from the
//     seeds to their neighbours, keeping for every pixel the seed with the
//     smallest Euclidean distance. Propagation stops at the radius.
//  4. Distances are quantized to bytes: -radius maps to 0, +radius to 255.
//
// The output canvas is larger than the input by ceil(radius) pixels on each
// side so effects can extend past the glyph's own bounds.
//
// # Usage
//
//	cfg := sdf.Config{Radius: 6}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	field := sdf.Build(coverage, cfg)
//	// field.Image holds the padded distance field,
//	// field.Padding the extra border on each side.
//
// # WGSL Shader Example
//
//	let d = (textureSample(sdf_tex, samp, uv).r - 0.5) * 2.0 * radius;
//	let alpha = clamp(0.5 - d / scale, 0.0, 1.0);
package sdf
