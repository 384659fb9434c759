// Package kaku renders text from cached glyph textures.
//
// # Overview
//
// kaku rasterizes each glyph of a font once, at the size the font was
// loaded with, and keeps the result in a per-font glyph cache. Text is
// drawn as one textured quad per glyph. Fonts can be loaded plainly, with
// coverage masks, or with signed distance fields, which scale cleanly and
// support outlines.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/kaku"
//	    "github.com/gogpu/kaku/text"
//	)
//
//	src, _ := text.NewFontSourceFromFile("Go-Regular.ttf")
//
//	r := kaku.NewRenderer(kaku.WithTextureCreator(creator))
//	font, _ := r.LoadFontWithSdf(src, text.Pt(32), kaku.SdfSettings{Radius: 6})
//
//	t, _ := kaku.NewTextBuilder("Hello", font, [2]float32{20, 40}).
//	    Color(kaku.Color{1, 1, 1, 1}).
//	    Outlined(kaku.Color{0, 0, 0, 1}, 2).
//	    Build(r)
//
//	instances := t.InstanceBytes() // per-glyph quads
//	settings := t.UniformBytes()   // color, position, outline
//
// # Architecture
//
// The library is organized into:
//   - sdf: signed distance fields from coverage bitmaps
//   - text: font sources, glyph cache, font registry, layout
//   - atlas: packing cached textures into one image
//   - gpu: texture descriptors, uploads, shaders, uniform layouts
//
// The Renderer ties these together. Backends that draw through
// gpucontext receive glyph textures via Renderer.Texture.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Text positions are baselines unless a vertical alignment is set
package kaku
