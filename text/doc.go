// Package text rasterizes glyphs and caches them per font.
//
// The pipeline follows a separation of concerns:
//
//   - FontSource: heavyweight, shared font resource (parses TTF/OTF files)
//   - FontRegistry: owns fonts loaded at a pixel size, each with a GlyphCache
//   - GlyphCache: codepoint to advance and texture, filled in batches
//   - FontParser: pluggable font parsing backend (default: golang.org/x/image)
//
// # Example usage
//
//	source, err := text.NewFontSourceFromFile("Roboto-Regular.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg := text.NewFontRegistry()
//	h, err := reg.LoadWithSdf(source, 32, 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	font, _ := reg.Get(h)
//	layout, err := text.Layout(font, "Hello, kaku!", text.LayoutOptions{X: 10, Y: 40})
//
// # Batch fills
//
// FontEntry.Ensure computes every missing glyph of a string in parallel
// and commits them under a single write lock. Readers never wait for
// rasterization and never see half of a batch. Texture IDs are assigned in
// ascending codepoint order, so the cache contents do not depend on
// scheduling.
//
// # Pluggable Parser Backend
//
// Two parsers are registered: "ximage" (golang.org/x/image/font/sfnt, the
// default) and "gotext" (github.com/go-text/typesetting). Custom parsers
// can be registered for alternative implementations:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
package text
