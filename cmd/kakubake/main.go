// Command kakubake pre-renders glyphs of one or more fonts into atlas
// images with JSON manifests.
//
// Usage:
//
//	kakubake -font Go-Regular.ttf,Go-Bold.ttf -size 32 -radius 6 -out atlases
//
// For each font it writes <name>.png, a grayscale atlas of the glyph
// textures, and <name>.json, describing every glyph's advance, origin and
// atlas region. A radius of 0 bakes coverage masks instead of distance
// fields.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/kaku"
	"github.com/gogpu/kaku/atlas"
	"github.com/gogpu/kaku/text"
)

// defaultChars is printable ASCII.
const defaultChars = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

type config struct {
	fonts   []string
	size    float64
	points  bool
	radius  float64
	chars   string
	out     string
	parser  string
	maxSize int
	padding int
	workers int
}

func main() {
	var (
		fonts   = flag.String("font", "", "comma-separated font files (required)")
		size    = flag.Float64("size", 32, "font size in pixels")
		points  = flag.Bool("pt", false, "interpret -size in points")
		radius  = flag.Float64("radius", 6, "SDF radius in pixels; 0 bakes coverage masks")
		chars   = flag.String("chars", defaultChars, "characters to bake")
		out     = flag.String("out", ".", "output directory")
		parser  = flag.String("parser", "ximage", "font parser: ximage or gotext")
		maxSize = flag.Int("max", 4096, "maximum atlas side in pixels")
		padding = flag.Int("padding", 1, "gap between glyphs in the atlas")
		workers = flag.Int("workers", 0, "rasterization goroutines per font (0 = GOMAXPROCS)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	kaku.SetLogger(logger)

	if *fonts == "" {
		fmt.Fprintln(os.Stderr, "kakubake: -font is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg := config{
		fonts:   strings.Split(*fonts, ","),
		size:    *size,
		points:  *points,
		radius:  *radius,
		chars:   *chars,
		out:     *out,
		parser:  *parser,
		maxSize: *maxSize,
		padding: *padding,
		workers: *workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("bake failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	paths, err := fontPaths(cfg.fonts)
	if err != nil {
		return err
	}

	r := kaku.NewRenderer(kaku.WithWorkers(cfg.workers))

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name, err := bake(r, cfg, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Info("baked", "font", path, "out", filepath.Join(cfg.out, name+".png"))
			return nil
		})
	}
	return g.Wait()
}

// fontPaths drops blank entries and rejects fonts that would write the same
// output files.
func fontPaths(fonts []string) ([]string, error) {
	var paths []string
	seen := make(map[string]string)
	for _, path := range fonts {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		name := outputName(path)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s both write %s.png", prev, path, name)
		}
		seen[name] = path
		paths = append(paths, path)
	}
	return paths, nil
}

// outputName is the base name of the files written for a font.
func outputName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// bake renders one font and writes its atlas and manifest.
// Returns the base name of the written files.
func bake(r *kaku.Renderer, cfg config, path string) (string, error) {
	src, err := text.NewFontSourceFromFile(path, text.WithParser(cfg.parser))
	if err != nil {
		return "", err
	}

	size := text.Px(cfg.size)
	if cfg.points {
		size = text.Pt(cfg.size)
	}

	var h text.FontHandle
	if cfg.radius > 0 {
		h, err = r.LoadFontWithSdf(src, size, kaku.SdfSettings{Radius: float32(cfg.radius)})
	} else {
		h, err = r.LoadFont(src, size)
	}
	if err != nil {
		return "", err
	}
	if err := r.UpdateCharTextures(cfg.chars, h); err != nil {
		return "", err
	}
	font, err := r.Font(h)
	if err != nil {
		return "", err
	}

	a, err := atlas.Pack(font.Cache().Textures(), cfg.maxSize, cfg.padding)
	if err != nil {
		return "", err
	}

	name := outputName(path)
	if err := writePNG(filepath.Join(cfg.out, name+".png"), a); err != nil {
		return "", err
	}
	m, err := newManifest(src.Name(), font, a, cfg.chars)
	if err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(cfg.out, name+".json"), m); err != nil {
		return "", err
	}
	return name, nil
}

func writePNG(path string, a *atlas.Atlas) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, a.Image())
}

func writeJSON(path string, m *manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// manifest is the JSON description of a baked font.
type manifest struct {
	Font      string        `json:"font"`
	PixelSize float64       `json:"pixelSize"`
	SdfRadius float32       `json:"sdfRadius,omitempty"`
	Ascent    float64       `json:"ascent"`
	Descent   float64       `json:"descent"`
	LineGap   float64       `json:"lineGap"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Glyphs    []glyphRecord `json:"glyphs"`
}

type glyphRecord struct {
	Char      string  `json:"char"`
	Codepoint rune    `json:"codepoint"`
	Advance   float32 `json:"advance"`

	// Absent for glyphs with nothing to draw.
	Region *regionRecord `json:"region,omitempty"`
}

type regionRecord struct {
	OriginX float32 `json:"originX"`
	OriginY float32 `json:"originY"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	U0      float32 `json:"u0"`
	V0      float32 `json:"v0"`
	U1      float32 `json:"u1"`
	V1      float32 `json:"v1"`
}

// newManifest describes the glyphs of chars in NFC form, the form they were
// cached in.
func newManifest(name string, font *text.FontEntry, a *atlas.Atlas, chars string) (*manifest, error) {
	m := font.Metrics()
	out := &manifest{
		Font:      name,
		PixelSize: font.PixelSize(),
		Ascent:    m.Ascent,
		Descent:   m.Descent,
		LineGap:   m.LineGap,
		Width:     a.Image().Rect.Dx(),
		Height:    a.Image().Rect.Dy(),
	}
	if cfg, ok := font.SDF(); ok {
		out.SdfRadius = cfg.Radius
	}

	runes := []rune(norm.NFC.String(chars))
	slices.Sort(runes)
	runes = slices.Compact(runes)

	for _, c := range runes {
		g, err := font.Cache().Get(c)
		if err != nil {
			return nil, err
		}
		rec := glyphRecord{Char: string(c), Codepoint: c, Advance: g.Advance}
		if g.HasTexture() {
			if reg, ok := a.Region(g.Texture.ID); ok {
				rec.Region = &regionRecord{
					OriginX: g.Texture.OriginX,
					OriginY: g.Texture.OriginY,
					X:       reg.X,
					Y:       reg.Y,
					Width:   reg.Width,
					Height:  reg.Height,
					U0:      reg.U0,
					V0:      reg.V0,
					U1:      reg.U1,
					V1:      reg.V1,
				}
			}
		}
		out.Glyphs = append(out.Glyphs, rec)
	}
	return out, nil
}
