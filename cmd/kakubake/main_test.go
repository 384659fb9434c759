package main

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun_BakesEveryFont(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	cfg := config{
		fonts: []string{
			writeFont(t, dir, "regular.ttf", goregular.TTF),
			writeFont(t, dir, "bold.ttf", gobold.TTF),
		},
		size:    24,
		radius:  4,
		chars:   "Hello, kaku!",
		out:     out,
		parser:  "ximage",
		maxSize: 1024,
		padding: 1,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := run(context.Background(), cfg, logger); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"regular", "bold"} {
		f, err := os.Open(filepath.Join(out, name+".png"))
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s.png: %v", name, err)
		}

		data, err := os.ReadFile(filepath.Join(out, name+".json"))
		if err != nil {
			t.Fatal(err)
		}
		var m manifest
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("%s.json: %v", name, err)
		}

		if m.Width != img.Bounds().Dx() || m.Height != img.Bounds().Dy() {
			t.Errorf("%s: manifest size %dx%d, image %v", name, m.Width, m.Height, img.Bounds())
		}
		if m.SdfRadius != 4 || m.PixelSize != 24 {
			t.Errorf("%s: radius %v size %v", name, m.SdfRadius, m.PixelSize)
		}
		// H e l o , space k a u !
		if len(m.Glyphs) != 10 {
			t.Errorf("%s: %d glyphs, want 10", name, len(m.Glyphs))
		}
		for _, g := range m.Glyphs {
			if g.Char == " " {
				if g.Region != nil {
					t.Errorf("%s: space has a region", name)
				}
				continue
			}
			if g.Region == nil || g.Region.X+g.Region.Width > m.Width {
				t.Errorf("%s: %q region = %+v", name, g.Char, g.Region)
			}
		}
	}
}

func TestRun_ManifestUsesNFC(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		fonts:   []string{writeFont(t, dir, "r.ttf", goregular.TTF)},
		size:    24,
		radius:  4,
		chars:   "e\u0301",
		out:     dir,
		maxSize: 256,
		padding: 1,
	}
	if err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "r.json"))
	if err != nil {
		t.Fatal(err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Glyphs) != 1 || m.Glyphs[0].Codepoint != '\u00e9' {
		t.Fatalf("glyphs = %+v, want only U+00E9", m.Glyphs)
	}
	if m.Glyphs[0].Region == nil {
		t.Error("composed glyph has no atlas region")
	}
}

func TestRun_DuplicateOutputNames(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	a := writeFont(t, dir, "regular.ttf", goregular.TTF)
	b := writeFont(t, sub, "regular.otf", goregular.TTF)

	for _, fonts := range [][]string{{a, a}, {a, b}} {
		cfg := config{
			fonts:   fonts,
			size:    12,
			chars:   "a",
			out:     filepath.Join(dir, "out"),
			maxSize: 256,
		}
		if err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
			t.Errorf("fonts %v: duplicate output names were accepted", fonts)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "regular.png")); err == nil {
		t.Error("an atlas was written despite the conflict")
	}
}

func TestRun_MissingFont(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		fonts:   []string{filepath.Join(dir, "missing.ttf")},
		size:    12,
		chars:   "a",
		out:     dir,
		maxSize: 256,
	}
	err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err == nil {
		t.Fatal("missing font did not fail")
	}
}

func TestRun_AtlasTooSmall(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		fonts:   []string{writeFont(t, dir, "regular.ttf", goregular.TTF)},
		size:    48,
		radius:  8,
		chars:   defaultChars,
		out:     dir,
		maxSize: 64,
		padding: 1,
	}
	if err := run(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Fatal("expected the atlas to overflow")
	}
}
