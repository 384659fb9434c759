package kaku

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/kaku/gpu"
	"github.com/gogpu/kaku/text"
)

type fakeTexture struct{ w, h int }

func (t *fakeTexture) Width() int  { return t.w }
func (t *fakeTexture) Height() int { return t.h }

type fakeCreator struct {
	mu    sync.Mutex
	count int
	fail  bool
}

func (c *fakeCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errors.New("out of memory")
	}
	c.count++
	return &fakeTexture{w: width, h: height}, nil
}

func testSource(t *testing.T) *text.FontSource {
	t.Helper()
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return src
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

// --- Renderer ---

func TestRenderer_LoadFont(t *testing.T) {
	r := NewRenderer()
	src := testSource(t)

	plain, err := r.LoadFont(src, text.Pt(12))
	if err != nil {
		t.Fatal(err)
	}
	field, err := r.LoadFontWithSdf(src, text.Px(32), SdfSettings{Radius: 4})
	if err != nil {
		t.Fatal(err)
	}

	e, _ := r.Font(plain)
	if e.PixelSize() != 16 { // 12pt at 96 dpi
		t.Errorf("PixelSize() = %v, want 16", e.PixelSize())
	}
	if r.UsesSdf(plain) || !r.UsesSdf(field) {
		t.Error("UsesSdf does not match how fonts were loaded")
	}
	if r.UsesSdf(text.FontHandle{}) {
		t.Error("unknown font reports SDF")
	}

	if _, err := r.LoadFontWithSdf(src, text.Px(32), SdfSettings{}); !errors.Is(err, text.ErrInvalidSdfConfig) {
		t.Errorf("zero radius error = %v, want ErrInvalidSdfConfig", err)
	}
	if _, err := r.LoadFont(src, text.Px(-1)); !errors.Is(err, text.ErrInvalidFontSize) {
		t.Errorf("negative size error = %v, want ErrInvalidFontSize", err)
	}
}

func TestRenderer_UpdateCharTextures(t *testing.T) {
	c := &fakeCreator{}
	r := NewRenderer(WithTextureCreator(c), WithWorkers(2))
	h, _ := r.LoadFont(testSource(t), text.Px(20))

	if err := r.UpdateCharTextures("0123456789", h); err != nil {
		t.Fatal(err)
	}
	e, _ := r.Font(h)
	if e.Cache().Len() != 10 || c.count != 10 {
		t.Errorf("cached %d, uploaded %d; want 10 and 10", e.Cache().Len(), c.count)
	}

	g, _ := e.Cache().Get('7')
	tex, ok := r.Texture(h, g.Texture.ID)
	if !ok || tex.Width() != g.Texture.Width {
		t.Errorf("Texture('7') = %v, %v", tex, ok)
	}

	if err := r.UpdateCharTextures("x", text.FontHandle{}); !errors.Is(err, text.ErrUnknownFont) {
		t.Errorf("unknown font error = %v", err)
	}
}

func TestRenderer_NoCreator(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFont(testSource(t), text.Px(20))
	if err := r.UpdateCharTextures("abc", h); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Texture(h, 0); ok {
		t.Error("Texture without a creator should report false")
	}
}

func TestRenderer_UploadError(t *testing.T) {
	r := NewRenderer(WithTextureCreator(&fakeCreator{fail: true}))
	h, _ := r.LoadFont(testSource(t), text.Px(20))
	if err := r.UpdateCharTextures("a", h); err == nil {
		t.Error("upload failure was not reported")
	}
	if _, err := NewTextBuilder("a", h, [2]float32{}).Build(r); err == nil {
		t.Error("Build did not report the upload failure")
	}
}

func TestRenderer_Resize(t *testing.T) {
	r := NewRenderer(WithScreenSize(100, 50))
	if got := r.ScreenUniform(); got != gpu.NewScreenUniform(100, 50) {
		t.Errorf("initial projection = %v", got)
	}
	r.Resize(0, 10)
	if got := r.ScreenUniform(); got != gpu.NewScreenUniform(100, 50) {
		t.Error("Resize with zero width changed the projection")
	}
	r.Resize(640, 480)
	if got := r.ScreenUniform(); got != gpu.NewScreenUniform(640, 480) {
		t.Error("Resize did not update the projection")
	}
}

// --- TextBuilder / Text ---

func TestTextBuilder_Defaults(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFont(testSource(t), text.Px(24))

	txt, err := NewTextBuilder("Hi there", h, [2]float32{30, 40}).Build(r)
	if err != nil {
		t.Fatal(err)
	}
	if txt.String() != "Hi there" || txt.Font() != h || txt.Position() != [2]float32{30, 40} {
		t.Errorf("text = %q %v %v", txt.String(), txt.Font(), txt.Position())
	}
	if txt.UsesSdf() {
		t.Error("coverage font text uses SDF")
	}
	if len(txt.Instances()) != 7 {
		t.Errorf("instances = %d, want 7 (space has no quad)", len(txt.Instances()))
	}
	if len(txt.InstanceBytes()) != 7*gpu.InstanceSize {
		t.Errorf("InstanceBytes length = %d", len(txt.InstanceBytes()))
	}

	u := txt.SettingsUniform()
	if u.Color != Black || u.Position != [2]float32{30, 40} {
		t.Errorf("SettingsUniform = %+v", u)
	}
	if _, ok := txt.SdfSettingsUniform(); ok {
		t.Error("coverage text returned SDF settings")
	}
	if len(txt.UniformBytes()) != gpu.SettingsUniformSize {
		t.Errorf("UniformBytes length = %d", len(txt.UniformBytes()))
	}
}

func TestTextBuilder_InstancesAreRelative(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFont(testSource(t), text.Px(24))

	a, _ := NewTextBuilder("move", h, [2]float32{}).Build(r)
	b, _ := NewTextBuilder("move", h, [2]float32{500, 300}).Build(r)
	for i := range a.Instances() {
		if a.Instances()[i] != b.Instances()[i] {
			t.Fatalf("instance %d depends on position", i)
		}
	}

	b.SetPosition([2]float32{1, 2})
	b.SetColor(Color{1, 0, 0, 1})
	u := b.SettingsUniform()
	if u.Position != [2]float32{1, 2} || u.Color != (Color{1, 0, 0, 1}) {
		t.Errorf("after setters: %+v", u)
	}
}

func TestTextBuilder_Sdf(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFontWithSdf(testSource(t), text.Px(32), SdfSettings{Radius: 6})
	red := Color{1, 0, 0, 1}

	txt, err := NewTextBuilder("Outline", h, [2]float32{}).
		Outlined(red, 2).
		Scale(1.5).
		Build(r)
	if err != nil {
		t.Fatal(err)
	}
	u, ok := txt.SdfSettingsUniform()
	if !ok {
		t.Fatal("SDF text has no SDF settings")
	}
	if u.Radius != 6 || u.OutlineWidth != 2 || u.OutlineColor != red || u.ImageScale != 1.5 {
		t.Errorf("SdfSettingsUniform = %+v", u)
	}
	if len(txt.UniformBytes()) != gpu.SdfSettingsUniformSize {
		t.Errorf("UniformBytes length = %d", len(txt.UniformBytes()))
	}

	txt.SetOutline(red, 0)
	if u, _ := txt.SdfSettingsUniform(); u.OutlineWidth != 0 || u.OutlineColor != (Color{}) {
		t.Errorf("zero width did not disable the outline: %+v", u)
	}
	txt.SetOutline(red, 3)
	txt.SetNoOutline()
	if u, _ := txt.SdfSettingsUniform(); u.OutlineWidth != 0 {
		t.Error("SetNoOutline kept the outline")
	}
}

func TestTextBuilder_OutlineIgnoredWithoutSdf(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFont(testSource(t), text.Px(24))
	txt, _ := NewTextBuilder("x", h, [2]float32{}).Outlined(Black, 2).Build(r)
	txt.SetOutline(Black, 4)
	if txt.UsesSdf() || len(txt.UniformBytes()) != gpu.SettingsUniformSize {
		t.Error("outline turned coverage text into SDF text")
	}
}

func TestTextBuilder_OutlinedNonPositiveWidth(t *testing.T) {
	b := NewTextBuilder("x", text.FontHandle{}, [2]float32{})
	for _, w := range []float32{0, -1, float32(math.NaN())} {
		if b.Outlined(Black, w).outline != nil {
			t.Errorf("Outlined(width=%v) kept an outline", w)
		}
	}
	if b.Outlined(Black, 1).NoOutline().outline != nil {
		t.Error("NoOutline kept the outline")
	}
}

func TestTextBuilder_FontSize(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFontWithSdf(testSource(t), text.Px(20), SdfSettings{Radius: 4})

	base, _ := NewTextBuilder("Ab", h, [2]float32{}).Build(r)
	big, _ := NewTextBuilder("Ab", h, [2]float32{}).FontSize(text.Px(40)).Scale(1.5).Build(r)
	reset, _ := NewTextBuilder("Ab", h, [2]float32{}).FontSize(text.Px(40)).DefaultFontSize().Build(r)

	if !approx(big.Width(), 3*base.Width()) {
		t.Errorf("width = %v, want 3 x %v", big.Width(), base.Width())
	}
	if u, _ := big.SdfSettingsUniform(); !approx(u.ImageScale, 3) {
		t.Errorf("ImageScale = %v, want 3", u.ImageScale)
	}
	if reset.Width() != base.Width() {
		t.Error("DefaultFontSize did not restore the loaded size")
	}
}

func TestTextBuilder_ZeroScale(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFontWithSdf(testSource(t), text.Px(24), SdfSettings{Radius: 4})

	base, _ := NewTextBuilder("zero", h, [2]float32{}).Build(r)
	for _, s := range []float32{0, float32(math.NaN())} {
		txt, err := NewTextBuilder("zero", h, [2]float32{}).Scale(s).Build(r)
		if err != nil {
			t.Fatal(err)
		}
		if txt.Width() != base.Width() {
			t.Errorf("Scale(%v): width = %v, want %v", s, txt.Width(), base.Width())
		}
		if u, _ := txt.SdfSettingsUniform(); u.ImageScale != 1 {
			t.Errorf("Scale(%v): ImageScale = %v, want 1", s, u.ImageScale)
		}
	}

	if err := base.SetScale(0); err != nil {
		t.Fatal(err)
	}
	if u, _ := base.SdfSettingsUniform(); u.ImageScale != 1 {
		t.Errorf("SetScale(0): ImageScale = %v, want 1", u.ImageScale)
	}
}

func TestTextBuilder_UnknownFont(t *testing.T) {
	r := NewRenderer()
	if _, err := NewTextBuilder("x", text.FontHandle{}, [2]float32{}).Build(r); !errors.Is(err, text.ErrUnknownFont) {
		t.Errorf("error = %v, want ErrUnknownFont", err)
	}
}

func TestText_SetText(t *testing.T) {
	c := &fakeCreator{}
	r := NewRenderer(WithTextureCreator(c))
	h, _ := r.LoadFont(testSource(t), text.Px(24))

	txt, _ := NewTextBuilder("ab", h, [2]float32{}).
		HorizontalAlign(text.AlignCenter).
		Build(r)
	if err := txt.SetText("abc\nd"); err != nil {
		t.Fatal(err)
	}
	if txt.String() != "abc\nd" || txt.Lines() != 2 || len(txt.Instances()) != 4 {
		t.Errorf("after SetText: %q, %d lines, %d instances", txt.String(), txt.Lines(), len(txt.Instances()))
	}
	if c.count != 4 {
		t.Errorf("uploaded %d textures, want 4", c.count)
	}

	// Composed text uploads the precomposed glyph.
	if err := txt.SetText("e\u0301"); err != nil {
		t.Fatal(err)
	}
	e, _ := r.Font(h)
	g, err := e.Cache().Get('é')
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Texture(h, g.Texture.ID); !ok {
		t.Error("precomposed glyph was not uploaded")
	}
}

func TestText_SetScale(t *testing.T) {
	r := NewRenderer()
	h, _ := r.LoadFont(testSource(t), text.Px(24))
	txt, _ := NewTextBuilder("scale", h, [2]float32{}).Build(r)
	w := txt.Width()

	if err := txt.SetScale(2); err != nil {
		t.Fatal(err)
	}
	if !approx(txt.Width(), 2*w) {
		t.Errorf("width = %v, want %v", txt.Width(), 2*w)
	}
}
