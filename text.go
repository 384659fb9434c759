package kaku

import (
	"math"

	"github.com/gogpu/kaku/gpu"
	"github.com/gogpu/kaku/text"
)

// Color is an RGBA color with components in [0, 1].
type Color [4]float32

// Black is the default text color.
var Black = Color{0, 0, 0, 1}

// outline is the outline drawn around distance field text.
type outline struct {
	color Color
	width float32
}

// newOutline returns nil when width disables the outline.
func newOutline(c Color, width float32) *outline {
	if !(width > 0) {
		return nil
	}
	return &outline{color: c, width: width}
}

// TextBuilder configures and creates a Text.
//
// Example:
//
//	t, err := kaku.NewTextBuilder("Score: 0", font, [2]float32{10, 10}).
//	    VerticalAlign(text.AlignTop).
//	    Color(kaku.Color{1, 1, 0, 1}).
//	    Build(r)
type TextBuilder struct {
	text     string
	font     text.FontHandle
	position [2]float32
	outline  *outline
	color    Color
	scale    float32
	fontSize *text.FontSize
	halign   text.HorizontalAlignment
	valign   text.VerticalAlignment
}

// NewTextBuilder creates a builder for black, unscaled, left and baseline
// aligned text without an outline.
func NewTextBuilder(s string, font text.FontHandle, position [2]float32) *TextBuilder {
	return &TextBuilder{
		text:     s,
		font:     font,
		position: position,
		color:    Black,
		scale:    1,
		halign:   text.AlignLeft,
		valign:   text.AlignBaseline,
	}
}

// Text sets the content of the text.
func (b *TextBuilder) Text(s string) *TextBuilder {
	b.text = s
	return b
}

// Font sets the font the text is drawn with.
func (b *TextBuilder) Font(font text.FontHandle) *TextBuilder {
	b.font = font
	return b
}

// Position sets the position of the text on the screen, in pixels.
func (b *TextBuilder) Position(p [2]float32) *TextBuilder {
	b.position = p
	return b
}

// HorizontalAlign sets where the position lies along each line.
func (b *TextBuilder) HorizontalAlign(a text.HorizontalAlignment) *TextBuilder {
	b.halign = a
	return b
}

// VerticalAlign sets where the position lies between the top and bottom
// of the text.
func (b *TextBuilder) VerticalAlign(a text.VerticalAlignment) *TextBuilder {
	b.valign = a
	return b
}

// Outlined adds an outline of the given color and width. A width <= 0
// turns the outline off.
//
// Only distance field fonts can be outlined, and the outline cannot be
// wider than the font's SDF radius.
func (b *TextBuilder) Outlined(c Color, width float32) *TextBuilder {
	b.outline = newOutline(c, width)
	return b
}

// NoOutline removes the outline.
func (b *TextBuilder) NoOutline() *TextBuilder {
	b.outline = nil
	return b
}

// Color sets the color of the text. The default is opaque black.
func (b *TextBuilder) Color(c Color) *TextBuilder {
	b.color = c
	return b
}

// Scale sets the scale of the text. The default is 1; zero and NaN also
// mean 1.
//
// Coverage fonts are scaled with bilinear filtering and blur when
// enlarged; distance field fonts stay sharp.
func (b *TextBuilder) Scale(s float32) *TextBuilder {
	b.scale = s
	return b
}

// FontSize draws the text at the given size instead of the size the font
// was loaded with. It multiplies with Scale.
func (b *TextBuilder) FontSize(size text.FontSize) *TextBuilder {
	b.fontSize = &size
	return b
}

// DefaultFontSize undoes FontSize.
func (b *TextBuilder) DefaultFontSize() *TextBuilder {
	b.fontSize = nil
	return b
}

// Build caches the glyphs of the text, uploads new textures and lays the
// text out.
func (b *TextBuilder) Build(r *Renderer) (*Text, error) {
	e, err := r.Font(b.font)
	if err != nil {
		return nil, err
	}

	scale := normalizeScale(b.scale)
	if b.fontSize != nil {
		scale *= float32(b.fontSize.Pixels() / e.PixelSize())
	}

	t := &Text{
		r:        r,
		font:     b.font,
		entry:    e,
		text:     b.text,
		position: b.position,
		color:    b.color,
		scale:    scale,
		halign:   b.halign,
		valign:   b.valign,
	}
	if cfg, ok := e.SDF(); ok {
		t.sdf = &sdfData{radius: cfg.Radius, outline: b.outline}
	}

	if err := t.relayout(); err != nil {
		return nil, err
	}
	return t, nil
}

type sdfData struct {
	radius  float32
	outline *outline
}

// Text is a laid out piece of text ready to draw.
//
// A Text holds per-glyph instances and the settings uniform for the text
// shaders. Quads are relative to the text position, so moving or
// recoloring the text changes only the uniform.
//
// Text is not safe for concurrent use.
type Text struct {
	r     *Renderer
	font  text.FontHandle
	entry *text.FontEntry

	text     string
	position [2]float32
	color    Color
	scale    float32
	halign   text.HorizontalAlignment
	valign   text.VerticalAlignment
	sdf      *sdfData

	layout *text.TextLayout
}

func (t *Text) relayout() error {
	// Layout caches the normalized glyphs; upload afterwards.
	l, err := text.Layout(t.entry, t.text, text.LayoutOptions{
		Scale:           t.scale,
		HorizontalAlign: t.halign,
		VerticalAlign:   t.valign,
	})
	if err != nil {
		return err
	}
	if err := t.r.upload(t.font, t.entry); err != nil {
		return err
	}
	t.layout = l
	return nil
}

// String returns the content of the text.
func (t *Text) String() string { return t.text }

// Font returns the font the text is drawn with.
func (t *Text) Font() text.FontHandle { return t.font }

// Position returns the position of the text.
func (t *Text) Position() [2]float32 { return t.position }

// UsesSdf reports whether the text is drawn with the distance field shader.
func (t *Text) UsesSdf() bool { return t.sdf != nil }

// Instances returns one quad per visible glyph, relative to the text
// position.
func (t *Text) Instances() []text.Quad { return t.layout.Quads }

// Width returns the width of the widest line in pixels.
func (t *Text) Width() float32 { return t.layout.Width }

// Lines returns the number of lines.
func (t *Text) Lines() int { return t.layout.Lines }

// InstanceBytes returns the instance buffer contents.
func (t *Text) InstanceBytes() []byte { return gpu.InstanceBytes(t.layout.Quads) }

// SettingsUniform returns the coverage shader settings.
func (t *Text) SettingsUniform() gpu.SettingsUniform {
	return gpu.SettingsUniform{Color: t.color, Position: t.position}
}

// SdfSettingsUniform returns the distance field shader settings.
// Returns false if the font does not use distance fields.
func (t *Text) SdfSettingsUniform() (gpu.SdfSettingsUniform, bool) {
	if t.sdf == nil {
		return gpu.SdfSettingsUniform{}, false
	}
	u := gpu.SdfSettingsUniform{
		Color:      t.color,
		Position:   t.position,
		Radius:     t.sdf.radius,
		ImageScale: t.scale,
	}
	if o := t.sdf.outline; o != nil {
		u.OutlineColor = o.color
		u.OutlineWidth = o.width
	}
	return u, true
}

// UniformBytes returns the settings uniform for the shader this text is
// drawn with.
func (t *Text) UniformBytes() []byte {
	if u, ok := t.SdfSettingsUniform(); ok {
		return u.Bytes()
	}
	return t.SettingsUniform().Bytes()
}

// SetText changes the content of the text, caching any new glyphs.
// On error the text is unchanged.
func (t *Text) SetText(s string) error {
	old := t.text
	t.text = s
	if err := t.relayout(); err != nil {
		t.text = old
		return err
	}
	return nil
}

// SetScale changes the scale of the text. Zero and NaN mean 1.
func (t *Text) SetScale(s float32) error {
	old := t.scale
	t.scale = normalizeScale(s)
	if err := t.relayout(); err != nil {
		t.scale = old
		return err
	}
	return nil
}

// SetPosition moves the text.
func (t *Text) SetPosition(p [2]float32) { t.position = p }

// SetColor changes the color of the text.
func (t *Text) SetColor(c Color) { t.color = c }

// SetOutline sets the outline. A width <= 0 turns it off. Does nothing
// for coverage fonts.
func (t *Text) SetOutline(c Color, width float32) {
	if t.sdf != nil {
		t.sdf.outline = newOutline(c, width)
	}
}

// SetNoOutline removes the outline, if there was one.
func (t *Text) SetNoOutline() {
	if t.sdf != nil {
		t.sdf.outline = nil
	}
}

// normalizeScale maps the unset scale to 1 so that layout and the shader's
// image scale agree.
func normalizeScale(s float32) float32 {
	if s == 0 || math.IsNaN(float64(s)) {
		return 1
	}
	return s
}
