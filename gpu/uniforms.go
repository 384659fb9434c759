package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/kaku/text"
)

// Uniform buffer sizes in bytes. Structs are padded to 16 bytes as WGSL
// uniform layout requires.
const (
	ScreenUniformSize      = 64
	SettingsUniformSize    = 32
	SdfSettingsUniformSize = 64
)

// ScreenUniform holds the projection from pixel coordinates (origin top
// left, y down) to clip space. Matches ScreenUniform in the shaders.
type ScreenUniform struct {
	Projection [16]float32 // column major
}

// NewScreenUniform returns the projection for a render target size.
func NewScreenUniform(width, height int) ScreenUniform {
	sx := 2 / float32(width)
	sy := -2 / float32(height)
	return ScreenUniform{Projection: [16]float32{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}}
}

// Bytes returns the uniform buffer contents.
func (u ScreenUniform) Bytes() []byte {
	buf := make([]byte, ScreenUniformSize)
	putFloats(buf, u.Projection[:]...)
	return buf
}

// SettingsUniform holds per-text settings for the coverage shader.
//
// Layout:
//
//	offset  0: color         vec4<f32>
//	offset 16: text_position vec2<f32>
//	offset 24: padding
type SettingsUniform struct {
	Color    [4]float32
	Position [2]float32
}

// Bytes returns the uniform buffer contents.
func (u SettingsUniform) Bytes() []byte {
	buf := make([]byte, SettingsUniformSize)
	putFloats(buf, u.Color[:]...)
	putFloats(buf[16:], u.Position[:]...)
	return buf
}

// SdfSettingsUniform holds per-text settings for the distance field shader.
// OutlineWidth 0 disables the outline.
//
// Layout:
//
//	offset  0: color         vec4<f32>
//	offset 16: outline_color vec4<f32>
//	offset 32: text_position vec2<f32>
//	offset 40: outline_width f32
//	offset 44: sdf_radius    f32
//	offset 48: image_scale   f32
//	offset 52: padding
type SdfSettingsUniform struct {
	Color        [4]float32
	OutlineColor [4]float32
	Position     [2]float32
	OutlineWidth float32
	Radius       float32
	ImageScale   float32
}

// Bytes returns the uniform buffer contents.
func (u SdfSettingsUniform) Bytes() []byte {
	buf := make([]byte, SdfSettingsUniformSize)
	putFloats(buf, u.Color[:]...)
	putFloats(buf[16:], u.OutlineColor[:]...)
	putFloats(buf[32:], u.Position[0], u.Position[1], u.OutlineWidth, u.Radius, u.ImageScale)
	return buf
}

// InstanceSize is the byte size of one glyph instance: position and size.
const InstanceSize = 16

// InstanceBytes packs glyph quads into an instance buffer.
// Quad positions are relative to the text position in the settings uniform.
func InstanceBytes(quads []text.Quad) []byte {
	buf := make([]byte, len(quads)*InstanceSize)
	for i, q := range quads {
		putFloats(buf[i*InstanceSize:], q.X, q.Y, q.Width, q.Height)
	}
	return buf
}

// QuadVertexBytes returns the vertex buffer for the unit quad, drawn as a
// four-vertex triangle strip.
func QuadVertexBytes() []byte {
	buf := make([]byte, 32)
	putFloats(buf, 0, 0, 0, 1, 1, 0, 1, 1)
	return buf
}

// VertexLayouts returns the vertex buffer layouts of both text shaders:
// the unit quad at slot 0 and glyph instances at slot 1.
func VertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: 8,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: InstanceSize,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 2},
			},
		},
	}
}

func putFloats(buf []byte, vs ...float32) {
	for i, v := range vs {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
