package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/kaku/text"
)

// TextureDescriptor describes the GPU texture for a cached glyph texture.
// Glyph textures are single-channel, sampled and written once.
func TextureDescriptor(tex *text.GlyphTexture) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label:         fmt.Sprintf("kaku glyph texture %d", tex.ID),
		Size:          gputypes.NewExtent2D(uint32(tex.Width), uint32(tex.Height)), //nolint:gosec // sizes are positive
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// DataLayout describes the layout of tex.Pixels for a texture write.
func DataLayout(tex *text.GlyphTexture) gputypes.TextureDataLayout {
	return gputypes.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tex.Pixels.Stride), //nolint:gosec // stride is positive
		RowsPerImage: uint32(tex.Height),        //nolint:gosec // sizes are positive
	}
}

// SamplerDescriptor returns the sampler for glyph textures.
//
// Coverage masks magnify with nearest filtering so small text stays crisp.
// Distance fields need linear filtering in both directions for the edge
// to be reconstructed between texels.
func SamplerDescriptor(sdf bool) gputypes.SamplerDescriptor {
	d := gputypes.DefaultSamplerDescriptor()
	if sdf {
		d.Label = "kaku sdf glyph sampler"
		d.MagFilter = gputypes.FilterModeLinear
		d.MinFilter = gputypes.FilterModeLinear
		return d
	}
	d.Label = "kaku glyph sampler"
	d.MagFilter = gputypes.FilterModeNearest
	d.MinFilter = gputypes.FilterModeLinear
	return d
}
