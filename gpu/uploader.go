package gpu

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/kaku/text"
)

// ErrNilCreator is returned by Upload when the uploader has no texture creator.
var ErrNilCreator = errors.New("gpu: nil texture creator")

// Uploader sends glyph textures to a graphics backend.
//
// Textures are uploaded once and kept for the lifetime of the uploader,
// indexed by font and texture ID. Uploader is safe for concurrent use.
type Uploader struct {
	creator gpucontext.TextureCreator

	mu       sync.RWMutex
	textures map[text.FontHandle][]gpucontext.Texture
}

// NewUploader creates an uploader backed by the given texture creator.
func NewUploader(creator gpucontext.TextureCreator) *Uploader {
	return &Uploader{
		creator:  creator,
		textures: make(map[text.FontHandle][]gpucontext.Texture),
	}
}

// Upload creates backend textures for every texture in cache that has not
// been uploaded for this font yet, in texture ID order.
// Returns the number of textures created.
//
// On error, textures created before the failure are kept and the next
// call resumes from the failed texture.
func (u *Uploader) Upload(handle text.FontHandle, cache *text.GlyphCache) (int, error) {
	if u.creator == nil {
		return 0, ErrNilCreator
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	done := u.textures[handle]
	all := cache.Textures()

	n := 0
	for _, tex := range all[len(done):] {
		rgba := expandGray(tex)
		gt, err := u.creator.NewTextureFromRGBA(tex.Width, tex.Height, rgba)
		if err != nil {
			u.textures[handle] = done
			return n, fmt.Errorf("gpu: upload texture %d of %s: %w", tex.ID, handle, err)
		}
		done = append(done, gt)
		n++
	}
	u.textures[handle] = done

	if n > 0 {
		slogger().Debug("uploaded glyph textures",
			"font", handle.String(),
			"count", n,
			"duration", time.Since(start))
	}
	return n, nil
}

// Texture returns the backend texture for a glyph texture of a font.
func (u *Uploader) Texture(handle text.FontHandle, id text.TextureID) (gpucontext.Texture, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	list := u.textures[handle]
	if int(id) >= len(list) {
		return nil, false
	}
	return list[id], true
}

// Len returns the number of textures uploaded for a font.
func (u *Uploader) Len(handle text.FontHandle) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.textures[handle])
}

// expandGray converts a single-channel texture to tightly packed RGBA,
// replicating the value into every channel.
func expandGray(tex *text.GlyphTexture) []byte {
	out := make([]byte, tex.Width*tex.Height*4)
	img := tex.Pixels
	for y := 0; y < tex.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+tex.Width]
		for x, v := range row {
			i := (y*tex.Width + x) * 4
			out[i] = v
			out[i+1] = v
			out[i+2] = v
			out[i+3] = v
		}
	}
	return out
}
