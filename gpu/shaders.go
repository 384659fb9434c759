package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources.

//go:embed shaders/text.wgsl
var textShaderSource string

//go:embed shaders/sdf_text.wgsl
var sdfTextShaderSource string

// Shader entry points shared by both programs.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// ShaderSource returns the WGSL source of the coverage or distance field
// text shader.
func ShaderSource(sdf bool) string {
	if sdf {
		return sdfTextShaderSource
	}
	return textShaderSource
}

// compiled caches SPIR-V per shader; index 1 is the distance field shader.
var compiled [2]struct {
	once  sync.Once
	spirv []byte
	err   error
}

// CompileShader compiles a text shader to SPIR-V.
// The result is cached; callers must not modify the returned slice.
func CompileShader(sdf bool) ([]byte, error) {
	i := 0
	if sdf {
		i = 1
	}
	c := &compiled[i]
	c.once.Do(func() {
		c.spirv, c.err = naga.Compile(ShaderSource(sdf))
		if c.err != nil {
			c.err = fmt.Errorf("gpu: compile text shader (sdf=%v): %w", sdf, c.err)
			return
		}
		slogger().Debug("compiled text shader", "sdf", sdf, "bytes", len(c.spirv))
	})
	return c.spirv, c.err
}

// CompileShaderWords compiles a text shader and returns the SPIR-V as
// 32-bit words, the form most backends accept.
func CompileShaderWords(sdf bool) ([]uint32, error) {
	spirv, err := CompileShader(sdf)
	if err != nil {
		return nil, err
	}
	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}
