// Package gpu connects glyph caches to a graphics backend.
//
// The package never talks to a device directly. It produces the
// descriptors, shader modules and uniform bytes a backend needs, and
// uploads cached glyph textures through a gpucontext.TextureCreator.
//
// # Textures
//
// Every cached glyph texture is a single-channel image. TextureDescriptor
// and DataLayout describe it as an R8Unorm 2D texture; SamplerDescriptor
// returns the filtering used for coverage masks or distance fields.
//
//	up := gpu.NewUploader(creator)
//	n, err := up.Upload(handle, entry.Cache())
//
// Upload only sends textures added since the previous call, so it can be
// run after every Ensure.
//
// # Shaders
//
// Two WGSL programs are embedded: a coverage shader and a distance field
// shader with outline support. CompileShader turns either into SPIR-V with
// naga.
//
// # Bind groups
//
//	group 0: ScreenUniform (projection)
//	group 1: glyph texture + sampler
//	group 2: SettingsUniform or SdfSettingsUniform
package gpu
