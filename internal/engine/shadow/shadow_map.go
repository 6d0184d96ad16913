// Package shadow renders the sun's depth map and computes the light matrix
// used to sample it.
package shadow

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrIncomplete is returned when the driver rejects the depth framebuffer.
var ErrIncomplete = errors.New("shadow framebuffer incomplete")

// DefaultResolution is used when NewMap gets a non-positive size.
const DefaultResolution = 2048

// Map is a square depth-only framebuffer sampled with sampler2DShadow.
type Map struct {
	FBO          uint32
	DepthTexture uint32
	Resolution   int32

	viewport [4]int32 // saved by Bind
}

// NewMap creates a shadow map of resolution × resolution texels.
func NewMap(resolution int32) (*Map, error) {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	sm := &Map{Resolution: resolution}
	sm.DepthTexture = depthTexture(resolution)

	gl.GenFramebuffers(1, &sm.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, sm.DepthTexture, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		sm.Destroy()
		return nil, fmt.Errorf("%w: %dx%d status 0x%x", ErrIncomplete, resolution, resolution, status)
	}
	return sm, nil
}

// depthTexture allocates a comparison-mode depth texture. Lookups outside
// the light frustum hit the white border and read as lit.
func depthTexture(res int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, res, res, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	params := [][2]int32{
		{gl.TEXTURE_MIN_FILTER, gl.LINEAR},
		{gl.TEXTURE_MAG_FILTER, gl.LINEAR},
		{gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER},
		{gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER},
		{gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE},
		{gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL},
	}
	for _, p := range params {
		gl.TexParameteri(gl.TEXTURE_2D, uint32(p[0]), p[1])
	}
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Bind starts the depth pass. Front faces are culled to keep acne off lit
// surfaces; Unbind restores back-face culling and the viewport.
func (sm *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &sm.viewport[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, sm.FBO)
	gl.Viewport(0, 0, sm.Resolution, sm.Resolution)
	gl.Clear(gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.FRONT)
}

// Unbind ends the depth pass and rebinds target, the framebuffer the scene
// pass draws into.
func (sm *Map) Unbind(target uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, target)
	v := sm.viewport
	gl.Viewport(v[0], v[1], v[2], v[3])
	gl.CullFace(gl.BACK)
}

// BindTexture binds the depth texture to unit for sampling.
func (sm *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(unit)
	gl.BindTexture(gl.TEXTURE_2D, sm.DepthTexture)
}

// IsValid reports whether the map holds live GPU objects. A nil map is not valid.
func (sm *Map) IsValid() bool {
	return sm != nil && sm.FBO != 0 && sm.DepthTexture != 0
}

// Destroy releases the GPU objects.
func (sm *Map) Destroy() {
	if sm.FBO != 0 {
		gl.DeleteFramebuffers(1, &sm.FBO)
	}
	if sm.DepthTexture != 0 {
		gl.DeleteTextures(1, &sm.DepthTexture)
	}
	sm.FBO, sm.DepthTexture = 0, 0
}
