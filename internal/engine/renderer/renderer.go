// Package renderer draws a scene with OpenGL into an offscreen framebuffer.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/trailhead/internal/engine/camera"
	"github.com/Faultbox/trailhead/internal/engine/framebuffer"
	"github.com/Faultbox/trailhead/internal/engine/mesh"
	"github.com/Faultbox/trailhead/internal/engine/scene"
	"github.com/Faultbox/trailhead/internal/engine/shader"
	"github.com/Faultbox/trailhead/internal/engine/shadow"
	"github.com/Faultbox/trailhead/internal/logger"
)

// Config holds renderer settings.
type Config struct {
	Width            int32
	Height           int32
	Shadows          bool
	ShadowResolution int32
}

// shadowFocusScale sizes the follow shadow frustum relative to camera distance.
const shadowFocusScale = 4

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer owns every GL object the scene needs.
type Renderer struct {
	lit    *shader.Program
	depth  *shader.Program
	lines  *shader.Program
	target *framebuffer.Framebuffer
	shadow *shadow.Map

	meshes  map[*mesh.Mesh]*gpuMesh
	lineVAO uint32
	lineVBO uint32

	lightSpace mgl32.Mat4
	log        *zap.Logger
}

// New initializes GL function pointers and creates the programs and render
// target. It must run on the thread owning the GL context.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	r := &Renderer{
		meshes: make(map[*mesh.Mesh]*gpuMesh),
		log:    logger.Named("renderer"),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	var err error
	if r.lit, err = shader.New("lit", litVertex, litFragment); err != nil {
		return nil, err
	}
	if r.depth, err = shader.New("depth", depthVertex, depthFragment); err != nil {
		r.Close()
		return nil, err
	}
	if r.lines, err = shader.New("lines", lineVertex, lineFragment); err != nil {
		r.Close()
		return nil, err
	}
	if r.target, err = framebuffer.New(cfg.Width, cfg.Height); err != nil {
		r.Close()
		return nil, err
	}

	if cfg.Shadows {
		sm, err := shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			// the scene still renders unshadowed
			r.log.Warn("shadows disabled", zap.Error(err))
		} else {
			r.shadow = sm
		}
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return r, nil
}

// Resize matches the render target to the viewport.
func (r *Renderer) Resize(width, height int32) {
	r.target.Resize(width, height)
}

// Size returns the render target size.
func (r *Renderer) Size() (width, height int32) {
	return r.target.Size()
}

// Texture returns the color texture holding the last rendered frame.
func (r *Renderer) Texture() uint32 {
	return r.target.ColorTexture()
}

// ReadPixels returns the last frame as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

// Render draws sc as seen by cam.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.Rig) {
	restore := r.target.BindWithViewport()
	defer restore()

	shadows := sc.ShadowsEnabled && r.shadow.IsValid()
	if shadows {
		r.lightSpace = shadow.FollowLightMatrix(sc.Sun.Direction(), sc.Bounds(), cam.Target, cam.Distance*shadowFocusScale)
		r.shadowPass(sc)
		r.shadow.Unbind(r.target.FBO())
	}

	r.target.Clear(sc.SkyColor)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)

	w, h := r.target.Size()
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(float32(w) / float32(h))

	r.lit.Use()
	r.lit.SetMat4("uView", view)
	r.lit.SetMat4("uProj", proj)
	r.lit.SetVec3("uLightDir", sc.Sun.Direction())
	r.lit.SetVec3("uAmbient", sc.Sun.Ambient)
	r.lit.SetVec3("uDiffuse", sc.Sun.Diffuse)
	r.lit.SetMat4("uLightSpace", r.lightSpace)
	r.lit.SetInt("uShadowMap", 1)
	if shadows {
		r.lit.SetInt("uShadows", 1)
		r.shadow.BindTexture(gl.TEXTURE1)
	} else {
		r.lit.SetInt("uShadows", 0)
	}

	for _, n := range sc.Nodes {
		if !n.Visible || n.Mesh == nil {
			continue
		}
		g := r.upload(n.Mesh)
		r.lit.SetMat4("uModel", n.Model())
		r.lit.SetVec3("uColor", n.Color)
		g.draw()
	}

	r.drawLines(sc.Lines, view, proj)
	gl.BindVertexArray(0)
}

func (r *Renderer) shadowPass(sc *scene.Scene) {
	r.shadow.Bind()
	r.depth.Use()
	r.depth.SetMat4("uLightSpace", r.lightSpace)
	for _, n := range sc.Nodes {
		if !n.Visible || !n.CastShadow || n.Mesh == nil {
			continue
		}
		r.depth.SetMat4("uModel", n.Model())
		r.upload(n.Mesh).draw()
	}
}

func (r *Renderer) drawLines(sets []*scene.LineSet, view, proj mgl32.Mat4) {
	r.lines.Use()
	r.lines.SetMat4("uView", view)
	r.lines.SetMat4("uProj", proj)
	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	for _, ls := range sets {
		if !ls.Visible || len(ls.Vertices) < 6 {
			continue
		}
		gl.BufferData(gl.ARRAY_BUFFER, len(ls.Vertices)*4, gl.Ptr(ls.Vertices), gl.STREAM_DRAW)
		r.lines.SetMat4("uModel", ls.Model)
		r.lines.SetVec3("uColor", ls.Color)
		gl.DrawArrays(gl.LINES, 0, int32(len(ls.Vertices)/3))
	}
}

// upload returns the GPU copy of m, creating it on first use.
func (r *Renderer) upload(m *mesh.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := &gpuMesh{count: int32(len(m.Indices))}
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		r.meshes[m] = g
		return g
	}

	stride := int32(unsafe.Sizeof(mesh.Vertex{}))
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	r.meshes[m] = g
	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()))
	return g
}

func (g *gpuMesh) draw() {
	if g.vao == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, 0)
}

func (g *gpuMesh) delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
	}
}

// Close releases every GL object.
func (r *Renderer) Close() {
	for m, g := range r.meshes {
		g.delete()
		delete(r.meshes, m)
	}
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
		gl.DeleteBuffers(1, &r.lineVBO)
		r.lineVAO, r.lineVBO = 0, 0
	}
	for _, p := range []*shader.Program{r.lit, r.depth, r.lines} {
		if p != nil {
			p.Delete()
		}
	}
	if r.shadow != nil {
		r.shadow.Destroy()
	}
	if r.target != nil {
		r.target.Destroy()
	}
	r.log.Info("renderer closed")
}
