// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/octoped/internal/engine/shader"
	"github.com/Faultbox/octoped/internal/engine/terrain"
	"github.com/Faultbox/octoped/internal/logger"
	"github.com/Faultbox/octoped/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer draws colored line lists. Everything in the viewer is lines:
// terrain grid, body axes, leg segments and footstep markers.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	vao      uint32
	vbo      uint32
	capacity int // vertices the VBO can hold

	batch []terrain.LineVertex
}

const lineVertexSize = int(unsafe.Sizeof(terrain.LineVertex{}))

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		batch:  make([]terrain.LineVertex, 0, 4096),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.08, 0.07, 0.06, 1.0)

	var err error
	r.program, err = shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	r.createBuffers(cap(r.batch))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.batch = r.batch[:0]
}

// Lines queues vertex pairs for this frame.
func (r *Renderer) Lines(vertices []terrain.LineVertex) {
	r.batch = append(r.batch, vertices...)
}

// End uploads the queued lines and draws them with the given view-projection.
func (r *Renderer) End(viewProj math.Mat4) {
	if len(r.batch) == 0 {
		return
	}
	if len(r.batch) > r.capacity {
		r.grow(len(r.batch))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.batch)*lineVertexSize, unsafe.Pointer(&r.batch[0]))

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.batch)))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// ReadPixels reads the back buffer as tightly packed RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) grow(n int) {
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteBuffers(1, &r.vbo)
	size := r.capacity * 2
	for size < n {
		size *= 2
	}
	r.createBuffers(size)
	r.log.Debug("line buffer grown", zap.Int("vertices", size))
}

// createBuffers allocates a dynamic VBO holding capacity vertices.
func (r *Renderer) createBuffers(capacity int) {
	r.capacity = capacity

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, r.capacity*lineVertexSize, nil, gl.DYNAMIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, int32(lineVertexSize), nil)
	gl.EnableVertexAttribArray(0)

	// Color attribute (location = 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(lineVertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vertexColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`
