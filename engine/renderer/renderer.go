package renderer

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
	Headless
)

func (r RendererType) String() string {
	switch r {
	case OpenGL:
		return "opengl"
	case Headless:
		return "headless"
	}
	return fmt.Sprintf("RendererType(%d)", uint8(r))
}

/**
 * @brief Owns the GPU context and the lighting program for the lifetime
 * of the application.
 */
type Renderer struct {
	backend GPUContext
	program ShaderProgram
}

func New(backend GPUContext) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(appName string, width, height uint32, vertexSource, fragmentSource string) error {
	if err := r.backend.Initialize(appName, width, height); err != nil {
		core.LogError("failed to initialize renderer backend: %s", err)
		return err
	}
	program, err := r.backend.CreateShaderProgram(vertexSource, fragmentSource)
	if err != nil {
		core.LogError("failed to build the lighting program: %s", err)
		return err
	}
	program.Use()
	r.program = program
	return nil
}

func (r *Renderer) Backend() GPUContext {
	return r.backend
}

func (r *Renderer) Program() ShaderProgram {
	return r.program
}

func (r *Renderer) OnResize(width, height uint32) error {
	return r.backend.Resized(width, height)
}

/**
 * @brief Wraps draw in a begin/end frame pair with the lighting program bound.
 */
func (r *Renderer) DrawFrame(deltaTime float64, draw func() error) error {
	if err := r.backend.BeginFrame(deltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	r.program.Use()
	if err := draw(); err != nil {
		return err
	}
	if err := r.backend.EndFrame(deltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	return r.backend.Shutdown()
}
