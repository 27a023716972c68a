// Package recorder is a headless GPU context. It keeps the state a real
// driver would keep (live objects, bound units, current uniform values) and
// appends every call to an ordered log.
package recorder

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type CallKind string

const (
	CallFrameBegin       CallKind = "frame.begin"
	CallFrameEnd         CallKind = "frame.end"
	CallTextureCreate    CallKind = "texture.create"
	CallTextureConfigure CallKind = "texture.configure"
	CallTextureUpload    CallKind = "texture.upload"
	CallTextureMipmaps   CallKind = "texture.mipmaps"
	CallTextureUnbind    CallKind = "texture.unbind"
	CallTextureBind      CallKind = "texture.bind"
	CallTextureDestroy   CallKind = "texture.destroy"
	CallMeshCreate       CallKind = "mesh.create"
	CallMeshDestroy      CallKind = "mesh.destroy"
	CallDraw             CallKind = "draw"
	CallProgramCreate    CallKind = "program.create"
	CallProgramUse       CallKind = "program.use"
	CallUniform          CallKind = "uniform"
)

// Call is one recorded GPU operation.
type Call struct {
	Kind   CallKind `json:"kind"`
	Name   string   `json:"name,omitempty"`
	Unit   int32    `json:"unit,omitempty"`
	Handle uint32   `json:"handle,omitempty"`
	Value  any      `json:"value,omitempty"`
}

func (c Call) String() string {
	switch c.Kind {
	case CallUniform:
		return fmt.Sprintf("uniform %s=%s", c.Name, FormatValue(c.Value))
	case CallTextureBind:
		return fmt.Sprintf("bind unit=%d handle=%d", c.Unit, c.Handle)
	case CallDraw:
		return fmt.Sprintf("draw %s", c.Name)
	case CallTextureUpload:
		return fmt.Sprintf("%s handle=%d %s", c.Kind, c.Handle, c.Name)
	case CallMeshCreate:
		return fmt.Sprintf("%s handle=%d %s", c.Kind, c.Handle, c.Name)
	}
	if c.Handle != 0 {
		return fmt.Sprintf("%s handle=%d", c.Kind, c.Handle)
	}
	return string(c.Kind)
}

type mesh struct {
	name       string
	indexCount int
}

/**
 * @brief A GPUContext that executes nothing and records everything.
 */
type Context struct {
	SessionID uuid.UUID

	calls    []Call
	uniforms []string

	nextTexture metadata.TextureHandle
	textures    map[metadata.TextureHandle]bool
	units       map[int32]metadata.TextureHandle

	nextMesh metadata.MeshHandle
	meshes   map[metadata.MeshHandle]mesh

	programs []*Program

	failTextureCreate error
	failUpload        error
}

type Option func(*Context)

// WithUniforms sets the uniform names programs created by the context declare.
func WithUniforms(names ...string) Option {
	return func(c *Context) {
		c.uniforms = names
	}
}

func WithSessionID(id uuid.UUID) Option {
	return func(c *Context) {
		c.SessionID = id
	}
}

// WithTextureCreateError makes every TextureCreate fail with err.
func WithTextureCreateError(err error) Option {
	return func(c *Context) {
		c.failTextureCreate = err
	}
}

// WithUploadError makes every TextureUpload fail with err.
func WithUploadError(err error) Option {
	return func(c *Context) {
		c.failUpload = err
	}
}

func New(opts ...Option) *Context {
	c := &Context{
		SessionID: uuid.New(),
		uniforms:  metadata.AllUniformNames(),
		textures:  make(map[metadata.TextureHandle]bool),
		units:     make(map[int32]metadata.TextureHandle),
		meshes:    make(map[metadata.MeshHandle]mesh),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Context) record(call Call) {
	c.calls = append(c.calls, call)
}

func (c *Context) Initialize(appName string, width, height uint32) error {
	return nil
}

func (c *Context) Shutdown() error {
	return nil
}

func (c *Context) Resized(width, height uint32) error {
	return nil
}

func (c *Context) BeginFrame(deltaTime float64) error {
	c.record(Call{Kind: CallFrameBegin})
	return nil
}

func (c *Context) EndFrame(deltaTime float64) error {
	c.record(Call{Kind: CallFrameEnd})
	return nil
}

func (c *Context) TextureCreate() (metadata.TextureHandle, error) {
	if c.failTextureCreate != nil {
		return 0, c.failTextureCreate
	}
	c.nextTexture++
	c.textures[c.nextTexture] = true
	c.record(Call{Kind: CallTextureCreate, Handle: uint32(c.nextTexture)})
	return c.nextTexture, nil
}

func (c *Context) TextureConfigure(handle metadata.TextureHandle, wrap metadata.TextureWrap, filter metadata.TextureFilter) {
	c.record(Call{Kind: CallTextureConfigure, Handle: uint32(handle)})
}

func (c *Context) TextureUpload(handle metadata.TextureHandle, config metadata.TextureConfig, pixels []uint8) error {
	if c.failUpload != nil {
		return c.failUpload
	}
	want := int(config.Width) * int(config.Height) * int(config.Format.ChannelCount())
	if len(pixels) < want {
		return fmt.Errorf("upload of %dx%d %s needs %d bytes, got %d", config.Width, config.Height, config.Format, want, len(pixels))
	}
	c.record(Call{
		Kind:   CallTextureUpload,
		Handle: uint32(handle),
		Name:   fmt.Sprintf("%dx%d %s", config.Width, config.Height, config.Format),
	})
	return nil
}

func (c *Context) TextureGenerateMipmaps(handle metadata.TextureHandle) {
	c.record(Call{Kind: CallTextureMipmaps, Handle: uint32(handle)})
}

func (c *Context) TextureUnbind() {
	c.record(Call{Kind: CallTextureUnbind})
}

func (c *Context) TextureBind(unit int32, handle metadata.TextureHandle) {
	c.units[unit] = handle
	c.record(Call{Kind: CallTextureBind, Unit: unit, Handle: uint32(handle)})
}

func (c *Context) TextureDestroy(handle metadata.TextureHandle) {
	delete(c.textures, handle)
	for unit, h := range c.units {
		if h == handle {
			delete(c.units, unit)
		}
	}
	c.record(Call{Kind: CallTextureDestroy, Handle: uint32(handle)})
}

func (c *Context) CreateMesh(config *metadata.GeometryConfig) (metadata.MeshHandle, error) {
	if len(config.Indices) == 0 || len(config.Indices)%3 != 0 {
		return 0, fmt.Errorf("mesh %q has %d indices", config.Name, len(config.Indices))
	}
	c.nextMesh++
	c.meshes[c.nextMesh] = mesh{name: config.Name, indexCount: len(config.Indices)}
	c.record(Call{Kind: CallMeshCreate, Handle: uint32(c.nextMesh), Name: config.Name})
	return c.nextMesh, nil
}

func (c *Context) DestroyMesh(handle metadata.MeshHandle) {
	delete(c.meshes, handle)
	c.record(Call{Kind: CallMeshDestroy, Handle: uint32(handle)})
}

func (c *Context) DrawMesh(handle metadata.MeshHandle) {
	m, ok := c.meshes[handle]
	if !ok {
		c.record(Call{Kind: CallDraw, Handle: uint32(handle), Name: "<invalid>"})
		return
	}
	c.record(Call{Kind: CallDraw, Handle: uint32(handle), Name: m.name})
}

func (c *Context) CreateShaderProgram(vertexSource, fragmentSource string) (renderer.ShaderProgram, error) {
	p := newProgram(c, c.uniforms)
	c.programs = append(c.programs, p)
	c.record(Call{Kind: CallProgramCreate})
	return p, nil
}

// Calls returns the ordered call log.
func (c *Context) Calls() []Call {
	return c.calls
}

// CallsOf returns the calls of the given kinds, in order.
func (c *Context) CallsOf(kinds ...CallKind) []Call {
	var out []Call
	for _, call := range c.calls {
		for _, k := range kinds {
			if call.Kind == k {
				out = append(out, call)
				break
			}
		}
	}
	return out
}

// Draws returns the mesh names drawn, in order.
func (c *Context) Draws() []string {
	var out []string
	for _, call := range c.CallsOf(CallDraw) {
		out = append(out, call.Name)
	}
	return out
}

// ClearCalls empties the call log without touching object state.
func (c *Context) ClearCalls() {
	c.calls = nil
}

func (c *Context) LiveTextures() int {
	return len(c.textures)
}

func (c *Context) LiveMeshes() int {
	return len(c.meshes)
}

// BoundTexture returns the handle bound to unit, if any.
func (c *Context) BoundTexture(unit int32) (metadata.TextureHandle, bool) {
	h, ok := c.units[unit]
	return h, ok
}

var _ renderer.GPUContext = (*Context)(nil)
