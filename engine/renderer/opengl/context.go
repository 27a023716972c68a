// Package opengl implements the GPU context on an OpenGL 4.1 core profile.
// Every call must happen on the thread that owns the current GL context.
package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

type Context struct {
	width, height uint32
	textures      map[metadata.TextureHandle]bool
	meshes        map[metadata.MeshHandle]glMesh
	nextMesh      metadata.MeshHandle
	initialized   bool

	// GL error codes already logged at error level
	reported map[uint32]bool
}

func New() *Context {
	return &Context{
		textures: make(map[metadata.TextureHandle]bool),
		meshes:   make(map[metadata.MeshHandle]glMesh),
		reported: make(map[uint32]bool),
	}
}

func (c *Context) Initialize(appName string, width, height uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	core.LogInfo("%s running on OpenGL %s", appName, gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c.initialized = true
	return c.Resized(width, height)
}

func (c *Context) Shutdown() error {
	if !c.initialized {
		return nil
	}
	for h := range c.meshes {
		c.DestroyMesh(h)
	}
	for h := range c.textures {
		c.TextureDestroy(h)
	}
	c.initialized = false
	return nil
}

func (c *Context) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return errors.New("viewport must be at least 1x1")
	}
	c.width, c.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

func (c *Context) BeginFrame(deltaTime float64) error {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (c *Context) EndFrame(deltaTime float64) error {
	return c.checkFrameErrors(gl.GetError)
}

// GL_CONTEXT_LOST is core in 4.5, the 4.1 bindings do not define it.
const glContextLost uint32 = 0x0507

// maxFrameErrors bounds the error queue drain, a lost context may keep
// reporting forever.
const maxFrameErrors = 32

// checkFrameErrors drains the GL error queue. Errors such as a sampler set
// to an unregistered unit are logged, each code once at error level, and the
// frame goes on. Only a lost context fails the frame.
func (c *Context) checkFrameErrors(next func() uint32) error {
	for i := 0; i < maxFrameErrors; i++ {
		code := next()
		switch {
		case code == gl.NO_ERROR:
			return nil
		case code == glContextLost:
			return errors.New("OpenGL context lost")
		case c.reported[code]:
			core.LogDebug("OpenGL error 0x%x during frame", code)
		default:
			c.reported[code] = true
			core.LogError("OpenGL error 0x%x during frame, later occurrences are logged at debug level", code)
		}
	}
	return nil
}

func (c *Context) TextureCreate() (metadata.TextureHandle, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, errors.New("glGenTextures returned no name")
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
	c.textures[metadata.TextureHandle(id)] = true
	return metadata.TextureHandle(id), nil
}

func (c *Context) TextureConfigure(handle metadata.TextureHandle, wrap metadata.TextureWrap, filter metadata.TextureFilter) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))

	glWrap := int32(gl.REPEAT)
	if wrap == metadata.TextureWrapClampToEdge {
		glWrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap)

	glFilter := int32(gl.LINEAR)
	if filter == metadata.TextureFilterNearest {
		glFilter = gl.NEAREST
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)
}

func (c *Context) TextureUpload(handle metadata.TextureHandle, config metadata.TextureConfig, pixels []uint8) error {
	want := int(config.Width) * int(config.Height) * int(config.Format.ChannelCount())
	if want == 0 || len(pixels) < want {
		return fmt.Errorf("upload of %dx%d %s needs %d bytes, got %d", config.Width, config.Height, config.Format, want, len(pixels))
	}

	internal, format := int32(gl.RGB8), uint32(gl.RGB)
	if config.Format == metadata.TextureFormatRGBA8 {
		internal, format = gl.RGBA8, gl.RGBA
	}

	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))
	// rows of RGB images are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(config.Width), int32(config.Height), 0, format, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return nil
}

func (c *Context) TextureGenerateMipmaps(handle metadata.TextureHandle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (c *Context) TextureUnbind() {
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (c *Context) TextureBind(unit int32, handle metadata.TextureHandle) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(handle))
}

func (c *Context) TextureDestroy(handle metadata.TextureHandle) {
	id := uint32(handle)
	gl.DeleteTextures(1, &id)
	delete(c.textures, handle)
}

func (c *Context) CreateShaderProgram(vertexSource, fragmentSource string) (renderer.ShaderProgram, error) {
	return newProgram(vertexSource, fragmentSource)
}

var _ renderer.GPUContext = (*Context)(nil)
