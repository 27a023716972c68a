package renderer

import (
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

/**
 * @brief The GPU side of the renderer: texture objects, unit bindings,
 * mesh buffers, shader programs and frame submission.
 */
type GPUContext interface {
	Initialize(appName string, width, height uint32) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	/** @brief Creates an empty texture object and leaves it bound. */
	TextureCreate() (metadata.TextureHandle, error)
	TextureConfigure(handle metadata.TextureHandle, wrap metadata.TextureWrap, filter metadata.TextureFilter)
	TextureUpload(handle metadata.TextureHandle, config metadata.TextureConfig, pixels []uint8) error
	TextureGenerateMipmaps(handle metadata.TextureHandle)
	/** @brief Unbinds whatever 2D texture is bound on the active unit. */
	TextureUnbind()
	/** @brief Activates unit and binds handle to it. */
	TextureBind(unit int32, handle metadata.TextureHandle)
	TextureDestroy(handle metadata.TextureHandle)

	CreateMesh(config *metadata.GeometryConfig) (metadata.MeshHandle, error)
	DestroyMesh(handle metadata.MeshHandle)
	/** @brief Submits the mesh with whatever uniform state is currently bound. */
	DrawMesh(handle metadata.MeshHandle)

	CreateShaderProgram(vertexSource, fragmentSource string) (ShaderProgram, error)
}

/**
 * @brief A compiled and linked shader program with named uniform setters.
 * Setters on a name the program does not declare are silently ignored, the
 * way a real GPU ignores location -1.
 */
type ShaderProgram interface {
	Use()
	HasUniform(name string) bool
	SetBool(name string, value bool)
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec2(name string, value math.Vec2)
	SetVec3(name string, value math.Vec3)
	SetVec4(name string, value math.Vec4)
	SetMat4(name string, value math.Mat4)
	Destroy()
}

/**
 * @brief Turns an image file into a pixel buffer.
 */
type ImageDecoder interface {
	Decode(path string, params *metadata.ImageResourceParams) (*metadata.ImageResourceData, error)
}

/**
 * @brief The primitive meshes a scene draws from. Load is idempotent per
 * shape; Draw consumes the currently bound uniform state.
 */
type MeshLibrary interface {
	Load(shape metadata.Shape) error
	Draw(shape metadata.Shape)
	Shutdown() error
}
