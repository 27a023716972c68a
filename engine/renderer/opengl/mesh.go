package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

// Attribute locations the lighting vertex shader binds with layout qualifiers.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexcoord = 2
)

func (c *Context) CreateMesh(config *metadata.GeometryConfig) (metadata.MeshHandle, error) {
	if len(config.Vertices) == 0 || len(config.Indices) == 0 {
		return 0, fmt.Errorf("mesh %q has no geometry", config.Name)
	}

	var m glMesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	stride := int32(unsafe.Sizeof(math.Vertex3D{}))

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(config.Vertices)*int(stride), unsafe.Pointer(&config.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, unsafe.Pointer(&config.Indices[0]), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Position))
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Normal))
	gl.EnableVertexAttribArray(attribTexcoord)
	gl.VertexAttribPointerWithOffset(attribTexcoord, 2, gl.FLOAT, false, stride, unsafe.Offsetof(math.Vertex3D{}.Texcoord))

	gl.BindVertexArray(0)

	m.indexCount = int32(len(config.Indices))
	c.nextMesh++
	c.meshes[c.nextMesh] = m
	return c.nextMesh, nil
}

func (c *Context) DestroyMesh(handle metadata.MeshHandle) {
	m, ok := c.meshes[handle]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
	delete(c.meshes, handle)
}

func (c *Context) DrawMesh(handle metadata.MeshHandle) {
	m, ok := c.meshes[handle]
	if !ok {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
