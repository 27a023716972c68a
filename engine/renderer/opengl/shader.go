package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer"
)

/**
 * @brief A linked GL program. Uniform locations are looked up once per
 * name and cached, including misses (-1).
 */
type Program struct {
	id        uint32
	locations map[string]int32
}

func newProgram(vertexSource, fragmentSource string) (*Program, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("link failed: %s", strings.TrimRight(log, "\x00"))
	}

	return &Program{id: id, locations: make(map[string]int32)}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		core.LogDebug("program %d has no active uniform %q", p.id, name)
	}
	p.locations[name] = loc
	return loc
}

func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) HasUniform(name string) bool {
	return p.location(name) >= 0
}

func (p *Program) SetBool(name string, value bool) {
	v := int32(0)
	if value {
		v = 1
	}
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.location(name), value)
}

func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.location(name), value)
}

func (p *Program) SetVec2(name string, value math.Vec2) {
	gl.Uniform2f(p.location(name), value.X, value.Y)
}

func (p *Program) SetVec3(name string, value math.Vec3) {
	gl.Uniform3f(p.location(name), value.X, value.Y, value.Z)
}

func (p *Program) SetVec4(name string, value math.Vec4) {
	gl.Uniform4f(p.location(name), value.X, value.Y, value.Z, value.W)
}

func (p *Program) SetMat4(name string, value math.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &value.Data[0])
}

func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

var _ renderer.ShaderProgram = (*Program)(nil)
