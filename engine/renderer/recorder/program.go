package recorder

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/diorama/engine/math"
	"github.com/spaghettifunk/diorama/engine/renderer"
)

/**
 * @brief A shader program that stores uniform writes by name. Writes to a
 * name the program does not declare are recorded but not stored.
 */
type Program struct {
	ctx      *Context
	declared map[string]bool
	values   map[string]any
	writes   int
}

func newProgram(ctx *Context, uniforms []string) *Program {
	p := &Program{
		ctx:      ctx,
		declared: make(map[string]bool, len(uniforms)),
		values:   make(map[string]any),
	}
	for _, u := range uniforms {
		p.declared[u] = true
	}
	return p
}

// NewProgram returns a program outside any context, for tests that only
// exercise uniform writes.
func NewProgram(uniforms ...string) *Program {
	return newProgram(New(WithUniforms(uniforms...)), uniforms)
}

func (p *Program) set(name string, value any) {
	p.writes++
	p.ctx.record(Call{Kind: CallUniform, Name: name, Value: value})
	if p.declared[name] {
		p.values[name] = value
	}
}

func (p *Program) Use() {
	p.ctx.record(Call{Kind: CallProgramUse})
}

func (p *Program) HasUniform(name string) bool {
	return p.declared[name]
}

func (p *Program) SetBool(name string, value bool) { p.set(name, value) }
func (p *Program) SetInt(name string, value int32) { p.set(name, value) }
func (p *Program) SetFloat(name string, value float32) { p.set(name, value) }
func (p *Program) SetVec2(name string, value math.Vec2) { p.set(name, value) }
func (p *Program) SetVec3(name string, value math.Vec3) { p.set(name, value) }
func (p *Program) SetVec4(name string, value math.Vec4) { p.set(name, value) }
func (p *Program) SetMat4(name string, value math.Mat4) { p.set(name, value) }

func (p *Program) Destroy() {
	p.values = make(map[string]any)
}

// Value returns the current value of a uniform.
func (p *Program) Value(name string) (any, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Writes counts every setter call, declared or not.
func (p *Program) Writes() int {
	return p.writes
}

// Context returns the context whose log the program writes to.
func (p *Program) Context() *Context {
	return p.ctx
}

// FormatValue renders a uniform value the way the trace prints it.
func FormatValue(v any) string {
	switch t := v.(type) {
	case math.Vec2:
		return fmt.Sprintf("(%g, %g)", t.X, t.Y)
	case math.Vec3:
		return fmt.Sprintf("(%g, %g, %g)", t.X, t.Y, t.Z)
	case math.Vec4:
		return fmt.Sprintf("(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
	case math.Mat4:
		parts := make([]string, len(t.Data))
		for i, d := range t.Data {
			parts[i] = fmt.Sprintf("%g", d)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return fmt.Sprintf("%v", v)
}

var _ renderer.ShaderProgram = (*Program)(nil)
