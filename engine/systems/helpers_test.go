package systems

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
	"github.com/spaghettifunk/diorama/engine/renderer/recorder"
)

// fakeDecoder serves solid images by path; an image with zero size is
// treated as an unreadable file.
type fakeDecoder struct {
	images map[string]metadata.ImageResourceData
	calls  []string
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{images: make(map[string]metadata.ImageResourceData)}
}

func (d *fakeDecoder) add(path string, channels uint8) {
	d.images[path] = metadata.ImageResourceData{
		ChannelCount: channels,
		Width:        2,
		Height:       2,
		Pixels:       make([]uint8, 2*2*int(channels)),
	}
}

func (d *fakeDecoder) Decode(path string, params *metadata.ImageResourceParams) (*metadata.ImageResourceData, error) {
	d.calls = append(d.calls, path)
	img, ok := d.images[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, core.ErrLoadFailure)
	}
	if params == nil || !params.FlipY {
		return nil, fmt.Errorf("textures must be decoded flipped")
	}
	return &img, nil
}

type stack struct {
	gpu     *recorder.Context
	program *recorder.Program
	decoder *fakeDecoder
	systems *SystemManager
}

func newStack(t *testing.T, opts ...recorder.Option) *stack {
	t.Helper()
	gpu := recorder.New(opts...)
	p, err := gpu.CreateShaderProgram("", "")
	require.NoError(t, err)
	decoder := newFakeDecoder()
	sm, err := NewSystemManager(&SystemManagerConfig{ViewportWidth: 800, ViewportHeight: 600}, gpu, p, decoder)
	require.NoError(t, err)
	gpu.ClearCalls()
	return &stack{gpu: gpu, program: p.(*recorder.Program), decoder: decoder, systems: sm}
}

// trace renders the uniform writes and draws as strings.
func (s *stack) trace() []string {
	var out []string
	for _, c := range s.gpu.CallsOf(recorder.CallUniform, recorder.CallDraw) {
		if c.Kind == recorder.CallDraw {
			out = append(out, "draw "+c.Name)
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

func (s *stack) value(t *testing.T, name string) any {
	t.Helper()
	v, ok := s.program.Value(name)
	require.True(t, ok, "uniform %s was never written", name)
	return v
}
