package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/diorama/engine/core"
)

const session = "6f1c2d0e-8a4b-4c7e-9f3a-2b5d7e9a1c3f"

func deskOptions() options {
	assetsDir := filepath.Join("..", "..", "assets")
	return options{
		scene:     filepath.Join(assetsDir, "scenes", "desk.toml"),
		assetsDir: assetsDir,
		format:    "text",
		frames:    2,
		width:     1280,
		height:    720,
		session:   session,
		logLevel:  "error",
	}
}

func TestTextTrace(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(deskOptions(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "# session "+session+" scene desk frames 2", lines[0])

	var draws []string
	binds := 0
	for _, l := range lines {
		if strings.HasPrefix(l, "draw ") {
			draws = append(draws, strings.TrimPrefix(l, "draw "))
		}
		if strings.HasPrefix(l, "bind ") {
			binds++
		}
		assert.False(t, strings.HasPrefix(l, "# problem"), l)
	}
	require.Len(t, draws, 44)
	assert.Equal(t, "plane", draws[0])
	assert.Equal(t, "sphere", draws[21])
	assert.Equal(t, draws[:22], draws[22:])
	assert.Equal(t, 10, binds)
	assert.Contains(t, out.String(), "uniform objectTexture=9")
	assert.Contains(t, out.String(), "uniform UVscale=(-1, 1)")
	reset := strings.Index(out.String(), "uniform UVscale=(1, 1)")
	require.GreaterOrEqual(t, reset, 0)
	assert.Less(t, reset, strings.Index(out.String(), "draw plane"))
	assert.Contains(t, out.String(), "# texture Wood unit=0 64x64 channels=3")
	assert.Contains(t, out.String(), "# texture case unit=9 64x64 channels=4")
}

func TestJSONTrace(t *testing.T) {
	opts := deskOptions()
	opts.format = "json"
	opts.frames = 1
	var out bytes.Buffer
	require.NoError(t, run(opts, &out))

	var decoded struct {
		Session  string `json:"session"`
		Scene    string `json:"scene"`
		Textures []struct {
			Tag  string `json:"tag"`
			Unit int32  `json:"unit"`
		} `json:"textures"`
		Calls []struct {
			Kind string `json:"kind"`
			Name string `json:"name"`
		} `json:"calls"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, session, decoded.Session)
	assert.Equal(t, "desk", decoded.Scene)
	require.Len(t, decoded.Textures, 10)
	assert.Equal(t, "laptop", decoded.Textures[1].Tag)
	assert.Equal(t, int32(1), decoded.Textures[1].Unit)

	draws := 0
	for _, c := range decoded.Calls {
		if c.Kind == "draw" {
			draws++
		}
	}
	assert.Equal(t, 22, draws)
}

func TestStrictReportsProblems(t *testing.T) {
	dir := t.TempDir()
	scene := "name = \"broken\"\n\n[[textures]]\npath = \"missing.png\"\ntag = \"ghost\"\n\n[[objects]]\nshape = \"box\"\ntexture = \"ghost\"\nmaterial = \"nope\"\n"
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte(scene), 0o644))

	opts := deskOptions()
	opts.scene = path
	opts.assetsDir = dir

	var out bytes.Buffer
	require.NoError(t, run(opts, &out))
	assert.Contains(t, out.String(), "# problem")
	assert.Contains(t, out.String(), "uniform objectTexture=-1")

	opts.strict = true
	out.Reset()
	assert.Error(t, run(opts, &out))
}

func TestRunWritesLogFile(t *testing.T) {
	opts := deskOptions()
	opts.logLevel = "info"
	opts.logFile = filepath.Join(t.TempDir(), "trace.log")

	var out bytes.Buffer
	require.NoError(t, run(opts, &out))
	assert.NotContains(t, out.String(), "Successfully loaded image")

	logged, err := os.ReadFile(opts.logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "Successfully loaded image")
	assert.Contains(t, string(logged), "Wood.png")
}

func TestRunRejectsBadOptions(t *testing.T) {
	for name, mutate := range map[string]func(*options){
		"no scene":  func(o *options) { o.scene = "" },
		"format":    func(o *options) { o.format = "xml" },
		"frames":    func(o *options) { o.frames = -1 },
		"session":   func(o *options) { o.session = "not-a-uuid" },
		"log level": func(o *options) { o.logLevel = "loud" },
	} {
		t.Run(name, func(t *testing.T) {
			opts := deskOptions()
			mutate(&opts)
			assert.ErrorIs(t, run(opts, &bytes.Buffer{}), core.ErrInvalidConfig)
		})
	}
}
