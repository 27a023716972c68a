/*
scenetrace sets up a scene against the recording GPU context, renders a few
frames and prints every recorded call, so a scene file can be checked
without a GPU.

	scenetrace -scene assets/scenes/desk.toml [-format text|json] [-frames n] [-log file]
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/spaghettifunk/diorama/engine/assets/loaders"
	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
	"github.com/spaghettifunk/diorama/engine/renderer/recorder"
	"github.com/spaghettifunk/diorama/engine/systems"
)

type options struct {
	scene     string
	assetsDir string
	format    string
	frames    int
	width     uint
	height    uint
	session   string
	strict    bool
	logLevel  string
	logFile   string
}

// trace is the JSON document written with -format json.
type trace struct {
	Session  string          `json:"session"`
	Scene    string          `json:"scene"`
	Frames   int             `json:"frames"`
	Textures []textureRecord `json:"textures"`
	Problems []string        `json:"problems,omitempty"`
	Calls    []recorder.Call `json:"calls"`
}

type textureRecord struct {
	Tag      string `json:"tag"`
	Unit     int32  `json:"unit"`
	Path     string `json:"path"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`
	Channels uint8  `json:"channels"`
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "", "scene file (.toml, .yaml or .yml)")
	flag.StringVar(&opts.assetsDir, "assets", "assets", "directory relative texture paths are resolved against")
	flag.StringVar(&opts.format, "format", "text", "output format: text or json")
	flag.IntVar(&opts.frames, "frames", 1, "number of frames to render")
	flag.UintVar(&opts.width, "width", 1280, "viewport width")
	flag.UintVar(&opts.height, "height", 720, "viewport height")
	flag.StringVar(&opts.session, "session", "", "session id to stamp on the trace, random when empty")
	flag.BoolVar(&opts.strict, "strict", false, "exit with status 1 when the scene has unresolved tags or failed textures")
	flag.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")
	flag.StringVar(&opts.logFile, "log", "", "write log lines to this file instead of stderr")
	flag.Parse()

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "scenetrace:", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	level, err := core.ParseLogLevel(opts.logLevel)
	if err != nil {
		return err
	}
	core.SetLogLevel(level)
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		core.SetLogOutput(f)
		defer core.SetLogOutput(os.Stderr)
	}

	if opts.scene == "" {
		return fmt.Errorf("-scene is required: %w", core.ErrInvalidConfig)
	}
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q: %w", opts.format, core.ErrInvalidConfig)
	}
	if opts.frames < 0 {
		return fmt.Errorf("-frames must not be negative: %w", core.ErrInvalidConfig)
	}

	id := uuid.New()
	if opts.session != "" {
		if id, err = uuid.Parse(opts.session); err != nil {
			return fmt.Errorf("session id %q: %v: %w", opts.session, err, core.ErrInvalidConfig)
		}
	}

	sl := &loaders.SceneLoader{BaseDir: opts.assetsDir}
	res, err := sl.Load(opts.scene, metadata.ResourceTypeScene, nil)
	if err != nil {
		return err
	}
	scene := res.Data.(*metadata.SceneDescription)

	gpu := recorder.New(recorder.WithSessionID(id))
	r := renderer.New(gpu)
	if err := r.Initialize("scenetrace", uint32(opts.width), uint32(opts.height), "", ""); err != nil {
		return err
	}
	defer r.Shutdown()

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		ViewportWidth:  uint32(opts.width),
		ViewportHeight: uint32(opts.height),
	}, gpu, r.Program(), &loaders.ImageLoader{})
	if err != nil {
		return err
	}
	defer sm.Shutdown()

	if err := sm.LoadScene(scene); err != nil {
		return err
	}
	for i := 0; i < opts.frames; i++ {
		if err := r.DrawFrame(1.0/60.0, sm.DrawScene); err != nil {
			return err
		}
	}

	t := trace{
		Session: gpu.SessionID.String(),
		Scene:   scene.Name,
		Frames:  opts.frames,
		Calls:   gpu.Calls(),
	}
	for _, e := range sm.Textures().Entries() {
		t.Textures = append(t.Textures, textureRecord{
			Tag:      e.Tag,
			Unit:     e.Unit,
			Path:     e.Path,
			Width:    e.Width,
			Height:   e.Height,
			Channels: e.ChannelCount,
		})
	}
	problems := sm.Scene().Validate()
	if problems != nil {
		for _, p := range unwrapJoined(problems) {
			t.Problems = append(t.Problems, p.Error())
		}
	}

	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t); err != nil {
			return err
		}
	} else {
		writeText(out, &t)
	}

	if opts.strict && problems != nil {
		return fmt.Errorf("scene %q has %d problems", scene.Name, len(t.Problems))
	}
	return nil
}

func writeText(out io.Writer, t *trace) {
	fmt.Fprintf(out, "# session %s scene %s frames %d\n", t.Session, t.Scene, t.Frames)
	for _, tex := range t.Textures {
		fmt.Fprintf(out, "# texture %s unit=%d %dx%d channels=%d %s\n", tex.Tag, tex.Unit, tex.Width, tex.Height, tex.Channels, tex.Path)
	}
	for _, p := range t.Problems {
		fmt.Fprintf(out, "# problem %s\n", p)
	}
	for _, c := range t.Calls {
		fmt.Fprintln(out, c.String())
	}
}

func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
