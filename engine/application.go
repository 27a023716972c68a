package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"-"`
	// Level name as written in a config file, parsed into LogLevel.
	LogLevelName string                `toml:"log_level"`
	Renderer     renderer.RendererType `toml:"-"`
	// Directory every other path is relative to.
	AssetsDir string `toml:"assets_dir"`
	// Scene file, relative to AssetsDir.
	ScenePath          string `toml:"scene"`
	VertexShaderPath   string `toml:"vertex_shader"`
	FragmentShaderPath string `toml:"fragment_shader"`
	// Rebuild the scene when the scene file or a texture changes.
	Watch bool `toml:"watch"`
	// Stop after this many frames, 0 runs until the window closes.
	MaxFrames uint64 `toml:"max_frames"`
	// Sleep away the rest of each frame when it finishes early.
	LimitFrames bool `toml:"limit_frames"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		StartPosX:          100,
		StartPosY:          100,
		StartWidth:         1280,
		StartHeight:        720,
		Name:               "Diorama",
		LogLevel:           core.LogLevelInfo,
		LogLevelName:       core.LogLevelInfo.String(),
		Renderer:           renderer.OpenGL,
		AssetsDir:          "assets",
		ScenePath:          "scenes/desk.toml",
		VertexShaderPath:   "shaders/lighting.vert.glsl",
		FragmentShaderPath: "shaders/lighting.frag.glsl",
	}
}

/**
 * @brief Reads an application config file over the defaults. Keys missing
 * from the file keep their default value.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %v: %w", path, err, core.ErrInvalidConfig)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config %s: %v: %w", path, err, core.ErrInvalidConfig)
	}
	level, err := core.ParseLogLevel(config.LogLevelName)
	if err != nil {
		return nil, err
	}
	config.LogLevel = level
	return config, config.Validate()
}

func (c *ApplicationConfig) Validate() error {
	var errs []error
	if c.StartWidth == 0 || c.StartHeight == 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: %w", c.StartWidth, c.StartHeight, core.ErrInvalidConfig))
	}
	if c.ScenePath == "" {
		errs = append(errs, fmt.Errorf("no scene file configured: %w", core.ErrInvalidConfig))
	}
	if c.VertexShaderPath == "" || c.FragmentShaderPath == "" {
		errs = append(errs, fmt.Errorf("both shader stages are required: %w", core.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}
