package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spaghettifunk/diorama/engine/assets"
	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
	"github.com/spaghettifunk/diorama/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released everything it owned
	EngineStageShutdown
)

type Engine struct {
	currentStage  Stage
	config        *ApplicationConfig
	isRunning     bool
	isSuspended   bool
	window        Window
	assetManager  *assets.AssetManager
	renderer      *renderer.Renderer
	systemManager *systems.SystemManager
	width         uint32
	height        uint32
	clock         *core.Clock
	metrics       *core.FrameMetrics
	lastTime      float64
	frames        uint64
	// absolute path of the loaded scene file
	scenePath string
}

/**
 * @brief Creates an engine presenting to window through backend. Nothing is
 * touched on the GPU before Initialize.
 */
func New(config *ApplicationConfig, backend renderer.GPUContext, window Window) (*Engine, error) {
	if err := config.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	core.SetLogLevel(config.LogLevel)

	am, err := assets.NewAssetManager(config.AssetsDir)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		isRunning:    true,
		isSuspended:  false,
		window:       window,
		assetManager: am,
		renderer:     renderer.New(backend),
		width:        config.StartWidth,
		height:       config.StartHeight,
		clock:        core.NewClock(),
		metrics:      core.NewFrameMetrics(),
		lastTime:     0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	if err := e.window.Startup(e.config.Name,
		e.config.StartPosX,
		e.config.StartPosY,
		e.config.StartWidth,
		e.config.StartHeight); err != nil {
		return err
	}
	e.window.SetResizeCallback(e.onResized)

	if err := e.assetManager.Initialize(e.config.Watch); err != nil {
		return err
	}

	vertexSource, err := e.loadShaderSource(e.config.VertexShaderPath)
	if err != nil {
		return err
	}
	fragmentSource, err := e.loadShaderSource(e.config.FragmentShaderPath)
	if err != nil {
		return err
	}
	if err := e.renderer.Initialize(e.config.Name, e.width, e.height, vertexSource, fragmentSource); err != nil {
		return err
	}

	loader, ok := e.assetManager.Loader(metadata.ResourceTypeImage)
	if !ok {
		return errors.New("no image loader registered")
	}
	decoder, ok := loader.(renderer.ImageDecoder)
	if !ok {
		return fmt.Errorf("image loader %T cannot decode textures", loader)
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		MaxTextureUnits: metadata.MaxTextureUnits,
		ViewportWidth:   e.width,
		ViewportHeight:  e.height,
	}, e.renderer.Backend(), e.renderer.Program(), decoder)
	if err != nil {
		return err
	}
	e.systemManager = sm

	if err := e.LoadScene(); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) loadShaderSource(name string) (string, error) {
	res, err := e.assetManager.LoadAsset(name, metadata.ResourceTypeShader, nil)
	if err != nil {
		core.LogError("could not load shader %s: %s", name, err)
		return "", err
	}
	defer e.assetManager.UnloadAsset(res)
	return res.Data.(string), nil
}

/**
 * @brief Reads the configured scene file and sets it up, replacing the
 * current scene if there is one.
 */
func (e *Engine) LoadScene() error {
	res, err := e.assetManager.LoadAsset(e.config.ScenePath, metadata.ResourceTypeScene, nil)
	if err != nil {
		core.LogError("could not load scene %s: %s", e.config.ScenePath, err)
		return err
	}
	e.scenePath = res.FullPath
	return e.systemManager.LoadScene(res.Data.(*metadata.SceneDescription))
}

/**
 * @brief Runs the frame loop until the window closes, ctx is cancelled or
 * MaxFrames frames have been drawn.
 */
func (e *Engine) Run(ctx context.Context) error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()

	e.lastTime = e.clock.Elapsed()

	var targetFrameSeconds float64 = 1.0 / 60.0

	for e.isRunning {
		select {
		case <-ctx.Done():
			core.LogInfo("run cancelled, shutting down.")
			e.isRunning = false
			continue
		default:
		}

		if !e.window.PumpMessages() {
			e.isRunning = false
			continue
		}

		if e.isSuspended {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		e.handleAssetChanges()

		// Update clock and get delta time.
		e.clock.Update()

		var currentTime float64 = e.clock.Elapsed()
		var delta float64 = (currentTime - e.lastTime)
		frameStartTime := time.Now()

		if err := e.renderer.DrawFrame(delta, e.systemManager.DrawScene); err != nil {
			core.LogError("Draw frame failed, shutting down.")
			e.isRunning = false
			return err
		}
		e.window.SwapBuffers()
		e.frames++

		// Figure out how long the frame took and, if below
		var frameElapsedTime float64 = time.Since(frameStartTime).Seconds()
		if e.metrics.Update(frameElapsedTime) {
			core.LogDebug("%.0f fps, %.3f ms/frame", e.metrics.FPS(), e.metrics.FrameTime())
		}
		var remainingSeconds float64 = targetFrameSeconds - frameElapsedTime
		if remainingSeconds > 0 && e.config.LimitFrames {
			// If there is time left, give it back to the OS.
			time.Sleep(time.Duration(remainingSeconds * float64(time.Second)))
		}

		// Update last time
		e.lastTime = currentTime

		if e.config.MaxFrames > 0 && e.frames >= e.config.MaxFrames {
			e.isRunning = false
		}
	}

	return nil
}

// handleAssetChanges drains pending watch events and rebuilds the scene
// once if the scene file or one of its textures changed.
func (e *Engine) handleAssetChanges() {
	reload := false
	for drained := false; !drained; {
		select {
		case ev, ok := <-e.assetManager.Changes():
			if !ok {
				return
			}
			if e.affectsScene(ev) {
				reload = true
			} else if ev.Type == metadata.ResourceTypeShader {
				core.LogWarn("shader %s changed, restart to pick it up", ev.Path)
			}
		default:
			drained = true
		}
	}
	if !reload {
		return
	}
	core.LogInfo("scene assets changed, reloading %s", e.config.ScenePath)
	if err := e.LoadScene(); err != nil {
		// keep drawing nothing until the next successful reload
		core.LogError("reload failed: %s", err)
	}
}

func (e *Engine) affectsScene(ev assets.AssetEvent) bool {
	path := filepath.Clean(ev.Path)
	if path == e.scenePath {
		return true
	}
	if ev.Type != metadata.ResourceTypeImage {
		return false
	}
	scene := e.systemManager.Scene().Scene()
	if scene == nil {
		// the last setup failed, any texture may be the fix
		return true
	}
	for _, t := range scene.Textures {
		if filepath.Clean(t.Path) == path {
			return true
		}
	}
	return false
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false
	e.clock.Stop()

	var errs []error
	if e.systemManager != nil {
		errs = append(errs, e.systemManager.Shutdown())
	}
	if e.renderer.Program() != nil {
		errs = append(errs, e.renderer.Shutdown())
	}
	errs = append(errs, e.assetManager.Shutdown())
	errs = append(errs, e.window.Shutdown())

	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application Framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Frames counts the frames drawn by Run.
func (e *Engine) Frames() uint64 {
	return e.frames
}

func (e *Engine) SystemManager() *systems.SystemManager {
	return e.systemManager
}

func (e *Engine) AssetManager() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) onResized(width, height uint32) {
	// Check if different. If so, trigger a resize event.
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height

	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	// before Initialize the new size is picked up from e.width and e.height
	if e.renderer.Program() == nil {
		return
	}
	if err := e.renderer.OnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
	if e.systemManager != nil {
		e.systemManager.OnResize(width, height)
	}
}
