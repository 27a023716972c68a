package systems

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

/** @brief The camera system configuration. */
type CameraSystemConfig struct {
	ViewportWidth  uint32
	ViewportHeight uint32
}

/**
 * @brief Holds the scene camera and the viewport it projects onto.
 */
type CameraSystem struct {
	Config *CameraSystemConfig
	camera metadata.Camera
	bridge *ShaderStateBridge
}

func NewCameraSystem(config *CameraSystemConfig, bridge *ShaderStateBridge) (*CameraSystem, error) {
	if config.ViewportWidth == 0 || config.ViewportHeight == 0 {
		err := fmt.Errorf("func NewCameraSystem - the viewport must be at least 1x1: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &CameraSystem{
		Config: config,
		camera: metadata.DefaultCamera(),
		bridge: bridge,
	}, nil
}

func (cs *CameraSystem) SetCamera(camera metadata.Camera) {
	cs.camera = camera
}

func (cs *CameraSystem) Camera() metadata.Camera {
	return cs.camera
}

func (cs *CameraSystem) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		// minimised windows report 0x0, keep the last aspect ratio
		return
	}
	cs.Config.ViewportWidth = width
	cs.Config.ViewportHeight = height
}

func (cs *CameraSystem) AspectRatio() float32 {
	return float32(cs.Config.ViewportWidth) / float32(cs.Config.ViewportHeight)
}

// Apply writes view, projection and eye position.
func (cs *CameraSystem) Apply() {
	cs.bridge.SetCamera(cs.camera.View(), cs.camera.Projection(cs.AspectRatio()), cs.camera.Position)
}

func (cs *CameraSystem) Shutdown() error {
	return nil
}
