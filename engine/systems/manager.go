package systems

import (
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type SystemManagerConfig struct {
	MaxTextureUnits int
	ViewportWidth   uint32
	ViewportHeight  uint32
}

type SystemManager struct {
	textureSystem  *TextureSystem
	materialSystem *MaterialSystem
	shaderBridge   *ShaderStateBridge
	lightSystem    *LightSystem
	meshSystem     *MeshSystem
	cameraSystem   *CameraSystem
	sceneAssembler *SceneAssembler
}

func NewSystemManager(config *SystemManagerConfig, gpu renderer.GPUContext, program renderer.ShaderProgram, decoder renderer.ImageDecoder) (*SystemManager, error) {
	if config.MaxTextureUnits == 0 {
		config.MaxTextureUnits = metadata.MaxTextureUnits
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureUnits: config.MaxTextureUnits,
	}, decoder, gpu)
	if err != nil {
		return nil, err
	}
	ms, err := NewMaterialSystem(&MaterialSystemConfig{
		InitialCapacity: 8,
	})
	if err != nil {
		return nil, err
	}
	sb, err := NewShaderStateBridge(program, ts, ms)
	if err != nil {
		return nil, err
	}
	ls := NewLightSystem(sb)
	mesh := NewMeshSystem(gpu)
	cs, err := NewCameraSystem(&CameraSystemConfig{
		ViewportWidth:  config.ViewportWidth,
		ViewportHeight: config.ViewportHeight,
	}, sb)
	if err != nil {
		return nil, err
	}
	sa, err := NewSceneAssembler(ts, ms, sb, ls, mesh)
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		textureSystem:  ts,
		materialSystem: ms,
		shaderBridge:   sb,
		lightSystem:    ls,
		meshSystem:     mesh,
		cameraSystem:   cs,
		sceneAssembler: sa,
	}, nil
}

/**
 * @brief Sets up scene and points the camera at it.
 */
func (sm *SystemManager) LoadScene(scene *metadata.SceneDescription) error {
	if err := sm.sceneAssembler.Setup(scene); err != nil {
		return err
	}
	sm.cameraSystem.SetCamera(scene.Camera)
	return nil
}

// DrawScene writes the camera and replays the draw list.
func (sm *SystemManager) DrawScene() error {
	sm.cameraSystem.Apply()
	sm.sceneAssembler.Render()
	return nil
}

func (sm *SystemManager) OnResize(width, height uint32) {
	sm.cameraSystem.Resize(width, height)
}

func (sm *SystemManager) Textures() *TextureSystem { return sm.textureSystem }
func (sm *SystemManager) Materials() *MaterialSystem { return sm.materialSystem }
func (sm *SystemManager) ShaderBridge() *ShaderStateBridge { return sm.shaderBridge }
func (sm *SystemManager) Lights() *LightSystem { return sm.lightSystem }
func (sm *SystemManager) Meshes() *MeshSystem { return sm.meshSystem }
func (sm *SystemManager) Camera() *CameraSystem { return sm.cameraSystem }
func (sm *SystemManager) Scene() *SceneAssembler { return sm.sceneAssembler }

func (sm *SystemManager) Shutdown() error {
	if err := sm.sceneAssembler.Shutdown(); err != nil {
		return err
	}
	if err := sm.cameraSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.meshSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.materialSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.textureSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
