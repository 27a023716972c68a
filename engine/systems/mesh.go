package systems

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

func unknownShape(shape metadata.Shape) error {
	return fmt.Errorf("shape %s: %w", shape, core.ErrUnknownShape)
}

/**
 * @brief The primitive mesh library. Each shape is generated and uploaded
 * at most once; Draw submits it with the uniform state currently bound.
 */
type MeshSystem struct {
	gpu    renderer.GPUContext
	meshes map[metadata.Shape]metadata.MeshHandle
	// load order, for deterministic teardown
	order []metadata.Shape
}

func NewMeshSystem(gpu renderer.GPUContext) *MeshSystem {
	return &MeshSystem{
		gpu:    gpu,
		meshes: make(map[metadata.Shape]metadata.MeshHandle),
	}
}

func (ms *MeshSystem) Load(shape metadata.Shape) error {
	if _, loaded := ms.meshes[shape]; loaded {
		return nil
	}
	config, err := GenerateShapeConfig(shape)
	if err != nil {
		core.LogError(err.Error())
		return err
	}
	handle, err := ms.gpu.CreateMesh(config)
	if err != nil {
		err = fmt.Errorf("could not upload %s mesh: %w", shape, err)
		core.LogError(err.Error())
		return err
	}
	ms.meshes[shape] = handle
	ms.order = append(ms.order, shape)
	core.LogDebug("loaded %s mesh: %d vertices, %d indices", shape, len(config.Vertices), len(config.Indices))
	return nil
}

func (ms *MeshSystem) Loaded(shape metadata.Shape) bool {
	_, ok := ms.meshes[shape]
	return ok
}

func (ms *MeshSystem) Draw(shape metadata.Shape) {
	handle, ok := ms.meshes[shape]
	if !ok {
		core.LogWarn("draw of %s skipped, the mesh was never loaded", shape)
		return
	}
	ms.gpu.DrawMesh(handle)
}

func (ms *MeshSystem) Shutdown() error {
	for _, shape := range ms.order {
		ms.gpu.DestroyMesh(ms.meshes[shape])
		delete(ms.meshes, shape)
	}
	ms.order = nil
	return nil
}

var _ renderer.MeshLibrary = (*MeshSystem)(nil)
