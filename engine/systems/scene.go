package systems

import (
	"errors"
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

/**
 * @brief Builds a scene once (materials, lights, textures, meshes) and then
 * replays its draw list every frame.
 */
type SceneAssembler struct {
	textures  *TextureSystem
	materials *MaterialSystem
	bridge    *ShaderStateBridge
	lights    *LightSystem
	meshes    renderer.MeshLibrary

	scene *metadata.SceneDescription
	// non-fatal failures collected during setup
	setupErrors []error
	ready       bool
}

func NewSceneAssembler(textures *TextureSystem, materials *MaterialSystem, bridge *ShaderStateBridge, lights *LightSystem, meshes renderer.MeshLibrary) (*SceneAssembler, error) {
	if textures == nil || materials == nil || bridge == nil || lights == nil || meshes == nil {
		err := errors.New("func NewSceneAssembler - every subsystem is required")
		core.LogError(err.Error())
		return nil, err
	}
	return &SceneAssembler{
		textures:  textures,
		materials: materials,
		bridge:    bridge,
		lights:    lights,
		meshes:    meshes,
	}, nil
}

/**
 * @brief Prepares every resource scene needs. A program missing a binding,
 * an invalid description or a mesh that cannot be uploaded fails setup.
 * Textures that cannot be loaded are skipped and reported by Validate.
 *
 * A previous scene is torn down first.
 */
func (sa *SceneAssembler) Setup(scene *metadata.SceneDescription) error {
	if sa.ready {
		if err := sa.Shutdown(); err != nil {
			return err
		}
	}
	if err := sa.bridge.Validate(); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := scene.Validate(); err != nil {
		core.LogError("scene %q is invalid: %s", scene.Name, err)
		return err
	}

	sa.scene = scene
	sa.setupErrors = nil

	for _, m := range scene.Materials {
		sa.materials.Define(m)
	}

	if err := sa.lights.Configure(scene.UseLighting, scene.Lights); err != nil {
		sa.materials.Reset()
		sa.scene = nil
		return err
	}

	for _, t := range scene.Textures {
		if err := sa.textures.Register(t.Path, t.Tag); err != nil {
			sa.setupErrors = append(sa.setupErrors, err)
		}
	}
	sa.textures.BindAll()

	for _, shape := range scene.Shapes() {
		if err := sa.meshes.Load(shape); err != nil {
			_ = sa.Shutdown()
			return err
		}
	}
	sa.ready = true

	if err := sa.Validate(); err != nil {
		core.LogWarn("scene %q set up with problems: %s", scene.Name, err)
	}
	core.LogInfo("scene %q ready: %d textures, %d materials, %d lights, %d objects",
		scene.Name, sa.textures.Count(), len(scene.Materials), sa.lights.ActiveCount(), len(scene.Objects))
	return nil
}

/**
 * @brief Replays the draw list in order. Appearance fields are applied as
 * colour, material, texture and UV scale; absent fields are not written.
 */
func (sa *SceneAssembler) Render() {
	if !sa.ready {
		return
	}
	for i := range sa.scene.Objects {
		sa.draw(&sa.scene.Objects[i])
	}
}

func (sa *SceneAssembler) draw(o *metadata.ObjectDescriptor) {
	sa.bridge.SetTransform(o.Transform.Matrix())

	a := o.Appearance
	if a.Color != nil {
		sa.bridge.SetColor(*a.Color)
	}
	if a.Material != "" {
		_ = sa.bridge.SetMaterial(a.Material)
	}
	if a.Texture != "" {
		_ = sa.bridge.SetTexture(a.Texture)
	}
	if a.UVScale != nil {
		sa.bridge.SetUVScale(a.UVScale.X, a.UVScale.Y)
	}

	sa.meshes.Draw(o.Shape)
}

/**
 * @brief Reports every texture that failed to load and every object whose
 * texture or material tag does not resolve.
 */
func (sa *SceneAssembler) Validate() error {
	if sa.scene == nil {
		return nil
	}
	errs := append([]error(nil), sa.setupErrors...)
	for i, o := range sa.scene.Objects {
		if o.Appearance.Texture != "" {
			if _, err := sa.textures.RequireUnit(o.Appearance.Texture); err != nil {
				errs = append(errs, fmt.Errorf("object %d (%s): %w", i, o.Name, err))
			}
		}
		if o.Appearance.Material != "" {
			if _, err := sa.materials.Require(o.Appearance.Material); err != nil {
				errs = append(errs, fmt.Errorf("object %d (%s): %w", i, o.Name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (sa *SceneAssembler) Scene() *metadata.SceneDescription {
	return sa.scene
}

func (sa *SceneAssembler) Ready() bool {
	return sa.ready
}

/**
 * @brief Releases textures and meshes and forgets the scene. Safe to call
 * more than once.
 */
func (sa *SceneAssembler) Shutdown() error {
	sa.textures.ReleaseAll()
	err := sa.meshes.Shutdown()
	sa.materials.Reset()
	sa.lights.Reset()
	sa.scene = nil
	sa.setupErrors = nil
	sa.ready = false
	return err
}
