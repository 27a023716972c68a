package systems

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief Hint for the number of materials a scene defines. */
	InitialCapacity int
}

/**
 * @brief An append-only list of materials. Tags may repeat; lookups return
 * the first match, so later duplicates are never reachable by tag.
 */
type MaterialSystem struct {
	Config    *MaterialSystemConfig
	materials []metadata.Material
}

func NewMaterialSystem(config *MaterialSystemConfig) (*MaterialSystem, error) {
	if config.InitialCapacity < 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.InitialCapacity must be >= 0: %w", core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &MaterialSystem{
		Config:    config,
		materials: make([]metadata.Material, 0, config.InitialCapacity),
	}, nil
}

func (ms *MaterialSystem) Define(material metadata.Material) {
	if _, found := ms.Lookup(material.Tag); found {
		core.LogDebug("material %q defined again, the first definition stays in effect", material.Tag)
	}
	ms.materials = append(ms.materials, material)
}

/**
 * @brief Copies the first material tagged tag into out. On a miss out is
 * left untouched and found is false.
 */
func (ms *MaterialSystem) Find(tag string, out *metadata.Material) (found bool) {
	for i := range ms.materials {
		if ms.materials[i].Tag == tag {
			*out = ms.materials[i]
			return true
		}
	}
	return false
}

// Lookup is Find returning the material by value.
func (ms *MaterialSystem) Lookup(tag string) (metadata.Material, bool) {
	var m metadata.Material
	ok := ms.Find(tag, &m)
	return m, ok
}

// Require is Lookup with a LookupMiss error instead of a flag.
func (ms *MaterialSystem) Require(tag string) (metadata.Material, error) {
	m, ok := ms.Lookup(tag)
	if !ok {
		return m, fmt.Errorf("material %q: %w", tag, core.ErrLookupMiss)
	}
	return m, nil
}

// Materials returns a copy of every definition in order, duplicates included.
func (ms *MaterialSystem) Materials() []metadata.Material {
	out := make([]metadata.Material, len(ms.materials))
	copy(out, ms.materials)
	return out
}

func (ms *MaterialSystem) Reset() {
	ms.materials = ms.materials[:0]
}

func (ms *MaterialSystem) Shutdown() error {
	ms.materials = nil
	return nil
}
