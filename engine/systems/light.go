package systems

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

/**
 * @brief Owns the four light slots of the lighting program.
 */
type LightSystem struct {
	bridge      *ShaderStateBridge
	lights      [metadata.MaxLightSources]*metadata.LightSource
	useLighting bool
}

func NewLightSystem(bridge *ShaderStateBridge) *LightSystem {
	return &LightSystem{bridge: bridge}
}

/**
 * @brief Fills the slots with lights in order and marks the rest inactive,
 * then writes every slot. More lights than slots is an error and writes
 * nothing.
 */
func (ls *LightSystem) Configure(useLighting bool, lights []metadata.LightSource) error {
	if len(lights) > metadata.MaxLightSources {
		err := fmt.Errorf("%d lights configured, the shader has %d slots: %w", len(lights), metadata.MaxLightSources, core.ErrInvalidConfig)
		core.LogError(err.Error())
		return err
	}

	ls.useLighting = useLighting
	for i := range ls.lights {
		ls.lights[i] = nil
		if i < len(lights) {
			l := lights[i]
			ls.lights[i] = &l
		}
	}
	return ls.apply()
}

func (ls *LightSystem) apply() error {
	ls.bridge.SetLightingEnabled(ls.useLighting)
	for i, l := range ls.lights {
		if err := ls.bridge.SetLight(i, l); err != nil {
			return err
		}
	}
	return nil
}

// Light returns the light in slot index, if the slot is active.
func (ls *LightSystem) Light(index int) (metadata.LightSource, bool) {
	if index < 0 || index >= metadata.MaxLightSources || ls.lights[index] == nil {
		return metadata.LightSource{}, false
	}
	return *ls.lights[index], true
}

func (ls *LightSystem) ActiveCount() int {
	n := 0
	for _, l := range ls.lights {
		if l != nil {
			n++
		}
	}
	return n
}

// Reset deactivates every slot without writing to the program.
func (ls *LightSystem) Reset() {
	ls.lights = [metadata.MaxLightSources]*metadata.LightSource{}
	ls.useLighting = false
}
