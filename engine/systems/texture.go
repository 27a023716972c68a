package systems

import (
	"fmt"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

type TextureSystemConfig struct {
	/** @brief The maximum number of textures that can be registered at once. */
	MaxTextureUnits int
}

/**
 * @brief Maps texture tags to GPU texture objects and to the texture units
 * they are bound to. Units are assigned in registration order.
 */
type TextureSystem struct {
	Config *TextureSystemConfig
	// Ordered registered textures, unit == index.
	entries []metadata.TextureEntry
	// sub systems
	decoder renderer.ImageDecoder
	gpu     renderer.GPUContext
}

func NewTextureSystem(config *TextureSystemConfig, decoder renderer.ImageDecoder, gpu renderer.GPUContext) (*TextureSystem, error) {
	if config.MaxTextureUnits <= 0 || config.MaxTextureUnits > metadata.MaxTextureUnits {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureUnits must be in (0, %d]: %w", metadata.MaxTextureUnits, core.ErrInvalidConfig)
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:  config,
		entries: make([]metadata.TextureEntry, 0, config.MaxTextureUnits),
		decoder: decoder,
		gpu:     gpu,
	}, nil
}

/**
 * @brief Decodes the image at path, uploads it and appends it under tag.
 *
 * A failure leaves the registry unchanged and leaks no GPU object. Failures
 * are LoadFailure (unreadable file), UnsupportedFormat (neither 3 nor 4
 * channels) and CapacityExceeded (every unit already taken).
 */
func (ts *TextureSystem) Register(path, tag string) error {
	if len(ts.entries) >= ts.Config.MaxTextureUnits {
		err := fmt.Errorf("cannot register texture %q from %s: all %d units in use: %w", tag, path, ts.Config.MaxTextureUnits, core.ErrCapacityExceeded)
		core.LogError(err.Error())
		return err
	}

	image, err := ts.decoder.Decode(path, &metadata.ImageResourceParams{FlipY: true})
	if err != nil {
		core.LogError("could not load image %s: %s", path, err)
		return err
	}

	format, ok := metadata.TextureFormatForChannels(image.ChannelCount)
	if !ok {
		err := fmt.Errorf("image %s has %d channels, only 3 or 4 are supported: %w", path, image.ChannelCount, core.ErrUnsupportedFormat)
		core.LogError(err.Error())
		return err
	}

	if _, exists := ts.LookupUnit(tag); exists {
		core.LogWarn("texture tag %q is already registered, the new entry will not be reachable by tag", tag)
	}

	handle, err := ts.gpu.TextureCreate()
	if err != nil {
		err = fmt.Errorf("could not create texture object for %s: %v: %w", path, err, core.ErrLoadFailure)
		core.LogError(err.Error())
		return err
	}
	ts.gpu.TextureConfigure(handle, metadata.TextureWrapRepeat, metadata.TextureFilterLinear)

	config := metadata.TextureConfig{
		Width:  image.Width,
		Height: image.Height,
		Format: format,
		Wrap:   metadata.TextureWrapRepeat,
		Filter: metadata.TextureFilterLinear,
	}
	if err := ts.gpu.TextureUpload(handle, config, image.Pixels); err != nil {
		ts.gpu.TextureUnbind()
		ts.gpu.TextureDestroy(handle)
		err = fmt.Errorf("could not upload %s: %v: %w", path, err, core.ErrLoadFailure)
		core.LogError(err.Error())
		return err
	}
	ts.gpu.TextureGenerateMipmaps(handle)

	// the GPU owns the pixels from here on
	image.Pixels = nil
	ts.gpu.TextureUnbind()

	ts.entries = append(ts.entries, metadata.TextureEntry{
		Tag:          tag,
		Handle:       handle,
		Unit:         int32(len(ts.entries)),
		Path:         path,
		Width:        image.Width,
		Height:       image.Height,
		ChannelCount: image.ChannelCount,
	})
	core.LogInfo("Successfully loaded image:%s, width:%d, height:%d, channels:%d", path, image.Width, image.Height, image.ChannelCount)
	return nil
}

/**
 * @brief Binds every registered texture to its unit, in unit order. Must run
 * after the last Register and before any draw that samples a texture.
 */
func (ts *TextureSystem) BindAll() {
	for _, e := range ts.entries {
		ts.gpu.TextureBind(e.Unit, e.Handle)
	}
}

func (ts *TextureSystem) find(tag string) (metadata.TextureEntry, bool) {
	for _, e := range ts.entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return metadata.TextureEntry{}, false
}

// LookupHandle returns the GPU object of the first texture registered under tag.
func (ts *TextureSystem) LookupHandle(tag string) (metadata.TextureHandle, bool) {
	e, ok := ts.find(tag)
	return e.Handle, ok
}

// LookupUnit returns the unit of the first texture registered under tag, or
// InvalidTextureUnit.
func (ts *TextureSystem) LookupUnit(tag string) (int32, bool) {
	e, ok := ts.find(tag)
	if !ok {
		return metadata.InvalidTextureUnit, false
	}
	return e.Unit, true
}

// RequireUnit is LookupUnit with a LookupMiss error instead of a sentinel.
func (ts *TextureSystem) RequireUnit(tag string) (int32, error) {
	unit, ok := ts.LookupUnit(tag)
	if !ok {
		return unit, fmt.Errorf("texture %q: %w", tag, core.ErrLookupMiss)
	}
	return unit, nil
}

// Entries returns a copy of the registered textures in unit order.
func (ts *TextureSystem) Entries() []metadata.TextureEntry {
	out := make([]metadata.TextureEntry, len(ts.entries))
	copy(out, ts.entries)
	return out
}

func (ts *TextureSystem) Count() int {
	return len(ts.entries)
}

/**
 * @brief Deletes every GPU texture object exactly once and empties the
 * registry. Calling it again is a no-op.
 */
func (ts *TextureSystem) ReleaseAll() {
	for _, e := range ts.entries {
		ts.gpu.TextureDestroy(e.Handle)
	}
	ts.entries = ts.entries[:0]
}

func (ts *TextureSystem) Shutdown() error {
	ts.ReleaseAll()
	return nil
}
