package metadata

import "fmt"

const (
	/** @brief The number of texture units a scene may bind at once. */
	MaxTextureUnits int = 16
	/** @brief Written to a sampler uniform when a tag does not resolve. */
	InvalidTextureUnit int32 = -1
)

// TextureHandle is an opaque GPU texture object id. Zero is never a valid handle.
type TextureHandle uint32

// TextureWrap selects how coordinates outside [0,1] are sampled.
type TextureWrap int

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapClampToEdge
)

// TextureFilter selects the minification and magnification filter.
type TextureFilter int

const (
	TextureFilterLinear TextureFilter = iota
	TextureFilterNearest
)

// TextureFormat is the internal pixel layout of an uploaded texture.
type TextureFormat int

const (
	TextureFormatRGB8 TextureFormat = iota
	TextureFormatRGBA8
)

func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGB8:
		return "RGB8"
	case TextureFormatRGBA8:
		return "RGBA8"
	}
	return fmt.Sprintf("TextureFormat(%d)", int(f))
}

// ChannelCount returns the bytes per pixel of the format.
func (f TextureFormat) ChannelCount() uint8 {
	if f == TextureFormatRGBA8 {
		return 4
	}
	return 3
}

// TextureFormatForChannels maps a decoded channel count to an upload format.
func TextureFormatForChannels(channels uint8) (TextureFormat, bool) {
	switch channels {
	case 3:
		return TextureFormatRGB8, true
	case 4:
		return TextureFormatRGBA8, true
	}
	return 0, false
}

/**
 * @brief Describes how a texture object should be created.
 */
type TextureConfig struct {
	Width  uint32
	Height uint32
	Format TextureFormat
	Wrap   TextureWrap
	Filter TextureFilter
}

/**
 * @brief A registered texture: the tag it is known by, the GPU object
 * backing it and the unit it is bound to.
 */
type TextureEntry struct {
	/** @brief The application defined name of the texture. */
	Tag string
	/** @brief The GPU texture object. */
	Handle TextureHandle
	/** @brief The texture unit, assigned in registration order. */
	Unit int32
	/** @brief The file the pixels were loaded from. */
	Path         string
	Width        uint32
	Height       uint32
	ChannelCount uint8
}
