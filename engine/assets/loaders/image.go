package loaders

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

// ImageLoader decodes image files into tightly packed 8-bit pixel buffers.
type ImageLoader struct{}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	typedParams, _ := params.(*metadata.ImageResourceParams)
	data, err := il.Decode(path, typedParams)
	if err != nil {
		return nil, err
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeImage,
		Name:     "image",
		FullPath: path,
		DataSize: uint64(len(data.Pixels)),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(resource *metadata.Resource) error {
	if data, ok := resource.Data.(*metadata.ImageResourceData); ok {
		data.Pixels = nil
	}
	resource.Data = nil
	return nil
}

/**
 * @brief Reads the file at path and returns its pixels. Row 0 of the result
 * is the bottom row of the file when params.FlipY is set, which is what
 * OpenGL texture coordinates expect.
 *
 * Grayscale files come back with one channel; opaque colour files with three;
 * everything else with four.
 */
func (il *ImageLoader) Decode(path string, params *metadata.ImageResourceParams) (*metadata.ImageResourceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read image %s: %w", path, core.ErrLoadFailure)
	}
	if !filetype.IsImage(raw) {
		kind, _ := filetype.Match(raw)
		return nil, fmt.Errorf("%s is not an image (detected %q): %w", path, kind.MIME.Value, core.ErrLoadFailure)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %v: %w", path, err, core.ErrLoadFailure)
	}
	core.LogDebug("decoded %s as %s", path, format)

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("image %s is empty: %w", path, core.ErrLoadFailure)
	}

	channels := channelCount(img)
	flip := params != nil && params.FlipY
	// bild returns premultiplied RGBA, which is only lossless without alpha
	if flip && channels != 4 {
		img = transform.FlipV(img)
	}
	pixels := packPixels(img, channels)
	if flip && channels == 4 {
		flipRows(pixels, width*int(channels))
	}

	return &metadata.ImageResourceData{
		ChannelCount: channels,
		Width:        uint32(width),
		Height:       uint32(height),
		Pixels:       pixels,
	}, nil
}

// flipRows reverses the row order of a packed buffer in place.
func flipRows(pixels []uint8, stride int) {
	row := make([]uint8, stride)
	for top, bottom := 0, len(pixels)-stride; top < bottom; top, bottom = top+stride, bottom-stride {
		copy(row, pixels[top:top+stride])
		copy(pixels[top:top+stride], pixels[bottom:bottom+stride])
		copy(pixels[bottom:bottom+stride], row)
	}
}

func channelCount(img image.Image) uint8 {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

func packPixels(img image.Image, channels uint8) []uint8 {
	bounds := img.Bounds()
	switch channels {
	case 1:
		gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
		return gray.Pix
	case 3:
		rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
		out := make([]uint8, 0, bounds.Dx()*bounds.Dy()*3)
		for i := 0; i < len(rgba.Pix); i += 4 {
			out = append(out, rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2])
		}
		return out
	}
	if src, ok := img.(*image.NRGBA); ok {
		// straight alpha already, copy the rows as decoded
		stride := bounds.Dx() * 4
		out := make([]uint8, 0, stride*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			start := src.PixOffset(bounds.Min.X, y)
			out = append(out, src.Pix[start:start+stride]...)
		}
		return out
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba.Pix
}

var _ renderer.ImageDecoder = (*ImageLoader)(nil)
