package loaders

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/diorama/engine/core"
	"github.com/spaghettifunk/diorama/engine/renderer/metadata"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func twoRows(top, bottom color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, top)
	img.SetNRGBA(0, 1, bottom)
	return img
}

func TestDecodeOpaquePNG(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	path := writePNG(t, t.TempDir(), "opaque.png", twoRows(red, blue))

	il := &ImageLoader{}
	data, err := il.Decode(path, &metadata.ImageResourceParams{FlipY: false})
	require.NoError(t, err)
	assert.Equal(t, uint8(3), data.ChannelCount)
	assert.Equal(t, uint32(1), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Equal(t, []uint8{255, 0, 0, 0, 0, 255}, data.Pixels)

	flipped, err := il.Decode(path, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255, 0, 0}, flipped.Pixels)
}

func TestDecodeTranslucentPNG(t *testing.T) {
	faint := color.NRGBA{R: 200, G: 100, B: 50, A: 3}
	half := color.NRGBA{R: 255, G: 16, A: 128}
	path := writePNG(t, t.TempDir(), "case.png", twoRows(faint, half))
	il := &ImageLoader{}

	data, err := il.Decode(path, &metadata.ImageResourceParams{FlipY: false})
	require.NoError(t, err)
	assert.Equal(t, uint8(4), data.ChannelCount)
	assert.Equal(t, []uint8{200, 100, 50, 3, 255, 16, 0, 128}, data.Pixels)

	// colour channels of low alpha pixels must survive the flip unchanged
	flipped, err := il.Decode(path, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 16, 0, 128, 200, 100, 50, 3}, flipped.Pixels)
}

func TestFlipRows(t *testing.T) {
	pixels := []uint8{1, 2, 3, 4, 5, 6}
	flipRows(pixels, 2)
	assert.Equal(t, []uint8{5, 6, 3, 4, 1, 2}, pixels)

	single := []uint8{7, 8}
	flipRows(single, 2)
	assert.Equal(t, []uint8{7, 8}, single)
}

func TestDecodeGrayPNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	path := writePNG(t, t.TempDir(), "gray.png", img)

	data, err := (&ImageLoader{}).Decode(path, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), data.ChannelCount)
	assert.Len(t, data.Pixels, 16)
}

func TestDecodeJPEG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wood.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	res, err := (&ImageLoader{}).Load(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{FlipY: true})
	require.NoError(t, err)
	data := res.Data.(*metadata.ImageResourceData)
	assert.Equal(t, uint8(3), data.ChannelCount)
	assert.Len(t, data.Pixels, 8*8*3)
	assert.Equal(t, uint64(len(data.Pixels)), res.DataSize)
}

func TestDecodeFailures(t *testing.T) {
	dir := t.TempDir()
	il := &ImageLoader{}

	_, err := il.Decode(filepath.Join(dir, "missing.png"), nil)
	assert.ErrorIs(t, err, core.ErrLoadFailure)

	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("this is not an image at all"), 0o644))
	_, err = il.Decode(text, nil)
	assert.ErrorIs(t, err, core.ErrLoadFailure)

	// a valid signature with a truncated body
	truncated := filepath.Join(dir, "truncated.png")
	require.NoError(t, os.WriteFile(truncated, []byte("\x89PNG\r\n\x1a\n\x00\x00"), 0o644))
	_, err = il.Decode(truncated, nil)
	assert.ErrorIs(t, err, core.ErrLoadFailure)
}
