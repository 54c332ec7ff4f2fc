package utils

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), 90, 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"png":   FormatPNG,
		".JPG":  FormatJPEG,
		"jpeg":  FormatJPEG,
		"webp":  FormatWebP,
		"gif":   FormatGIF,
		".tiff": FormatTIFF,
		"bmp":   FormatBMP,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("heic")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	f, err := FormatFromPath("/tmp/out.Jpeg")
	require.NoError(t, err)
	assert.Equal(t, FormatJPEG, f)
	assert.True(t, f.Lossy())
	assert.False(t, FormatPNG.Lossy())
	assert.False(t, FormatWebP.Lossy())
}

func TestEncodeDecodePNG(t *testing.T) {
	img := gradient(16, 9)
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 0})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatPNG, 90))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, img.At(5, 5), color.NRGBAModel.Convert(got.At(5, 5)))
}

func TestEncodeJPEGQuality(t *testing.T) {
	img := gradient(64, 64)
	low, err := EncodedSize(img, FormatJPEG, 5)
	require.NoError(t, err)
	high, err := EncodedSize(img, FormatJPEG, 100)
	require.NoError(t, err)
	assert.Less(t, low, high)
}

func TestEncodeWebPKeepsAlpha(t *testing.T) {
	img := gradient(16, 16)
	img.SetNRGBA(3, 4, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(5, 5, color.NRGBA{200, 100, 50, 128})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatWebP, 80))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, img.At(10, 10), color.NRGBAModel.Convert(got.At(10, 10)))
	assert.Equal(t, img.At(5, 5), color.NRGBAModel.Convert(got.At(5, 5)))
	_, _, _, a := got.At(3, 4).RGBA()
	assert.Zero(t, a)
}

func TestEncodeWebPOpaque(t *testing.T) {
	img := gradient(32, 24)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, FormatWebP, 90))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, gradient(4, 4), Format(99), 80)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveAndReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	img := gradient(8, 8)
	require.NoError(t, SaveImage(img, path, FormatPNG, 100))

	got, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), got.Bounds())

	_, err = ReadImage(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	require.NoError(t, SaveImage(img, filepath.Join(dir, "out.webp"), FormatWebP, 80))
	assert.FileExists(t, filepath.Join(dir, "out.webp"))

	assert.Error(t, SaveImage(img, filepath.Join(dir, "x.bin"), Format(99), 80))
	assert.NoFileExists(t, filepath.Join(dir, "x.bin"))
}

func TestFormatFileSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0 Bytes",
		512:             "512 Bytes",
		1024:            "1 KB",
		1536:            "1.5 KB",
		1234567:         "1.18 MB",
		5 * 1024 * 1024: "5 MB",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatFileSize(in), in)
	}
}
