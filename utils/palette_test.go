package utils

import (
	"image"
	"image/color"
	"testing"

	"github.com/setanarut/pixelkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTone(w, h int, bg, fg color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := bg
			if x >= w*3/4 && y >= h*3/4 {
				c = fg
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []pixelkit.RGB{pixelkit.White, {0, 0, 255}, {}, {0, 255, 0}}
	SortPaletteByBrightness(p)
	assert.Equal(t, []pixelkit.RGB{{}, {0, 0, 255}, {0, 255, 0}, pixelkit.White}, p)
}

func TestExtractKMeansPalette(t *testing.T) {
	img := twoTone(40, 40, color.NRGBA{250, 250, 250, 255}, color.NRGBA{200, 0, 0, 255})
	p := ExtractKMeansPalette(img, 2)
	require.Len(t, p, 2)
	assert.Less(t, pixelkit.Distance(p[0], pixelkit.RGB{250, 250, 250}), 10.0, "heaviest cluster first")
}

func TestExtractPaletteEdgeCases(t *testing.T) {
	img := twoTone(10, 10, color.NRGBA{1, 2, 3, 255}, color.NRGBA{4, 5, 6, 255})
	assert.Nil(t, ExtractPalette(img, 0, PaletteMethodKMeans))
	assert.Nil(t, ExtractDominantPalette(image.NewNRGBA(image.Rectangle{}), 3))
	assert.Nil(t, ExtractKMeansPalette(image.NewNRGBA(image.Rect(0, 0, 4, 4)), 3), "fully transparent")
}

func TestPickDiverse(t *testing.T) {
	pool := []swatch{
		newSwatch(pixelkit.RGB{250, 5, 5}, 5),
		newSwatch(pixelkit.RGB{255, 0, 0}, 10),
		newSwatch(pixelkit.RGB{0, 0, 255}, 1),
	}
	assert.Equal(t, []pixelkit.RGB{{255, 0, 0}, {0, 0, 255}}, pickDiverse(pool, 2))
	assert.Len(t, pickDiverse(pool, 9), 3)
	assert.Nil(t, pickDiverse(nil, 2))
	assert.Equal(t, pixelkit.RGB{250, 5, 5}, pool[0].rgb, "pool is not reordered")
}

func TestSampleVisibleSkipsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(2, 0, color.NRGBA{40, 50, 60, 100})
	obs := sampleVisible(img, 100)
	require.Len(t, obs, 2)
	assert.Equal(t, []float64{40, 50, 60}, []float64(obs[1].Coordinates()))
}

func TestPaletteImage(t *testing.T) {
	img, err := PaletteImage([]pixelkit.RGB{{10, 20, 30}, pixelkit.White}, 4)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Rect)
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, img.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, img.NRGBAAt(4, 0))

	_, err = PaletteImage(nil, 4)
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestParsePaletteMethod(t *testing.T) {
	assert.Equal(t, PaletteMethodKMeans, ParsePaletteMethod("kmeans"))
	assert.Equal(t, PaletteMethodDominantColor, ParsePaletteMethod("anything"))
	assert.Equal(t, "dominantcolor", PaletteMethodDominantColor.String())
}
