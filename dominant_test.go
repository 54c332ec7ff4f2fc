package pixelkit

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantColorSingleColor(t *testing.T) {
	img := solid(7, 5, color.NRGBA{12, 34, 56, 255})
	assert.Equal(t, RGB{12, 34, 56}, DominantColor(img))
}

func TestDominantColorIgnoresAlpha(t *testing.T) {
	img := solid(3, 1, color.NRGBA{9, 9, 9, 0})
	img.SetNRGBA(0, 0, color.NRGBA{9, 9, 9, 255})
	img.SetNRGBA(2, 0, color.NRGBA{1, 1, 1, 255})
	assert.Equal(t, RGB{9, 9, 9}, DominantColor(img))
}

func TestDominantColorMajority(t *testing.T) {
	img := solid(2, 2, opaqueWhite)
	img.SetNRGBA(1, 1, opaqueBlack)
	assert.Equal(t, White, DominantColor(img))
}

func TestDominantColorTieBreak(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 200, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 200, 255})
	img.SetNRGBA(3, 0, color.NRGBA{0, 200, 1, 255})
	// All four appear once; the lexicographically smallest wins.
	assert.Equal(t, RGB{0, 0, 200}, DominantColor(img))
}

func TestDominantColorRandomImage(t *testing.T) {
	img := noise(16, 16, 7)
	got := DominantColor(img)
	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if (RGB{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}) == got {
			found = true
			break
		}
	}
	assert.True(t, found, "dominant color must be one of the image colors")
}

func TestDominantColorEmpty(t *testing.T) {
	assert.Equal(t, RGB{}, DominantColor(image.NewNRGBA(image.Rectangle{})))
	assert.Equal(t, RGB{}, DominantColor(nil))
}

func TestDominantColorOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	for y := 10; y < 12; y++ {
		for x := 10; x < 13; x++ {
			img.Set(x, y, color.RGBA{5, 6, 7, 255})
		}
	}
	assert.Equal(t, RGB{5, 6, 7}, DominantColor(img))
}
