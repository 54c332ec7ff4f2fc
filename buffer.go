package pixelkit

import (
	"image"

	"github.com/disintegration/imaging"
)

// Clone returns a fresh NRGBA copy of img with its origin at (0,0).
// Every operation in this package starts from such a copy, so inputs are
// never written to.
func Clone(img image.Image) *image.NRGBA {
	if img == nil {
		return newBuffer(0, 0)
	}
	return imaging.Clone(img)
}

func newBuffer(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rectangle{})
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func isEmpty(img image.Image) bool {
	if img == nil {
		return true
	}
	return img.Bounds().Empty()
}

func clampUint8(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
