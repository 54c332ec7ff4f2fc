package pixelkit

import (
	"image"
	"math"
)

// CompressedSize scales w×h down to the optional bounds, keeping the aspect
// ratio. Width is clamped first and height is then checked against the
// already-scaled size. The two steps are sequential, not a joint minimum
// scale. A bound <= 0 means no bound.
func CompressedSize(w, h, maxWidth, maxHeight int) (int, int) {
	if maxWidth > 0 && w > maxWidth {
		h = int(math.Round(float64(h) * float64(maxWidth) / float64(w)))
		w = maxWidth
	}
	if maxHeight > 0 && h > maxHeight {
		w = int(math.Round(float64(w) * float64(maxHeight) / float64(h)))
		h = maxHeight
	}
	return w, h
}

// Compress prepares img for re-encoding: it is resampled to CompressedSize
// when a bound applies, and copied otherwise. Images never grow.
func Compress(img image.Image, maxWidth, maxHeight int) *image.NRGBA {
	if isEmpty(img) {
		return newBuffer(0, 0)
	}
	b := img.Bounds()
	w, h := CompressedSize(b.Dx(), b.Dy(), maxWidth, maxHeight)
	if w == b.Dx() && h == b.Dy() {
		return Clone(img)
	}
	return Resize(img, w, h)
}
