package pixelkit

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
)

type FlipAxis int

const (
	// FlipHorizontal mirrors left-right about the vertical centerline.
	FlipHorizontal FlipAxis = iota
	// FlipVertical mirrors top-bottom about the horizontal centerline.
	FlipVertical
)

func (a FlipAxis) String() string {
	if a == FlipVertical {
		return "vertical"
	}
	return "horizontal"
}

// Crop copies the w×h rectangle whose top-left corner is (x,y). Destination
// pixels that fall outside the source stay transparent. Non-positive w or h
// yields an empty image.
func Crop(img image.Image, x, y, w, h int) *image.NRGBA {
	dst := newBuffer(w, h)
	if dst.Rect.Empty() || isEmpty(img) {
		return dst
	}
	sp := img.Bounds().Min.Add(image.Pt(x, y))
	draw.Draw(dst, dst.Bounds(), img, sp, draw.Src)
	return dst
}

// Resize resamples img to exactly w×h with a bilinear kernel.
func Resize(img image.Image, w, h int) *image.NRGBA {
	dst := newBuffer(w, h)
	if dst.Rect.Empty() || isEmpty(img) {
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// RotatedSize is the bounding box of a w×h image rotated by degrees.
func RotatedSize(w, h int, degrees float64) (int, int) {
	theta := degrees * math.Pi / 180
	sin, cos := math.Abs(math.Sin(theta)), math.Abs(math.Cos(theta))
	fw, fh := float64(w), float64(h)
	return ceilTight(fw*cos + fh*sin), ceilTight(fw*sin + fh*cos)
}

func ceilTight(v float64) int {
	return int(math.Ceil(v - 1e-9))
}

// Rotate turns img clockwise by degrees around its center onto a canvas just
// large enough for the rotated bounding box (see RotatedSize). The uncovered
// corners are transparent.
func Rotate(img image.Image, degrees float64) *image.NRGBA {
	if isEmpty(img) {
		return newBuffer(0, 0)
	}
	norm := math.Mod(degrees, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return Clone(img)
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	nw, nh := RotatedSize(w, h, norm)
	dst := newBuffer(nw, nh)
	draw.BiLinear.Transform(dst, rotationMatrix(b, nw, nh, norm), img, b, draw.Src, nil)
	return dst
}

// rotationMatrix maps source coordinates to the destination canvas:
// move the source center to the origin, rotate, then move to the canvas
// center.
func rotationMatrix(src image.Rectangle, nw, nh int, degrees float64) f64.Aff3 {
	theta := degrees * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cx := float64(src.Min.X) + float64(src.Dx())/2
	cy := float64(src.Min.Y) + float64(src.Dy())/2

	toOrigin := mat.NewDense(3, 3, []float64{
		1, 0, -cx,
		0, 1, -cy,
		0, 0, 1,
	})
	rot := mat.NewDense(3, 3, []float64{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	})
	toCanvas := mat.NewDense(3, 3, []float64{
		1, 0, float64(nw) / 2,
		0, 1, float64(nh) / 2,
		0, 0, 1,
	})
	var m mat.Dense
	m.Product(toCanvas, rot, toOrigin)
	return f64.Aff3{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
	}
}

// Flip mirrors img about the given axis. Dimensions are unchanged.
func Flip(img image.Image, axis FlipAxis) *image.NRGBA {
	if isEmpty(img) {
		return newBuffer(0, 0)
	}
	if axis == FlipVertical {
		return imaging.FlipV(img)
	}
	return imaging.FlipH(img)
}

// FitAspect grows the short side of a w×h selection so that it matches the
// ratioW:ratioH aspect. Non-positive ratios leave the selection unchanged.
func FitAspect(w, h int, ratioW, ratioH float64) (int, int) {
	if !(ratioW > 0) || !(ratioH > 0) {
		return w, h
	}
	ratio := ratioW / ratioH
	if h > 0 && float64(w)/float64(h) <= ratio {
		return int(math.Floor(float64(h) * ratio)), h
	}
	return w, int(math.Floor(float64(w) / ratio))
}
