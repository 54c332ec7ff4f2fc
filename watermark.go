package pixelkit

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/setanarut/pixelkit/internal/logger"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	boldOnce sync.Once
	boldFont *sfnt.Font
	boldErr  error
)

func watermarkFont() (*sfnt.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

type WatermarkOptions struct {
	Text string
	// Anchor of the text baseline start, in pixels.
	X, Y float64
	// Font size in pixels.
	FontSize float64
	Color    RGB
	// Opacity in percent (0-100).
	Opacity float64
}

func DefaultWatermarkOptions() WatermarkOptions {
	return WatermarkOptions{
		Text:     "Watermark",
		FontSize: 48,
		Color:    White,
		Opacity:  70,
	}
}

// Watermark draws opt.Text in bold sans-serif onto a copy of img. The text
// starts at (X,Y) on its baseline; callers do their own centering.
func Watermark(img image.Image, opt WatermarkOptions) *image.NRGBA {
	out := Clone(img)
	alpha := clampUint8(math.Min(100, opt.Opacity) / 100 * 255)
	if out.Rect.Empty() || opt.Text == "" || alpha == 0 || !(opt.FontSize > 0) {
		return out
	}
	f, err := watermarkFont()
	if err != nil {
		logWarnOnce(err)
		return out
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opt.FontSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		logWarnOnce(err)
		return out
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.NRGBA{R: opt.Color.R, G: opt.Color.G, B: opt.Color.B, A: alpha}),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(math.Round(opt.X * 64)),
			Y: fixed.Int26_6(math.Round(opt.Y * 64)),
		},
	}
	d.DrawString(opt.Text)
	return out
}

// AddWatermark is Watermark with positional arguments and a hex color.
func AddWatermark(img image.Image, text string, x, y, fontSize float64, hexColor string, opacity float64) *image.NRGBA {
	return Watermark(img, WatermarkOptions{
		Text:     text,
		X:        x,
		Y:        y,
		FontSize: fontSize,
		Color:    ParseHex(hexColor),
		Opacity:  opacity,
	})
}

// Named anchor positions as percentages of width and height.
var WatermarkPositions = map[string][2]float64{
	"top-left":      {20, 30},
	"top-center":    {50, 30},
	"top-right":     {80, 30},
	"center-left":   {20, 50},
	"center":        {50, 50},
	"center-right":  {80, 50},
	"bottom-left":   {20, 70},
	"bottom-center": {50, 70},
	"bottom-right":  {80, 70},
}

// WatermarkPosition converts percentages of a w×h image into pixels.
func WatermarkPosition(w, h int, percentX, percentY float64) (float64, float64) {
	return percentX / 100 * float64(w), percentY / 100 * float64(h)
}

// NamedWatermarkPosition resolves one of WatermarkPositions.
func NamedWatermarkPosition(w, h int, name string) (float64, float64, bool) {
	p, ok := WatermarkPositions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, false
	}
	x, y := WatermarkPosition(w, h, p[0], p[1])
	return x, y, true
}

var warnOnce sync.Once

func logWarnOnce(err error) {
	warnOnce.Do(func() {
		logger.WithError(err).Warn("watermark font unavailable, text skipped")
	})
}
