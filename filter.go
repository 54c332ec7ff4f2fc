package pixelkit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/setanarut/pixelkit/internal/logger"
	"github.com/sirupsen/logrus"
)

// FilterSettings holds the six filter dials. It is a plain value and is
// what presets store.
type FilterSettings struct {
	// Percent, 100 = unchanged. Range 0-200.
	Brightness float64 `json:"brightness" yaml:"brightness"`
	// Percent, 100 = unchanged. Range 0-200.
	Contrast float64 `json:"contrast" yaml:"contrast"`
	// Percent, 100 = unchanged. Range 0-200.
	Saturation float64 `json:"saturation" yaml:"saturation"`
	// Gaussian standard deviation in pixels. Range 0-20.
	Blur float64 `json:"blur" yaml:"blur"`
	// Percent. Range 0-100.
	Grayscale float64 `json:"grayscale" yaml:"grayscale"`
	// Percent. Range 0-100.
	Sepia float64 `json:"sepia" yaml:"sepia"`
}

func DefaultFilterSettings() FilterSettings {
	return FilterSettings{
		Brightness: 100,
		Contrast:   100,
		Saturation: 100,
	}
}

func (s FilterSettings) Clamped() FilterSettings {
	return FilterSettings{
		Brightness: clampFloat(s.Brightness, 0, 200),
		Contrast:   clampFloat(s.Contrast, 0, 200),
		Saturation: clampFloat(s.Saturation, 0, 200),
		Blur:       clampFloat(s.Blur, 0, 20),
		Grayscale:  clampFloat(s.Grayscale, 0, 100),
		Sepia:      clampFloat(s.Sepia, 0, 100),
	}
}

func (s FilterSettings) IsIdentity() bool {
	return s.Clamped() == DefaultFilterSettings()
}

// CSS renders the settings as a CSS filter property value.
func (s FilterSettings) CSS() string {
	return fmt.Sprintf("brightness(%g%%) contrast(%g%%) saturate(%g%%) blur(%gpx) grayscale(%g%%) sepia(%g%%)",
		s.Brightness, s.Contrast, s.Saturation, s.Blur, s.Grayscale, s.Sepia)
}

// ApplyFilters runs the filter chain in CSS order: brightness, contrast,
// saturate, blur, grayscale, sepia. Each stage clamps to [0,1] before the
// next one reads it. Alpha is left as is except where blur spreads it.
func ApplyFilters(img image.Image, settings FilterSettings) *image.NRGBA {
	s := settings.Clamped()
	if isEmpty(img) || s == DefaultFilterSettings() {
		return Clone(img)
	}
	logger.WithFields(logrus.Fields{"filter": s.CSS()}).Debug("applying filters")

	b := s.Brightness / 100
	c := s.Contrast / 100
	sat := saturateMatrix(s.Saturation / 100)
	out := imaging.AdjustFunc(img, func(px color.NRGBA) color.NRGBA {
		r, g, bl := unit(px.R), unit(px.G), unit(px.B)
		if b != 1 {
			r, g, bl = clamp01(r*b), clamp01(g*b), clamp01(bl*b)
		}
		if c != 1 {
			r, g, bl = clamp01((r-0.5)*c+0.5), clamp01((g-0.5)*c+0.5), clamp01((bl-0.5)*c+0.5)
		}
		if s.Saturation != 100 {
			r, g, bl = sat.apply(r, g, bl)
		}
		return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(bl), A: px.A}
	})

	if s.Blur > 0 {
		out = imaging.Blur(out, s.Blur)
	}

	if s.Grayscale > 0 || s.Sepia > 0 {
		gray := grayscaleMatrix(s.Grayscale / 100)
		sepia := sepiaMatrix(s.Sepia / 100)
		out = imaging.AdjustFunc(out, func(px color.NRGBA) color.NRGBA {
			r, g, bl := unit(px.R), unit(px.G), unit(px.B)
			if s.Grayscale > 0 {
				r, g, bl = gray.apply(r, g, bl)
			}
			if s.Sepia > 0 {
				r, g, bl = sepia.apply(r, g, bl)
			}
			return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(bl), A: px.A}
		})
	}
	return out
}

// ============ COLOR MATRICES ============

// colorMatrix is a row-major 3×3 RGB transform (Filter Effects, feColorMatrix).
type colorMatrix [9]float64

func (m colorMatrix) apply(r, g, b float64) (float64, float64, float64) {
	return clamp01(m[0]*r + m[1]*g + m[2]*b),
		clamp01(m[3]*r + m[4]*g + m[5]*b),
		clamp01(m[6]*r + m[7]*g + m[8]*b)
}

func saturateMatrix(s float64) colorMatrix {
	return colorMatrix{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s,
	}
}

func grayscaleMatrix(amount float64) colorMatrix {
	a := 1 - amount
	return colorMatrix{
		0.2126 + 0.7874*a, 0.7152 - 0.7152*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 + 0.2848*a, 0.0722 - 0.0722*a,
		0.2126 - 0.2126*a, 0.7152 - 0.7152*a, 0.0722 + 0.9278*a,
	}
}

func sepiaMatrix(amount float64) colorMatrix {
	a := 1 - amount
	return colorMatrix{
		0.393 + 0.607*a, 0.769 - 0.769*a, 0.189 - 0.189*a,
		0.349 - 0.349*a, 0.686 + 0.314*a, 0.168 - 0.168*a,
		0.272 - 0.272*a, 0.534 - 0.534*a, 0.131 + 0.869*a,
	}
}

func unit(v uint8) float64 {
	return float64(v) / 255
}

func unit8(v float64) uint8 {
	return clampUint8(v * 255)
}

func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

func clampFloat(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
