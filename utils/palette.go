package utils

import (
	"errors"
	"image"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/setanarut/pixelkit"
	"github.com/setanarut/pixelkit/internal/logger"
)

var ErrEmptyPalette = errors.New("empty palette")

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) PaletteMethod {
	if s == "kmeans" {
		return PaletteMethodKMeans
	}
	return PaletteMethodDominantColor
}

// swatch is a palette candidate with the share of the image it stands for.
type swatch struct {
	rgb    pixelkit.RGB
	col    colorful.Color
	weight float64
}

func newSwatch(c pixelkit.RGB, weight float64) swatch {
	return swatch{rgb: c, col: c.Colorful(), weight: max(weight, 1e-6)}
}

// SortPaletteByBrightness orders colors from darkest to brightest by
// relative luminance.
func SortPaletteByBrightness(palette []pixelkit.RGB) {
	slices.SortStableFunc(palette, func(a, b pixelkit.RGB) int {
		ya, yb := luminance(a.Colorful()), luminance(b.Colorful())
		if ya < yb {
			return -1
		}
		if ya > yb {
			return 1
		}
		return 0
	})
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ExtractPalette returns up to k representative colors, strongest first.
// The kmeans method falls back to dominantcolor when it yields nothing.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []pixelkit.RGB {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		logger.Warn("kmeans returned an empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// SuggestBackground picks the heaviest dominantcolor candidate, which on
// product shots and scans is usually the backdrop.
func SuggestBackground(img image.Image) (pixelkit.RGB, error) {
	p := ExtractDominantPalette(img, 1)
	if len(p) == 0 {
		return pixelkit.RGB{}, ErrEmptyPalette
	}
	return p[0], nil
}

func ExtractDominantPalette(img image.Image, k int) []pixelkit.RGB {
	if k <= 0 || img == nil || img.Bounds().Empty() {
		return nil
	}

	found := dominantcolor.FindWeight(img, max(24, k*8))
	if len(found) == 0 {
		return []pixelkit.RGB{{128, 128, 128}}
	}
	pool := make([]swatch, len(found))
	for i, c := range found {
		pool[i] = newSwatch(pixelkit.RGBOf(c.RGBA), c.Weight)
	}
	return pickDiverse(pool, k)
}

// ExtractKMeansPalette clusters a grid sample of the visible pixels and
// returns the k most distinct cluster centers, heaviest first.
func ExtractKMeansPalette(img image.Image, k int) []pixelkit.RGB {
	if k <= 0 || img == nil {
		return nil
	}
	obs := sampleVisible(pixelkit.Clone(img), 12000)
	if len(obs) == 0 {
		return nil
	}

	groups, err := kmeans.New().Partition(obs, min(max(k*4, k+2), len(obs)))
	if err != nil {
		logger.WithError(err).Debug("kmeans partition failed")
		return nil
	}

	pool := make([]swatch, 0, len(groups))
	for _, g := range groups {
		if len(g.Center) < 3 || len(g.Observations) == 0 {
			continue
		}
		c := pixelkit.RGB{R: channel(g.Center[0]), G: channel(g.Center[1]), B: channel(g.Center[2])}
		pool = append(pool, newSwatch(c, float64(len(g.Observations))))
	}
	return pickDiverse(pool, k)
}

// sampleVisible walks buf on a square grid coarse enough to stay under
// limit samples. Fully transparent pixels are skipped; NRGBA channels are
// already straight so translucent pixels keep their hue.
func sampleVisible(buf *image.NRGBA, limit int) clusters.Observations {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	step := 1
	if w*h > limit {
		step = int(math.Sqrt(float64(w*h)/float64(limit))) + 1
	}
	obs := make(clusters.Observations, 0, min(w*h, limit))
	for y := 0; y < h; y += step {
		row := buf.Pix[y*buf.Stride:]
		for x := 0; x < w; x += step {
			px := row[x*4 : x*4+4]
			if px[3] == 0 {
				continue
			}
			obs = append(obs, clusters.Coordinates{float64(px[0]), float64(px[1]), float64(px[2])})
		}
	}
	return obs
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(255, max(0, v))))
}

// pickDiverse starts from the heaviest swatch and keeps adding the one
// farthest in Lab from everything picked so far, scaled up for heavier
// swatches.
func pickDiverse(pool []swatch, k int) []pixelkit.RGB {
	k = min(k, len(pool))
	if k <= 0 {
		return nil
	}
	pool = slices.Clone(pool)

	heaviest := 0.0
	for _, s := range pool {
		heaviest = max(heaviest, s.weight)
	}
	first := slices.IndexFunc(pool, func(s swatch) bool { return s.weight == heaviest })
	picked := []swatch{pool[first]}
	pool = slices.Delete(pool, first, first+1)

	for len(picked) < k {
		best, bestScore := 0, -1.0
		for i, s := range pool {
			gap := math.MaxFloat64
			for _, p := range picked {
				gap = min(gap, s.col.DistanceLab(p.col))
			}
			if score := gap * (0.55 + 0.45*math.Sqrt(s.weight/heaviest)); score > bestScore {
				best, bestScore = i, score
			}
		}
		picked = append(picked, pool[best])
		pool = slices.Delete(pool, best, best+1)
	}

	out := make([]pixelkit.RGB, len(picked))
	for i, s := range picked {
		out[i] = s.rgb
	}
	return out
}

// PaletteImage renders the palette as a strip of tileSize squares.
func PaletteImage(palette []pixelkit.RGB, tileSize int) (*image.NRGBA, error) {
	if len(palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		x0 := i * tileSize
		for y := range tileSize {
			for x := x0; x < x0+tileSize; x++ {
				img.SetNRGBA(x, y, c.NRGBA(255))
			}
		}
	}
	return img, nil
}

func SavePalette(palette []pixelkit.RGB, tileSize int, filename string) error {
	img, err := PaletteImage(palette, tileSize)
	if err != nil {
		return err
	}
	return SaveImage(img, filename, FormatPNG, 100)
}
