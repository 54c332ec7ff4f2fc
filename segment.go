package pixelkit

import (
	"fmt"
	"image"
	"strings"

	"github.com/setanarut/pixelkit/internal/logger"
	"github.com/sirupsen/logrus"
)

type SegmentMethod int

const (
	SegmentColor SegmentMethod = iota
	SegmentClustering
	SegmentContrast
	SegmentHybrid
)

func (m SegmentMethod) String() string {
	switch m {
	case SegmentClustering:
		return "clustering"
	case SegmentContrast:
		return "contrast"
	case SegmentHybrid:
		return "hybrid"
	default:
		return "color"
	}
}

func ParseSegmentMethod(s string) (SegmentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color", "color-based":
		return SegmentColor, nil
	case "clustering", "cluster":
		return SegmentClustering, nil
	case "contrast", "contrast-based":
		return SegmentContrast, nil
	case "hybrid":
		return SegmentHybrid, nil
	}
	return SegmentColor, fmt.Errorf("unknown segmentation method %q", s)
}

// Fixed hybrid constants: equal weighting of the two scores and the cutoff
// above which a pixel counts as background.
const (
	hybridColorWeight = 0.5
	hybridCutoff      = 0.3
)

type SegmentOptions struct {
	Method SegmentMethod
	// Reference color for SegmentColor. The other methods ignore it.
	Target RGB
	// Distance threshold for SegmentColor, contrast threshold for
	// SegmentContrast, and both thresholds for SegmentHybrid.
	// Range 0-255. Higher removes more.
	Threshold float64
	// Distance threshold against the dominant color for SegmentClustering.
	ClusterThreshold float64
	// Reserved for multi-pass clustering refinement. Clustering runs a single
	// pass regardless of the value.
	Iterations int
	// Feathering in percent (0-100). Steepens the alpha fade near the
	// threshold.
	Softness float64
}

func DefaultSegmentOptions() SegmentOptions {
	return SegmentOptions{
		Method:           SegmentHybrid,
		Target:           White,
		Threshold:        50,
		ClusterThreshold: 50,
		Iterations:       5,
		Softness:         0,
	}
}

// RemoveBackground runs the method selected in opt.
func RemoveBackground(img image.Image, opt SegmentOptions) *image.NRGBA {
	switch opt.Method {
	case SegmentClustering:
		return RemoveByClustering(img, opt.ClusterThreshold, opt.Iterations, opt.Softness)
	case SegmentContrast:
		return RemoveByContrast(img, opt.Threshold, opt.Softness)
	case SegmentHybrid:
		return RemoveHybrid(img, opt.Threshold, opt.Threshold, opt.Softness)
	default:
		return RemoveByColor(img, opt.Target, opt.Threshold, opt.Softness)
	}
}

// RemoveByColor fades pixels closer than threshold to target:
//
//	alpha = 255 - ((threshold-d)/threshold)*255*(1+softness/100)
//
// An exact match becomes fully transparent and the fade reaches opaque at
// the threshold. Pixels at or beyond the threshold keep their alpha.
// threshold <= 0 matches nothing.
func RemoveByColor(img image.Image, target RGB, threshold, softness float64) *image.NRGBA {
	out := Clone(img)
	if out.Rect.Empty() {
		return out
	}
	n := fadeByDistance(out, target, threshold, softness)
	logger.WithFields(logrus.Fields{
		"method":    SegmentColor.String(),
		"target":    target.Hex(),
		"threshold": threshold,
		"faded":     n,
	}).Debug("background segmented")
	return out
}

// RemoveByClustering derives the background as the dominant color and
// applies the RemoveByColor fade against it using clusterThreshold.
// iterations is accepted for a future refinement pass and is not used.
func RemoveByClustering(img image.Image, clusterThreshold float64, iterations int, softness float64) *image.NRGBA {
	out := Clone(img)
	if out.Rect.Empty() {
		return out
	}
	bg := dominantColor(out)
	n := fadeByDistance(out, bg, clusterThreshold, softness)
	logger.WithFields(logrus.Fields{
		"method":     SegmentClustering.String(),
		"background": bg.Hex(),
		"threshold":  clusterThreshold,
		"iterations": iterations,
		"faded":      n,
	}).Debug("background segmented")
	return out
}

// RemoveByContrast treats locally flat pixels (LocalContrast below
// contrastThreshold) as background:
//
//	alpha = 255 - ((contrastThreshold-c)/contrastThreshold)*255*(1+softness/100)
//
// Edges and textured regions stay opaque regardless of their color.
func RemoveByContrast(img image.Image, contrastThreshold, softness float64) *image.NRGBA {
	out := Clone(img)
	if out.Rect.Empty() || !(contrastThreshold > 0) {
		return out
	}
	contrast := contrastMap(out)
	gain := 255 * (1 + softness/100)
	n := 0
	for i, c := range contrast {
		if c >= contrastThreshold {
			continue
		}
		a := 255 - ((contrastThreshold-c)/contrastThreshold)*gain
		if lowerAlpha(out.Pix, i*4+3, a) {
			n++
		}
	}
	logger.WithFields(logrus.Fields{
		"method":    SegmentContrast.String(),
		"threshold": contrastThreshold,
		"faded":     n,
	}).Debug("background segmented")
	return out
}

// RemoveHybrid averages a color score against the dominant color and a
// flatness score from LocalContrast:
//
//	colorScore    = max(0, 1 - dist/colorThreshold)
//	contrastScore = max(0, 1 - contrast/contrastThreshold)
//
// Pixels whose combined score exceeds 0.3 get
// alpha = 255*(1-combined)*(1+softness/100). If either threshold is not
// positive no pixel qualifies.
func RemoveHybrid(img image.Image, colorThreshold, contrastThreshold, softness float64) *image.NRGBA {
	out := Clone(img)
	if out.Rect.Empty() || !(colorThreshold > 0) || !(contrastThreshold > 0) {
		return out
	}
	bg := dominantColor(out)
	contrast := contrastMap(out)
	gain := 255 * (1 + softness/100)

	n := 0
	pix := out.Pix
	for i, c := range contrast {
		off := i * 4
		d := Distance(RGB{pix[off], pix[off+1], pix[off+2]}, bg)
		colorScore := max(0, 1-d/colorThreshold)
		contrastScore := max(0, 1-c/contrastThreshold)
		combined := hybridColorWeight*colorScore + (1-hybridColorWeight)*contrastScore
		if combined <= hybridCutoff {
			continue
		}
		if lowerAlpha(pix, off+3, (1-combined)*gain) {
			n++
		}
	}
	logger.WithFields(logrus.Fields{
		"method":             SegmentHybrid.String(),
		"background":         bg.Hex(),
		"color_threshold":    colorThreshold,
		"contrast_threshold": contrastThreshold,
		"faded":              n,
	}).Debug("background segmented")
	return out
}

// ReplaceBackground makes pixels within tolerance of target transparent and
// then paints every fully transparent pixel with replacement at full
// opacity. Pixels that were already transparent are painted as well.
func ReplaceBackground(img image.Image, target RGB, tolerance float64, replacement RGB) *image.NRGBA {
	out := Clone(img)
	if out.Rect.Empty() {
		return out
	}
	pix := out.Pix
	for off := 0; off < len(pix); off += 4 {
		if tolerance > 0 && Distance(RGB{pix[off], pix[off+1], pix[off+2]}, target) < tolerance {
			pix[off+3] = 0
		}
		if pix[off+3] == 0 {
			pix[off], pix[off+1], pix[off+2], pix[off+3] = replacement.R, replacement.G, replacement.B, 255
		}
	}
	return out
}

func fadeByDistance(buf *image.NRGBA, target RGB, threshold, softness float64) int {
	if !(threshold > 0) {
		return 0
	}
	gain := 255 * (1 + softness/100)
	pix := buf.Pix
	n := 0
	for off := 0; off < len(pix); off += 4 {
		d := Distance(RGB{pix[off], pix[off+1], pix[off+2]}, target)
		if d >= threshold {
			continue
		}
		if lowerAlpha(pix, off+3, 255-((threshold-d)/threshold)*gain) {
			n++
		}
	}
	return n
}

// lowerAlpha stores the computed alpha only when it is below the current one.
func lowerAlpha(pix []uint8, i int, alpha float64) bool {
	a := clampUint8(alpha)
	if a >= pix[i] {
		return false
	}
	pix[i] = a
	return true
}
