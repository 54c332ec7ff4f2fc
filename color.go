package pixelkit

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxDistance is the distance between black and white.
var MaxDistance = math.Sqrt(3 * 255 * 255)

// RGB is an 8-bit color triple. It is used both as a pixel sample and as the
// reference color of a segmentation.
type RGB struct {
	R, G, B uint8
}

var White = RGB{255, 255, 255}

func RGBOf(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{n.R, n.G, n.B}
}

func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func (c RGB) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Distance is the Euclidean distance in RGB space, in [0, MaxDistance].
func Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Hex formats c as "#RRGGBB".
func (c RGB) Hex() string {
	return strings.ToUpper(c.Colorful().Hex())
}

func (c RGB) String() string {
	return c.Hex()
}

// ParseHex reads "#RRGGBB" or "RRGGBB" in any case. Anything else yields
// White; there is no error path.
func ParseHex(s string) RGB {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return White
	}
	for i := range len(s) {
		if !isHexDigit(s[i]) {
			return White
		}
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return White
	}
	return FromColorful(c)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func unpack(p uint32) RGB {
	return RGB{uint8(p >> 16), uint8(p >> 8), uint8(p)}
}
