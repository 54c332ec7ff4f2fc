package pixelkit

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 51 {
				c := RGB{uint8(r), uint8(g), uint8(b)}
				assert.Equal(t, c, ParseHex(c.Hex()))
			}
		}
	}
}

func TestHexFormat(t *testing.T) {
	assert.Equal(t, "#0A0BFF", RGB{10, 11, 255}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "#FFFFFF", White.String())
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF8000", RGB{255, 128, 0}},
		{"ff8000", RGB{255, 128, 0}},
		{"#aBcDeF", RGB{0xab, 0xcd, 0xef}},
		{"#FFF", White},
		{"", White},
		{"#GG0000", White},
		{"#12345", White},
		{"#1234567", White},
		{"+1+2+3", White},
		{"##123456", White},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseHex(tt.in), tt.in)
	}
}

func TestDistance(t *testing.T) {
	a := RGB{10, 200, 30}
	b := RGB{250, 0, 99}
	assert.Zero(t, Distance(a, a))
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.InDelta(t, 441.67, Distance(RGB{}, White), 0.01)
	assert.InDelta(t, MaxDistance, Distance(RGB{}, White), 1e-9)
	assert.InDelta(t, 5.0, Distance(RGB{0, 0, 0}, RGB{3, 4, 0}), 1e-12)
}

func TestRGBOf(t *testing.T) {
	assert.Equal(t, RGB{1, 2, 3}, RGBOf(color.NRGBA{1, 2, 3, 255}))
	assert.Equal(t, RGB{200, 100, 0}, RGBOf(color.RGBA{200, 100, 0, 255}))
}

func TestClampUint8(t *testing.T) {
	assert.Equal(t, uint8(0), clampUint8(-3))
	assert.Equal(t, uint8(0), clampUint8(math.NaN()))
	assert.Equal(t, uint8(255), clampUint8(300))
	assert.Equal(t, uint8(128), clampUint8(127.5))
	assert.Equal(t, uint8(127), clampUint8(127.49))
}
