package pixelkit

import "image"

// DominantColor returns the RGB triple found at the most pixel positions.
// Alpha is ignored. Ties go to the lowest (r,g,b) in lexicographic order.
// A zero-area image yields black.
func DominantColor(img image.Image) RGB {
	if isEmpty(img) {
		return RGB{}
	}
	return dominantColor(Clone(img))
}

func dominantColor(buf *image.NRGBA) RGB {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	counts := make(map[uint32]int, 1024)
	for y := range h {
		row := buf.Pix[y*buf.Stride : y*buf.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			counts[pack(row[i], row[i+1], row[i+2])]++
		}
	}

	var best uint32
	bestCount := 0
	for key, n := range counts {
		if n > bestCount || (n == bestCount && key < best) {
			best = key
			bestCount = n
		}
	}
	return unpack(best)
}
