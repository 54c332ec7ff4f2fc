package pixelkit

import "image"

var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// LocalContrast is the mean absolute color difference between the pixel at
// (x,y) and its in-bounds 8-neighbors. Each neighbor contributes the average
// of its three channel differences. Borders use only the neighbors that
// exist; there is no wrapping or padding. Out-of-range coordinates and
// single-pixel images yield 0. Coordinates are relative to buf.Rect.Min.
func LocalContrast(buf *image.NRGBA, x, y int) float64 {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0
	}
	return localContrast(buf.Pix, buf.Stride, w, h, x, y)
}

func localContrast(pix []uint8, stride, w, h, x, y int) float64 {
	off := y*stride + x*4
	r, g, b := int(pix[off]), int(pix[off+1]), int(pix[off+2])

	sum := 0
	count := 0
	for _, d := range neighbors8 {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		n := ny*stride + nx*4
		sum += absInt(r-int(pix[n])) + absInt(g-int(pix[n+1])) + absInt(b-int(pix[n+2]))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / 3.0 / float64(count)
}

// ContrastMap evaluates LocalContrast for every pixel, row-major.
func ContrastMap(img image.Image) []float64 {
	if isEmpty(img) {
		return nil
	}
	return contrastMap(Clone(img))
}

func contrastMap(buf *image.NRGBA) []float64 {
	w, h := buf.Rect.Dx(), buf.Rect.Dy()
	out := make([]float64, w*h)
	for y := range h {
		for x := range w {
			out[y*w+x] = localContrast(buf.Pix, buf.Stride, w, h, x, y)
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
