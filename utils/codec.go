package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepteams/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatWebP
	FormatGIF
	FormatBMP
	FormatTIFF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatWebP:
		return "webp"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	default:
		return "png"
	}
}

// Lossy formats flatten transparency when encoded.
func (f Format) Lossy() bool {
	return f == FormatJPEG
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return FormatPNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) imaging() (imaging.Format, bool) {
	switch f {
	case FormatPNG:
		return imaging.PNG, true
	case FormatJPEG:
		return imaging.JPEG, true
	case FormatGIF:
		return imaging.GIF, true
	case FormatBMP:
		return imaging.BMP, true
	case FormatTIFF:
		return imaging.TIFF, true
	}
	return 0, false
}

// Encode writes img in the given format. quality is a percentage (1-100)
// and affects JPEG and opaque WebP. WebP images with transparency are
// written lossless so cut-outs keep their exact alpha.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	quality = max(1, min(100, quality))
	if format == FormatWebP {
		opts := webp.DefaultOptions()
		opts.Quality = float32(quality)
		opts.Lossless = hasTransparency(img)
		if err := webp.Encode(w, img, opts); err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
		return nil
	}
	f, ok := format.imaging()
	if !ok {
		return fmt.Errorf("encode %s: %w", format, ErrUnsupportedFormat)
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return nil
}

func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// EncodedSize is the byte length of img once encoded.
func EncodedSize(img image.Image, format Format, quality int) (int, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}

func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img to filename in the given format.
func SaveImage(img image.Image, filename string, format Format, quality int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format, quality); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	return f.Close()
}

// FormatFileSize renders a byte count as "N Bytes", "N KB" or "N MB" with
// at most two decimals.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	const k = 1024.0
	sizes := []string{"Bytes", "KB", "MB"}
	i := int(math.Floor(math.Log(float64(n)) / math.Log(k)))
	i = min(i, len(sizes)-1)
	v := math.Round(float64(n)/math.Pow(k, float64(i))*100) / 100
	return fmt.Sprintf("%s %s", trimFloat(v), sizes[i])
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
