package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/setanarut/pixelkit"
	"github.com/setanarut/pixelkit/internal/logger"
	"github.com/setanarut/pixelkit/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) filterCommand() *cobra.Command {
	s := pixelkit.DefaultFilterSettings()
	var preset string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Adjust brightness, contrast, saturation, blur, grayscale and sepia",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := s
			if preset != "" {
				p, err := a.presets.Resolve(preset)
				if err != nil {
					return fmt.Errorf("preset %q: %w", preset, err)
				}
				settings = overrideChanged(cmd, p, s)
			}
			logger.WithField("filter", settings.CSS()).Info("filtering")
			return a.run(func(img image.Image) (image.Image, error) {
				return pixelkit.ApplyFilters(img, settings), nil
			})
		},
	}
	f := cmd.Flags()
	f.Float64Var(&s.Brightness, "brightness", s.Brightness, "percent, 0-200")
	f.Float64Var(&s.Contrast, "contrast", s.Contrast, "percent, 0-200")
	f.Float64Var(&s.Saturation, "saturation", s.Saturation, "percent, 0-200")
	f.Float64Var(&s.Blur, "blur", s.Blur, "pixels, 0-20")
	f.Float64Var(&s.Grayscale, "grayscale", s.Grayscale, "percent, 0-100")
	f.Float64Var(&s.Sepia, "sepia", s.Sepia, "percent, 0-100")
	f.StringVar(&preset, "preset", "", "start from a built-in or saved preset")
	return cmd
}

// overrideChanged applies explicitly set slider flags on top of a preset.
func overrideChanged(cmd *cobra.Command, base, flags pixelkit.FilterSettings) pixelkit.FilterSettings {
	fl := cmd.Flags()
	if fl.Changed("brightness") {
		base.Brightness = flags.Brightness
	}
	if fl.Changed("contrast") {
		base.Contrast = flags.Contrast
	}
	if fl.Changed("saturation") {
		base.Saturation = flags.Saturation
	}
	if fl.Changed("blur") {
		base.Blur = flags.Blur
	}
	if fl.Changed("grayscale") {
		base.Grayscale = flags.Grayscale
	}
	if fl.Changed("sepia") {
		base.Sepia = flags.Sepia
	}
	return base
}

func (a *app) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "List, save and delete filter presets",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in and saved presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range pixelkit.BuiltinPresets {
				fmt.Fprintf(out, "%s %-12s %s\n", p.Emoji, p.Name, p.Settings.CSS())
			}
			for _, name := range a.presets.Names() {
				s, _ := a.presets.Get(name)
				fmt.Fprintf(out, "★ %-12s %s\n", name, s.CSS())
			}
			return nil
		},
	}

	s := pixelkit.DefaultFilterSettings()
	save := &cobra.Command{
		Use:   "save NAME",
		Short: "Save slider values under NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.presets.Save(args[0], s.Clamped()) {
				return fmt.Errorf("invalid preset name %q", args[0])
			}
			return a.storePresets()
		},
	}
	sf := save.Flags()
	sf.Float64Var(&s.Brightness, "brightness", s.Brightness, "percent, 0-200")
	sf.Float64Var(&s.Contrast, "contrast", s.Contrast, "percent, 0-200")
	sf.Float64Var(&s.Saturation, "saturation", s.Saturation, "percent, 0-200")
	sf.Float64Var(&s.Blur, "blur", s.Blur, "pixels, 0-20")
	sf.Float64Var(&s.Grayscale, "grayscale", s.Grayscale, "percent, 0-100")
	sf.Float64Var(&s.Sepia, "sepia", s.Sepia, "percent, 0-100")

	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.presets.Get(args[0]); err != nil {
				return fmt.Errorf("preset %q: %w", args[0], err)
			}
			a.presets.Delete(args[0])
			return a.storePresets()
		},
	}

	cmd.AddCommand(list, save, del)
	return cmd
}

func (a *app) bgChangeCommand() *cobra.Command {
	var target, replacement string
	var tolerance float64
	cmd := &cobra.Command{
		Use:   "bgchange",
		Short: "Replace a background color with another",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(img image.Image) (image.Image, error) {
				var t pixelkit.RGB
				if target != "" {
					t = pixelkit.ParseHex(target)
				} else {
					suggested, err := utils.SuggestBackground(img)
					if err != nil {
						return nil, err
					}
					t = suggested
					logger.WithField("target", t.Hex()).Info("using suggested background color")
				}
				return pixelkit.ReplaceBackground(img, t, tolerance, pixelkit.ParseHex(replacement)), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&target, "target", "", "background color to replace (#RRGGBB); suggested from the image when empty")
	f.StringVar(&replacement, "replacement", "#FFFFFF", "new background color (#RRGGBB)")
	f.Float64Var(&tolerance, "tolerance", 30, "color distance tolerance, 0-255")
	return cmd
}

func (a *app) bgRemoveCommand() *cobra.Command {
	opt := pixelkit.DefaultSegmentOptions()
	var method, target string
	cmd := &cobra.Command{
		Use:   "bgremove",
		Short: "Make the background transparent (color, clustering, contrast or hybrid)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pixelkit.ParseSegmentMethod(method)
			if err != nil {
				return err
			}
			opt.Method = m
			opt.Target = pixelkit.ParseHex(target)
			logger.WithFields(logrus.Fields{
				"method":    m.String(),
				"threshold": opt.Threshold,
				"softness":  opt.Softness,
			}).Info("removing background")
			return a.run(func(img image.Image) (image.Image, error) {
				return pixelkit.RemoveBackground(img, opt), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&method, "method", opt.Method.String(), "color, clustering, contrast or hybrid")
	f.StringVar(&target, "target", opt.Target.Hex(), "background color for the color method")
	f.Float64Var(&opt.Threshold, "threshold", opt.Threshold, "distance or contrast threshold, 0-255")
	f.Float64Var(&opt.ClusterThreshold, "cluster-threshold", opt.ClusterThreshold, "distance threshold for clustering, 0-255")
	f.Float64Var(&opt.Softness, "softness", opt.Softness, "edge feathering percent, 0-100")
	f.IntVar(&opt.Iterations, "iterations", opt.Iterations, "clustering passes (reserved)")
	return cmd
}

func (a *app) compressCommand() *cobra.Command {
	var maxW, maxH int
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Downscale to fit bounds and re-encode at --quality",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(img image.Image) (image.Image, error) {
				out := pixelkit.Compress(img, maxW, maxH)
				if f, err := a.outputFormat(); err == nil {
					if n, err := utils.EncodedSize(out, f, a.quality); err == nil {
						logger.WithField("estimated_size", utils.FormatFileSize(int64(n))).Info("compressed")
					}
				}
				return out, nil
			})
		},
	}
	cmd.Flags().IntVar(&maxW, "max-width", 0, "maximum width, 0 for none")
	cmd.Flags().IntVar(&maxH, "max-height", 0, "maximum height, 0 for none")
	return cmd
}

func (a *app) cropCommand() *cobra.Command {
	var x, y, w, h int
	var aspect string
	cmd := &cobra.Command{
		Use:   "crop",
		Short: "Cut out a rectangle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if aspect != "" && aspect != "free" {
				var rw, rh float64
				if _, err := fmt.Sscanf(aspect, "%g:%g", &rw, &rh); err != nil {
					return fmt.Errorf("invalid --aspect %q: %w", aspect, err)
				}
				w, h = pixelkit.FitAspect(w, h, rw, rh)
			}
			return a.run(func(img image.Image) (image.Image, error) {
				return pixelkit.Crop(img, x, y, w, h), nil
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&x, "x", 0, "left edge")
	f.IntVar(&y, "y", 0, "top edge")
	f.IntVar(&w, "width", 0, "width")
	f.IntVar(&h, "height", 0, "height")
	f.StringVar(&aspect, "aspect", "free", "lock the aspect ratio, e.g. 16:9")
	return cmd
}

func (a *app) resizeCommand() *cobra.Command {
	var w, h int
	var keepRatio bool
	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Resample to a new size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(img image.Image) (image.Image, error) {
				b := img.Bounds()
				nw, nh := w, h
				if keepRatio {
					switch {
					case nw > 0 && b.Dx() > 0:
						nh = int(float64(nw)*float64(b.Dy())/float64(b.Dx()) + 0.5)
					case nh > 0 && b.Dy() > 0:
						nw = int(float64(nh)*float64(b.Dx())/float64(b.Dy()) + 0.5)
					}
				}
				if nw <= 0 || nh <= 0 {
					return nil, fmt.Errorf("invalid size %dx%d", nw, nh)
				}
				return pixelkit.Resize(img, nw, nh), nil
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&w, "width", 0, "new width")
	f.IntVar(&h, "height", 0, "new height")
	f.BoolVar(&keepRatio, "keep-ratio", false, "derive the missing side from the aspect ratio")
	return cmd
}

func (a *app) rotateCommand() *cobra.Command {
	var degrees float64
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate clockwise by any angle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(img image.Image) (image.Image, error) {
				return pixelkit.Rotate(img, degrees), nil
			})
		},
	}
	cmd.Flags().Float64Var(&degrees, "degrees", 90, "angle in degrees, clockwise")
	return cmd
}

func (a *app) flipCommand() *cobra.Command {
	var axis string
	cmd := &cobra.Command{
		Use:   "flip",
		Short: "Mirror horizontally or vertically",
		RunE: func(cmd *cobra.Command, args []string) error {
			var ax pixelkit.FlipAxis
			switch strings.ToLower(axis) {
			case "horizontal", "h":
				ax = pixelkit.FlipHorizontal
			case "vertical", "v":
				ax = pixelkit.FlipVertical
			default:
				return fmt.Errorf("invalid --axis %q", axis)
			}
			return a.run(func(img image.Image) (image.Image, error) {
				return pixelkit.Flip(img, ax), nil
			})
		},
	}
	cmd.Flags().StringVar(&axis, "axis", "horizontal", "horizontal or vertical")
	return cmd
}

func (a *app) watermarkCommand() *cobra.Command {
	opt := pixelkit.DefaultWatermarkOptions()
	var hexColor, position string
	var px, py float64
	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Stamp text onto the image",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt.Color = pixelkit.ParseHex(hexColor)
			return a.run(func(img image.Image) (image.Image, error) {
				b := img.Bounds()
				if position != "" {
					x, y, ok := pixelkit.NamedWatermarkPosition(b.Dx(), b.Dy(), position)
					if !ok {
						return nil, fmt.Errorf("unknown --position %q", position)
					}
					opt.X, opt.Y = x, y
				} else {
					opt.X, opt.Y = pixelkit.WatermarkPosition(b.Dx(), b.Dy(), px, py)
				}
				return pixelkit.Watermark(img, opt), nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opt.Text, "text", opt.Text, "watermark text")
	f.Float64Var(&opt.FontSize, "font-size", opt.FontSize, "font size in pixels")
	f.StringVar(&hexColor, "color", opt.Color.Hex(), "text color (#RRGGBB)")
	f.Float64Var(&opt.Opacity, "opacity", opt.Opacity, "percent, 0-100")
	f.Float64Var(&px, "x", 50, "anchor x as percent of width")
	f.Float64Var(&py, "y", 50, "anchor y as percent of height")
	f.StringVar(&position, "position", "", "named anchor (top-left ... bottom-right, center); overrides --x/--y")
	return cmd
}

func (a *app) paletteCommand() *cobra.Command {
	var k, tile int
	var method string
	var sortBright bool
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the main colors; with --output also write a swatch strip",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.load()
			if err != nil {
				return err
			}
			palette := utils.ExtractPalette(img, k, utils.ParsePaletteMethod(method))
			if len(palette) == 0 {
				return utils.ErrEmptyPalette
			}
			if sortBright {
				utils.SortPaletteByBrightness(palette)
			}
			for _, c := range palette {
				fmt.Fprintln(cmd.OutOrStdout(), c.Hex())
			}
			if a.output == "" {
				return nil
			}
			swatch, err := utils.PaletteImage(palette, tile)
			if err != nil {
				return err
			}
			return a.save(swatch)
		},
	}
	f := cmd.Flags()
	f.IntVar(&k, "colors", 5, "number of colors")
	f.StringVar(&method, "method", "dominantcolor", "dominantcolor or kmeans")
	f.IntVar(&tile, "tile", 64, "swatch tile size")
	f.BoolVar(&sortBright, "sort", false, "order from darkest to brightest")
	return cmd
}
