package main

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/setanarut/pixelkit"
	"github.com/setanarut/pixelkit/internal/config"
	"github.com/setanarut/pixelkit/internal/logger"
	"github.com/setanarut/pixelkit/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type app struct {
	cfg     *config.Config
	presets *pixelkit.PresetStore

	input   string
	output  string
	format  string
	quality int
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, presets: pixelkit.NewPresetStore()}

	root := &cobra.Command{
		Use:           "pixelkit",
		Short:         "Pixel-level image tools: filters, background removal, geometry, compression",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("log-level") {
				lvl, _ := cmd.Flags().GetString("log-level")
				logger.Configure(lvl, a.cfg.LogFormat)
			}
			return a.loadPresets()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.input, "input", "i", "", "input image")
	pf.StringVarP(&a.output, "output", "o", "", "output image")
	pf.StringVar(&a.format, "format", "", "output format (png, jpg, webp, gif, bmp, tiff); defaults to the output extension")
	pf.IntVar(&a.quality, "quality", cfg.Quality, "encoder quality 1-100 for lossy formats")
	pf.String("log-level", cfg.LogLevel, "debug, info, warn or error")
	pf.StringVar(&a.cfg.PresetsPath, "presets", cfg.PresetsPath, "YAML file with custom filter presets")

	root.AddCommand(
		a.filterCommand(),
		a.presetCommand(),
		a.bgChangeCommand(),
		a.bgRemoveCommand(),
		a.compressCommand(),
		a.cropCommand(),
		a.resizeCommand(),
		a.rotateCommand(),
		a.flipCommand(),
		a.watermarkCommand(),
		a.paletteCommand(),
	)
	return root
}

func (a *app) load() (image.Image, error) {
	if a.input == "" {
		return nil, errors.New("missing --input")
	}
	img, err := utils.ReadImage(a.input)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	logger.WithFields(logrus.Fields{"path": a.input, "width": b.Dx(), "height": b.Dy()}).Debug("image loaded")
	return img, nil
}

func (a *app) outputFormat() (utils.Format, error) {
	if a.format != "" {
		return utils.ParseFormat(a.format)
	}
	if f, err := utils.FormatFromPath(a.output); err == nil {
		return f, nil
	}
	return utils.ParseFormat(a.cfg.Format)
}

func (a *app) save(img image.Image) error {
	if a.output == "" {
		return errors.New("missing --output")
	}
	f, err := a.outputFormat()
	if err != nil {
		return err
	}
	if err := utils.SaveImage(img, a.output, f, a.quality); err != nil {
		return err
	}
	entry := logger.WithFields(logrus.Fields{
		"path":   a.output,
		"format": f.String(),
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
	if st, err := os.Stat(a.output); err == nil {
		entry = entry.WithField("size", utils.FormatFileSize(st.Size()))
	}
	entry.Info("image written")
	return nil
}

// run loads the input, applies fn and writes the result.
func (a *app) run(fn func(image.Image) (image.Image, error)) error {
	img, err := a.load()
	if err != nil {
		return err
	}
	out, err := fn(img)
	if err != nil {
		return err
	}
	return a.save(out)
}

// ============ PRESET FILE ============

func (a *app) loadPresets() error {
	path := a.cfg.PresetsPath
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read presets: %w", err)
	}
	var stored map[string]pixelkit.FilterSettings
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("parse presets %s: %w", path, err)
	}
	for name, s := range stored {
		a.presets.Save(name, s)
	}
	logger.WithFields(logrus.Fields{"path": path, "count": len(stored)}).Debug("presets loaded")
	return nil
}

func (a *app) storePresets() error {
	path := a.cfg.PresetsPath
	if path == "" {
		return errors.New("no preset file configured (use --presets or PIXELKIT_PRESETS)")
	}
	data, err := yaml.Marshal(a.presets.All())
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write presets: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}
