package main

import (
	"os"

	"github.com/setanarut/pixelkit/internal/config"
	"github.com/setanarut/pixelkit/internal/logger"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.WithError(err).Error("invalid configuration")
		os.Exit(2)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	if err := newRootCommand(cfg).Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
