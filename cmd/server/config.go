package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr       string           `yaml:"addr" validate:"required"`
	LogLevel   string           `yaml:"log_level" validate:"oneof=debug info warn error"`
	Encoding   string           `yaml:"encoding"`
	MaxBatch   int              `yaml:"max_batch" validate:"min=1,max=1000"`
	Workers    int              `yaml:"workers" validate:"min=1,max=64"`
	Correction correctionConfig `yaml:"correction"`
}

type correctionConfig struct {
	Enabled     bool `yaml:"enabled"`
	Parallelism int  `yaml:"parallelism" validate:"min=1,max=9"`
}

func defaultConfig() config {
	return config{
		Addr:     ":8421",
		LogLevel: "info",
		MaxBatch: 100,
		Workers:  4,
		Correction: correctionConfig{
			Enabled:     true,
			Parallelism: 1,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string, logger *slog.Logger) (config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Encoding != "" {
		if _, err := htmlindex.Get(cfg.Encoding); err != nil {
			return cfg, fmt.Errorf("config %s: encoding %q: %w", path, cfg.Encoding, err)
		}
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
