// Package config loads the user's ~/.wirecanvas.yaml.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultFileName = ".wirecanvas.yaml"

type Config struct {
	SaveDirectory      string  `yaml:"save_directory"`
	GridSize           float64 `yaml:"grid_size"`
	ShowGrid           bool    `yaml:"show_grid"`
	SnapToGrid         bool    `yaml:"snap_to_grid"`
	Confirmations      bool    `yaml:"confirmations"`
	LogLevel           string  `yaml:"log_level"`
	ExportScale        float64 `yaml:"export_scale"`
	DefaultStroke      string  `yaml:"default_stroke"`
	DefaultStrokeWidth float64 `yaml:"default_stroke_width"`
}

func Default() Config {
	return Config{
		GridSize:           20,
		Confirmations:      true,
		LogLevel:           "info",
		ExportScale:        1,
		DefaultStroke:      "#ef4444",
		DefaultStrokeWidth: 4,
	}
}

// DefaultPath is ~/.wirecanvas.yaml, or a file in the working directory when
// the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return defaultFileName
	}
	return filepath.Join(home, defaultFileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(expandUserPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	if cfg.SaveDirectory != "" {
		cfg.SaveDirectory = expandUserPath(cfg.SaveDirectory)
		if !filepath.IsAbs(cfg.SaveDirectory) {
			if abs, err := filepath.Abs(cfg.SaveDirectory); err == nil {
				cfg.SaveDirectory = abs
			}
		}
	}
	if cfg.GridSize < 0 {
		cfg.GridSize = 0
	}
	if cfg.ExportScale <= 0 {
		cfg.ExportScale = 1
	}
	return cfg, nil
}

func expandUserPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SavePath places filename in the save directory, creating the directory
// when needed. Absolute filenames and an unset directory pass through.
func (c Config) SavePath(filename string) (string, error) {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0o755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

// Level maps LogLevel onto slog, defaulting to info.
func (c Config) Level() slog.Level {
	return ParseLevel(c.LogLevel)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
