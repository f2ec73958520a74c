// Package main is the wirecanvas command line.
//
// Open or create a project in the terminal editor:
//
//	wirecanvas edit mockup.wirecanvas
//
// Render a project to PNG:
//
//	wirecanvas export mockup.wirecanvas mockup.png
//
// Settings come from ~/.wirecanvas.yaml (see internal/config).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wirecanvas/internal/config"
)

// populated by ldflags
var version = "dev"

// app is the state shared by every command once the root has loaded its
// configuration.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
func buildRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "wirecanvas",
		Short: "wirecanvas - wireframes and mockups on a nested shape canvas",
		Long: `wirecanvas edits wireframe projects: shapes nested in groups and device
templates, smart arrows that follow the shapes they connect, and undo history.

Projects are JSON documents with the .wirecanvas extension.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(
		buildEditCmd(a),
		buildExportCmd(a),
		buildTreeCmd(a),
		buildImportImageCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := cfg.Level()
	if strings.TrimSpace(a.logLevel) != "" {
		level = config.ParseLevel(a.logLevel)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	a.logger.Debug("config loaded", "path", a.configPath, "level", level)
	return nil
}
