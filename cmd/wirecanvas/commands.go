package main

import (
	"github.com/spf13/cobra"
)

func buildEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a project in the terminal editor",
		Long: `Open a project in the terminal editor. A file that does not exist yet is
created on the first save. Relative names are resolved against save_directory
from the config file.`,
		Example: `  wirecanvas edit
  wirecanvas edit login-flow.wirecanvas`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runEdit(a, name)
		},
	}
}

func buildExportCmd(a *app) *cobra.Command {
	var scale float64
	cmd := &cobra.Command{
		Use:   "export <file> <out.png>",
		Short: "Render a project to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scale <= 0 {
				scale = a.cfg.ExportScale
			}
			return runExport(cmd.OutOrStdout(), a, args[0], args[1], scale)
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 0, "Pixel ratio of the image (default export_scale from the config)")
	return cmd
}

func buildTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the shape hierarchy of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.OutOrStdout(), a, args[0])
		},
	}
}

func buildImportImageCmd(a *app) *cobra.Command {
	var template bool
	cmd := &cobra.Command{
		Use:   "import-image <file> <image>",
		Short: "Add an image to a project and save it",
		Long: `Add an image file or data URL to a project, centred on the default
1280x800 stage, and save the project. With --template the image becomes a
device frame that paints above everything and can hold shapes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportImage(cmd.OutOrStdout(), a, args[0], args[1], template)
		},
	}
	cmd.Flags().BoolVar(&template, "template", false, "Import as a device template")
	return cmd
}
