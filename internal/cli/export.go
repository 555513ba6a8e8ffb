package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagewalk/stagewalk/pkg/config"
	"github.com/stagewalk/stagewalk/pkg/level"
	"github.com/stagewalk/stagewalk/pkg/render"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format   string // dot or svg (inferred from output extension if empty)
	output   string // output file path (stdout if empty, DOT only)
	detailed bool   // include descriptions and unlocks in labels
}

// exportCommand creates the export command, which renders the level
// graph as Graphviz DOT or SVG without running an exploration.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <config>",
		Short: "Export the level graph as DOT or SVG",
		Long: `Export the level graph of a config as Graphviz DOT or rendered SVG.

Begin stages get a green border, end stages a double border, and each
transition is labelled with the skills that gate it.

Examples:
  stagewalk export levels.toml                    # DOT to stdout
  stagewalk export levels.toml -o levels.svg      # format from extension
  stagewalk export levels.toml --detailed -o levels.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg (default from output extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include descriptions and unlocks in stage labels")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, configPath string, opts exportOpts) error {
	format := opts.format
	if format == "" {
		format = formatFromPath(opts.output)
	}
	if format != "dot" && format != "svg" {
		return fmt.Errorf("unknown format: %s (available: dot, svg)", format)
	}
	if format == "svg" && opts.output == "" {
		return fmt.Errorf("svg output requires --output")
	}

	doc, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}
	g, warnings, err := level.Build(doc)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		printWarning("%s", w)
	}

	dot := render.ToDOT(g, render.Options{Detailed: opts.detailed})

	if format == "dot" {
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printSuccess("Exported DOT graph (%d stages)", g.StageCount())
		printFile(opts.output)
		return nil
	}

	spin := newSpinner(cmd.Context(), "Rendering SVG...")
	spin.Start()
	svg, err := render.RenderSVG(dot)
	spin.Stop()
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Exported SVG graph (%d stages)", g.StageCount())
	printFile(opts.output)
	return nil
}

// formatFromPath picks the export format from a file extension,
// defaulting to DOT.
func formatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return "svg"
	}
	return "dot"
}
