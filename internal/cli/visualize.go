package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/layout"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a mind map from a computed layout",
		Long: `Render a mind map from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
draws it to SVG, PNG, PDF or JSON. The layout contains all positioning
information, so this step is purely about drawing: PNG output is painted at
the layout's own size rather than fitted to a container.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from markdown to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVisualize(cmd.Context(), args[0], &flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.theme, "theme", "", "TOML theme file (default: $"+themeEnv+")")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&flags.opts.Scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().BoolVar(&flags.opts.NoText, "no-text", false, "omit labels")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, flags *pipelineFlags, output string) error {
	l, err := layout.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	opts, err := flags.options(c.Logger)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering mind map...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, nil, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     trimLayoutSuffix(input),
		output:    output,
		cacheHit:  cacheHit,
		nodes:     len(l.Nodes),
		edges:     len(l.Connectors()),
	})
}
