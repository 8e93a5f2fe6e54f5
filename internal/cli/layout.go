package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// layoutCommand creates the layout command for computing mind-map geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [file.md]",
		Short: "Compute mind-map layout from a markdown document",
		Long: `Compute mind-map layout from a markdown document.

The layout command parses the document's headings, picks one top-level title
and computes the position and size of every title in its tree. The output is
a layout.json file (same format as 'render -f json') that can be drawn to
SVG/PNG/PDF using the 'visualize' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], &flags, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	flags.bindParse(cmd)
	flags.bindLayout(cmd)

	return cmd
}

// runLayout parses the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, flags *pipelineFlags, output string) error {
	doc, err := readInput(input)
	if err != nil {
		return err
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

	tree, err := c.parseAndSelect(ctx, runner, doc, flags, &opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Computing mind-map layout...")
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := layout.WriteFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(l.Nodes), len(l.Connectors()), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}

// parseAndSelect parses doc through the runner and narrows the forest to the
// tree chosen by --root or the interactive picker. The chosen index is stored
// in opts.Root so later stages key their cache entries by it.
func (c *CLI) parseAndSelect(ctx context.Context, runner *pipeline.Runner, doc []byte, flags *pipelineFlags, opts *pipeline.Options) (outline.Forest, error) {
	forest, _, err := runner.ParseWithCacheInfo(ctx, doc, *opts)
	if err != nil {
		return nil, err
	}
	if flags.interactive {
		idx, err := pickRoot(ctx, forest)
		if err != nil {
			return nil, err
		}
		opts.Root = idx
	}
	if len(forest) > 1 {
		c.Logger.Debug("selected top-level title", "index", opts.Root, "of", len(forest))
	}
	return pipeline.SelectRoot(forest, opts.Root)
}
