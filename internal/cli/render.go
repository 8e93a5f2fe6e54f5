package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// renderCommand creates the render command that runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags    pipelineFlags
		output   string
		allRoots bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.md]",
		Short: "Render a markdown document to a mind map",
		Long: `Render a markdown document to a mind map.

The render command parses the headings, lays out one top-level title and
draws it in every requested format. It is equivalent to running 'layout'
followed by 'visualize', except that PNG output is fitted to the
--width x --height container.

A document may hold several top-level titles. By default the first one is
drawn; choose another with --root N, pick interactively with -i, or draw
each into its own file with --all-roots (<base>_<N>.<format>).

Use -t nodelink for a Graphviz rendering of the same tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if allRoots && flags.interactive {
				return fmt.Errorf("--all-roots and --interactive cannot be combined")
			}
			return c.runRender(cmd.Context(), args[0], &flags, output, allRoots)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: mindmap (default), nodelink")
	cmd.Flags().BoolVar(&flags.opts.Detailed, "detailed", false, "show heading levels in nodelink labels")
	cmd.Flags().BoolVar(&allRoots, "all-roots", false, "render every top-level title to its own file")
	flags.bindParse(cmd)
	flags.bindLayout(cmd)
	flags.bindRender(cmd)

	return cmd
}

// runRender reads the document and executes the full pipeline for one or
// all top-level titles.
func (c *CLI) runRender(ctx context.Context, input string, flags *pipelineFlags, output string, allRoots bool) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

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

	forest, _, err := runner.ParseWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return err
	}

	if !allRoots || len(forest) < 2 {
		if flags.interactive {
			if opts.Root, err = pickRoot(ctx, forest); err != nil {
				return err
			}
		}
		if err := c.renderOne(ctx, runner, doc, opts, input, output); err != nil {
			return err
		}
		prog.done("Rendered " + input)
		return nil
	}

	base := basePath(output, input)
	for i := range forest {
		opts.Root = i
		if err := c.renderOne(ctx, runner, doc, opts, input, rootOutput(base, i, opts.Formats)); err != nil {
			return fmt.Errorf("root %d (%s): %w", i, forest[i].Text, err)
		}
	}
	prog.done(fmt.Sprintf("Rendered %d top-level titles of %s", len(forest), input))
	return nil
}

// renderOne executes the pipeline for opts.Root and writes its artifacts.
func (c *CLI) renderOne(ctx context.Context, runner *pipeline.Runner, doc []byte, opts pipeline.Options, input, output string) error {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	result, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
	})
}

// rootOutput returns the output base for the i-th top-level title. With a
// single format it carries the extension so the file is written verbatim.
func rootOutput(base string, i int, formats []string) string {
	out := fmt.Sprintf("%s_%d", base, i)
	if len(formats) == 1 {
		out += "." + formats[0]
	}
	return out
}
