package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/fonts"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/render/sink"
)

// defaultTolerance is the accepted share of mismatched ink pixels.
const defaultTolerance = 0.05

// verifyCommand creates the verify command that compares the two backends.
func (c *CLI) verifyCommand() *cobra.Command {
	var (
		flags     pipelineFlags
		tolerance float64
	)

	cmd := &cobra.Command{
		Use:   "verify [file.md|layout.json]",
		Short: "Check that the vector and raster backends draw the same mind map",
		Long: `Check that the vector and raster backends draw the same mind map.

The layout is drawn twice without labels: once as SVG, rasterized with
oksvg, and once with the raster backend. Boxes and connectors must land on
the same pixels (within one pixel) for at least 1-tolerance of the inked
area, and every coordinate written to the SVG must equal the layout's.

The input is either a markdown document or a layout.json from 'layout'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), args[0], &flags, tolerance)
		},
	}

	cmd.Flags().Float64Var(&tolerance, "tolerance", defaultTolerance, "accepted mismatched pixel ratio")
	flags.bindParse(cmd)
	flags.bindLayout(cmd)

	return cmd
}

// runVerify loads or computes the layout and prints the parity report.
func (c *CLI) runVerify(ctx context.Context, input string, flags *pipelineFlags, tolerance float64) error {
	opts, err := flags.options(c.Logger)
	if err != nil {
		return err
	}

	var l layout.Layout
	if filepath.Ext(input) == ".json" {
		if l, err = layout.ReadFile(input); err != nil {
			return fmt.Errorf("load layout %s: %w", input, err)
		}
	} else {
		doc, err := readInput(input)
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
		if l, err = runner.GenerateLayout(ctx, tree, opts); err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	}

	faces, err := fonts.NewFaces()
	if err != nil {
		return err
	}
	defer faces.Close()

	rep, err := sink.CheckParity(l, sink.WithTheme(opts.ThemeOrDefault()), sink.WithFaces(faces))
	if err != nil {
		return fmt.Errorf("check parity: %w", err)
	}

	printKeyValue("Surface", fmt.Sprintf("%dx%d", rep.Width, rep.Height))
	printKeyValue("Inked", strconv.Itoa(rep.Inked))
	printKeyValue("Mismatched", fmt.Sprintf("%d (%.2f%%)", rep.Mismatched, rep.Ratio()*100))
	printKeyValue("Geometry", fmt.Sprintf("%d difference(s)", len(rep.Geometry)))
	for _, d := range rep.Geometry {
		printDetail("%s", d)
	}
	printNewline()

	if !rep.OK(tolerance) {
		printError("Backends disagree")
		return fmt.Errorf("parity check failed: %.2f%% mismatched, %d geometry difference(s)", rep.Ratio()*100, len(rep.Geometry))
	}
	printSuccess("Backends agree")
	return nil
}
