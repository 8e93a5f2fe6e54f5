package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

var (
	treeRootStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	treeNodeStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	treeEnumStyle  = lipgloss.NewStyle().Foreground(colorDim)
	treeLevelStyle = lipgloss.NewStyle().Foreground(colorGray)
)

// outlineCommand creates the outline command for inspecting the title tree.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		flags      pipelineFlags
		asJSON     bool
		output     string
		showLevels bool
	)

	cmd := &cobra.Command{
		Use:   "outline [file.md]",
		Short: "Print the title tree of a markdown document",
		Long: `Print the title tree of a markdown document.

Headings are nested by level: each title becomes a child of the nearest
preceding title with a lower level. A document may hold several top-level
titles; all of them are shown. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOutline(cmd.Context(), args[0], flags, asJSON, showLevels, output)
		},
	}

	cmd.Flags().StringVar(&flags.opts.Parser, "parser", pipeline.DefaultParser, "heading scanner: regex (default), goldmark")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&showLevels, "levels", false, "show heading levels")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file instead of stdout")

	return cmd
}

// runOutline parses the document and prints its forest.
func (c *CLI) runOutline(ctx context.Context, input string, flags pipelineFlags, asJSON, showLevels bool, output string) error {
	doc, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.opts
	opts.Logger = c.Logger
	forest, cacheHit, err := runner.ParseWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return err
	}

	if asJSON || output != "" {
		data, err := outline.Marshal(forest)
		if err != nil {
			return err
		}
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return err
		}
		if output != "" {
			printSuccess("Outline written")
			printFile(output)
		}
		return nil
	}

	if len(forest) == 0 {
		printWarning("No headings found in %s", input)
		return nil
	}

	fmt.Fprintln(stdout, renderForest(forest, showLevels))
	printNewline()
	printStats(forest.Count(), max(0, forest.Count()-len(forest)), cacheHit)
	if len(forest) > 1 {
		printDetail("%d top-level titles; render one with --root N or pick with -i", len(forest))
	}
	return nil
}

// renderForest draws the forest as a lipgloss tree, one branch per top-level title.
func renderForest(forest outline.Forest, showLevels bool) string {
	t := tree.New().
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle).
		ItemStyle(treeNodeStyle)

	for i, root := range forest {
		label := treeRootStyle.Render(fmt.Sprintf("[%d] %s", i, root.Text)) + levelSuffix(root, showLevels)
		t.Child(buildTree(root, label, showLevels))
	}
	return t.String()
}

// buildTree returns the subtree of n under the given label. Leaves are plain strings.
func buildTree(n *outline.Node, label string, showLevels bool) any {
	if n.IsLeaf() {
		return label
	}
	t := tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle)
	for _, child := range n.Children {
		t.Child(buildTree(child, child.Text+levelSuffix(child, showLevels), showLevels))
	}
	return t
}

func levelSuffix(n *outline.Node, showLevels bool) string {
	if !showLevels {
		return ""
	}
	return " " + treeLevelStyle.Render(fmt.Sprintf("h%d", n.Level))
}
