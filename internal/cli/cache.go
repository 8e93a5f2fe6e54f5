package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local result cache",
		Long: `The CLI keeps parsed outlines, layouts and rendered drawings under
$XDG_CACHE_HOME/mindmap so repeated renders of an unchanged document are
served from disk. Use --no-cache on render or visualize to bypass it.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached outlines, layouts and drawings",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return runCacheClear() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("resolve cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)
	return cmd
}

func runCacheClear() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("resolve cache dir: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		printInfo("Nothing cached yet")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return fmt.Errorf("clear %s: %w", fc.Dir(), err)
	}
	printSuccess("Removed %s", plural(n, "cached result"))
	printDetail("Directory: %s", fc.Dir())
	return nil
}
