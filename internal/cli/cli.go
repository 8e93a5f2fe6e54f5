package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/style"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindmap"

	// themeEnv names the environment variable holding the default theme file.
	themeEnv = "MINDMAP_THEME"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mindmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineFlags holds the flags shared by the commands that run the pipeline.
type pipelineFlags struct {
	opts        pipeline.Options
	formats     string
	theme       string
	noCache     bool
	interactive bool
}

// bindParse registers the flags that affect parsing and root selection.
func (f *pipelineFlags) bindParse(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.opts.Parser, "parser", pipeline.DefaultParser, "heading scanner: regex (default), goldmark")
	cmd.Flags().IntVar(&f.opts.Root, "root", 0, "index of the top-level title to draw")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "pick the top-level title interactively")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// bindLayout registers the flags that affect text measurement.
func (f *pipelineFlags) bindLayout(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.opts.Measure, "measure", pipeline.DefaultMeasure, "text measurement: face (default), estimate")
	cmd.Flags().StringVar(&f.theme, "theme", "", "TOML theme file (default: $"+themeEnv+")")
}

// bindRender registers the output flags.
func (f *pipelineFlags) bindRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&f.opts.Width, "width", pipeline.DefaultWidth, "PNG container width")
	cmd.Flags().Float64Var(&f.opts.Height, "height", pipeline.DefaultHeight, "PNG container height")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.opts.NoText, "no-text", false, "omit labels")
}

// options returns the pipeline options with the theme loaded and formats
// resolved. Formats are never empty, since output names derive from them.
func (f *pipelineFlags) options(logger *log.Logger) (pipeline.Options, error) {
	opts := f.opts
	opts.Logger = logger
	opts.Formats = parseFormats(f.formats)
	theme, err := loadTheme(f.theme)
	if err != nil {
		return opts, err
	}
	opts.Theme = &theme
	return opts, nil
}

// loadTheme reads the theme file at path, falling back to $MINDMAP_THEME and
// then to the built-in theme.
func loadTheme(path string) (style.Theme, error) {
	if path == "" {
		path = os.Getenv(themeEnv)
	}
	if path == "" {
		return style.Default(), nil
	}
	t, err := style.Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return style.Theme{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file %s not found", path)
		}
		return style.Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %s", path)
	}
	return t, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// readInput reads a markdown document from path, or from stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
