package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// =============================================================================
// Output Files
// =============================================================================

// openOutput returns a writer for path, or stdout when path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "mindmap"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath returns where the artifact of the given format is written.
// A single requested format may go to output verbatim.
func artifactPath(output, input, format string, formats int) string {
	if output != "" && formats == 1 {
		return output
	}
	return basePath(output, input) + "." + format
}

// =============================================================================
// Artifact Writing
// =============================================================================

// artifactWriteParams groups what writeArtifacts needs to place and report files.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	nodes     int
	edges     int
}

// writeArtifacts writes each rendered format to disk and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	formats := p.formats
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
	}

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(p.output, p.input, format, len(formats))
		if err := writeFile(path, data); err != nil {
			return err
		}
		paths = append(paths, path)
	}
	if p.output == "-" {
		return nil
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// trimLayoutSuffix maps "doc.layout.json" to a path whose base is "doc", so
// drawings of a stored layout land next to the document they came from.
func trimLayoutSuffix(input string) string {
	if base, ok := strings.CutSuffix(input, ".layout.json"); ok {
		return base + ".layout"
	}
	return input
}
