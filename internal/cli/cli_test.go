package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/pipeline"
	"github.com/matzehuels/mindmap/pkg/style"
)

const sampleDoc = `# Plan
## Build
### Parser
### Layout
## Ship
# Later
## Maybe
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,png", []string{"svg", "png"}},
		{"svg, pdf ,json", []string{"svg", "pdf", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPipelineFlagsResolveFormats(t *testing.T) {
	t.Setenv(themeEnv, "")
	tests := []struct {
		formats string
		want    []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg, json", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.formats, func(t *testing.T) {
			f := pipelineFlags{formats: tt.formats}
			opts, err := f.options(log.New(io.Discard))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(opts.Formats, tt.want) {
				t.Errorf("Formats = %v, want %v", opts.Formats, tt.want)
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	t.Setenv(themeEnv, "")

	got, err := loadTheme("")
	if err != nil {
		t.Fatalf("loadTheme(\"\") error: %v", err)
	}
	if !reflect.DeepEqual(got, style.Default()) {
		t.Error("empty path should load the built-in theme")
	}

	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("connector = \"#112233\"\n[root]\nfont_size = 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(themeEnv, path)
	got, err = loadTheme("")
	if err != nil {
		t.Fatalf("loadTheme via env error: %v", err)
	}
	if got.Connector != "#112233" || got.Root.FontSize != 20 {
		t.Errorf("theme = %+v, want overlaid connector and root size", got)
	}
	if got.Secondary != style.Default().Secondary {
		t.Error("keys missing from the file should keep their defaults")
	}
}

func TestLoadThemeErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("fill = \"nope\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.toml"), errors.ErrCodeFileNotFound},
		{"invalid", bad, errors.ErrCodeInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadTheme(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("loadTheme() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadInput(t *testing.T) {
	path := writeDoc(t, sampleDoc)
	data, err := readInput(path)
	if err != nil {
		t.Fatalf("readInput() error: %v", err)
	}
	if string(data) != sampleDoc {
		t.Errorf("readInput() = %q", data)
	}

	_, err = readInput(filepath.Join(t.TempDir(), "nope.md"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "docs/notes.md", "docs/notes"},
		{"", "-", "mindmap"},
		{"out.svg", "notes.md", "out"},
		{"out.png", "notes.md", "out"},
		{"out", "notes.md", "out"},
		{"out.txt", "notes.md", "out.txt"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		output, input, format string
		formats               int
		want                  string
	}{
		{"", "notes.md", "svg", 1, "notes.svg"},
		{"map.svg", "notes.md", "svg", 1, "map.svg"},
		{"map.svg", "notes.md", "png", 2, "map.png"},
		{"", trimLayoutSuffix("notes.layout.json"), "png", 1, "notes.png"},
	}
	for _, tt := range tests {
		if got := artifactPath(tt.output, tt.input, tt.format, tt.formats); got != tt.want {
			t.Errorf("artifactPath(%q, %q, %q, %d) = %q, want %q", tt.output, tt.input, tt.format, tt.formats, got, tt.want)
		}
	}
}

func TestRootOutput(t *testing.T) {
	if got := rootOutput("notes", 1, []string{"svg"}); got != "notes_1.svg" {
		t.Errorf("rootOutput single format = %q", got)
	}
	if got := rootOutput("notes", 0, []string{"svg", "png"}); got != "notes_0" {
		t.Errorf("rootOutput multiple formats = %q", got)
	}
}

func TestRenderForest(t *testing.T) {
	forest, err := pipeline.Parse([]byte(sampleDoc), pipeline.ParserRegex)
	if err != nil {
		t.Fatal(err)
	}
	out := renderForest(forest, true)
	for _, want := range []string{"[0] Plan", "[1] Later", "Parser", "Maybe", "h3"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderForest() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(renderForest(forest, false), "h3") {
		t.Error("levels should only be shown on request")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	want := []string{"outline", "layout", "visualize", "render", "verify", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(themeEnv, "")
	captureStdout(t)
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(t.Context())
}

func TestRenderCommand(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	out := filepath.Join(t.TempDir(), "map.svg")

	if err := execute(t, "render", input, "-o", out, "--measure", "estimate"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) || !bytes.Contains(data, []byte(">Plan<")) {
		t.Errorf("unexpected svg output: %.120s", data)
	}
	if bytes.Contains(data, []byte(">Later<")) {
		t.Error("only the first top-level title should be drawn by default")
	}
}

func TestRenderCommandAllRoots(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	base := filepath.Join(t.TempDir(), "map")

	if err := execute(t, "render", input, "-o", base, "--all-roots", "--no-cache"); err != nil {
		t.Fatalf("render --all-roots error: %v", err)
	}
	for i, title := range []string{"Plan", "Later"} {
		name := fmt.Sprintf("%s_%d.svg", base, i)
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("root %d: %v", i, err)
		}
		if !bytes.Contains(data, []byte(">"+title+"<")) {
			t.Errorf("root %d svg does not draw %q", i, title)
		}
		if _, err := os.Stat(fmt.Sprintf("%s_%d", base, i)); err == nil {
			t.Errorf("root %d written without a format extension", i)
		}
	}
}

func TestRenderCommandAllRootsFormats(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	base := filepath.Join(t.TempDir(), "map")

	if err := execute(t, "render", input, "-o", base, "--all-roots", "--no-cache", "-f", "svg,json"); err != nil {
		t.Fatalf("render --all-roots error: %v", err)
	}
	for i := range 2 {
		for _, ext := range []string{"svg", "json"} {
			name := fmt.Sprintf("%s_%d.%s", base, i, ext)
			if _, err := os.Stat(name); err != nil {
				t.Errorf("missing %s: %v", filepath.Base(name), err)
			}
		}
	}
}

func TestRenderCommandBadRoot(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	err := execute(t, "render", input, "--root", "5", "-o", filepath.Join(t.TempDir(), "x.svg"))
	if !errors.Is(err, errors.ErrCodeInvalidRoot) {
		t.Errorf("render --root 5 error = %v, want INVALID_ROOT", err)
	}
}

func TestLayoutThenVisualize(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "notes.layout.json")

	if err := execute(t, "layout", input, "-o", layoutPath, "--root", "1"); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	l, err := layout.ReadFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Nodes) != 2 || l.Nodes[0].Text != "Later" {
		t.Fatalf("layout nodes = %+v, want Later and Maybe", l.Nodes)
	}

	if err := execute(t, "visualize", layoutPath, "-f", "svg,png"); err != nil {
		t.Fatalf("visualize error: %v", err)
	}
	for _, name := range []string{"notes.svg", "notes.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("visualize did not write %s: %v", name, err)
		}
	}
}

func TestVerifyCommand(t *testing.T) {
	input := writeDoc(t, sampleDoc)
	if err := execute(t, "verify", input); err != nil {
		t.Errorf("verify error: %v", err)
	}
}
