// Package pipeline provides the document → outline → layout → render
// pipeline shared by the CLI and the HTTP API.
//
// By centralizing this logic, every entry point applies the same defaults,
// validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Scan markdown headings into a title forest
//  2. Layout: Compute mind-map geometry for one tree of the forest
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	forest, err := pipeline.Parse(doc, pipeline.ParserRegex)
//	tree, err := pipeline.SelectRoot(forest, 0)
//	l := pipeline.GenerateLayout(tree, m)
//	artifacts, err := pipeline.Render(ctx, tree, l, opts, faces)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
	"github.com/matzehuels/mindmap/pkg/outline"
	"github.com/matzehuels/mindmap/pkg/style"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default raster container width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default raster container height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// Parser names.
const (
	ParserRegex    = "regex"
	ParserGoldmark = "goldmark"
)

// Visualization types.
const (
	VizTypeMindmap  = "mindmap"
	VizTypeNodelink = "nodelink"
)

// Text measurement modes.
const (
	MeasureFace     = "face"
	MeasureEstimate = "estimate"
)

// Defaults for the string options.
const (
	DefaultParser  = ParserRegex
	DefaultVizType = VizTypeMindmap
	DefaultMeasure = MeasureFace
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidParsers is the set of supported heading scanners.
var ValidParsers = map[string]bool{
	ParserRegex:    true,
	ParserGoldmark: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeMindmap:  true,
	VizTypeNodelink: true,
}

// ValidMeasures is the set of supported measurement modes.
var ValidMeasures = map[string]bool{
	MeasureFace:     true,
	MeasureEstimate: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Parser string `json:"parser,omitempty"`
	Root   int    `json:"root,omitempty"` // index of the top-level title to draw

	// Layout options
	VizType string  `json:"viz_type,omitempty"`
	Width   float64 `json:"width,omitempty"`  // PNG container width
	Height  float64 `json:"height,omitempty"` // PNG container height
	Measure string  `json:"measure,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	NoText   bool     `json:"no_text,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // heading levels in nodelink labels
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Theme  *style.Theme `json:"-"`
	Logger *log.Logger  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the complete parsed outline.
	Forest outline.Forest

	// OutlineHash is the content hash of the selected tree.
	OutlineHash string

	// Layout is the vector-canvas layout of the selected tree.
	Layout layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	HeadingCount int // titles in the whole document
	RootCount    int // top-level titles
	NodeCount    int // titles in the drawn tree
	EdgeCount    int // connectors in the drawn tree
	ParseTime    time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the outline came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateParser checks that a parser name is valid.
func ValidateParser(parser string) error {
	if !ValidParsers[parser] {
		return errors.New(errors.ErrCodeInvalidParser, "invalid parser: %q (must be one of: regex, goldmark)", parser)
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: mindmap, nodelink)", vizType)
	}
	return nil
}

// ValidateMeasure checks that a measurement mode is valid.
func ValidateMeasure(m string) error {
	if !ValidMeasures[m] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid measure: %q (must be one of: face, estimate)", m)
	}
	return nil
}

// ValidateScale checks that a PNG scale factor is usable.
func ValidateScale(scale float64) error {
	if scale <= 0 || scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %g (must be in (0, 8])", scale)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks and defaults the parse options.
func (o *Options) ValidateForParse() error {
	if o.Parser == "" {
		o.Parser = DefaultParser
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateParser(o.Parser); err != nil {
		return err
	}
	return errors.ValidateRoot(o.Root, 0)
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Measure == "" {
		o.Measure = DefaultMeasure
	}
	if o.Theme == nil {
		t := style.Default()
		o.Theme = &t
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateMeasure(o.Measure); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(int(o.Width), int(o.Height)); err != nil {
		return err
	}
	if err := o.Theme.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTheme, err, "invalid theme")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.SetLayoutDefaults()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		return errors.ValidatePixels(int(o.Width*o.Scale), int(o.Height*o.Scale))
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ThemeOrDefault returns the configured theme or the built-in one.
func (o *Options) ThemeOrDefault() style.Theme {
	if o.Theme == nil {
		return style.Default()
	}
	return *o.Theme
}

// ThemeHash returns a content hash of the theme for cache keys.
func (o *Options) ThemeHash() string {
	return cache.Hash([]byte(fmt.Sprintf("%+v", o.ThemeOrDefault())))
}

// OutlineKeyOpts returns cache key options for parsing.
func (o *Options) OutlineKeyOpts() cache.OutlineKeyOpts {
	return cache.OutlineKeyOpts{Parser: o.Parser}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		VizType: o.VizType,
		Root:    o.Root,
		Measure: o.Measure,
		Theme:   o.ThemeHash(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// The container size only shapes PNG output, so it is keyed for PNG alone.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	ko := cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.ThemeHash(),
		Scale:  o.Scale,
		NoText: o.NoText,
	}
	if o.IsNodelink() {
		ko.Detailed = o.Detailed
	}
	if format == FormatPNG {
		ko.Width, ko.Height = o.Width, o.Height
	}
	return ko
}
