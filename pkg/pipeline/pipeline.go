// Package pipeline provides the load → render pipeline for asciigraph.
//
// The CLI and the HTTP server both go through a [Runner] so that caching,
// logging and hooks behave the same at every entry point.
//
// # Stages
//
//  1. Load: import a dataset from a file or stdin (skipped when the caller
//     already holds a [chart.Dataset], as the server does)
//  2. Render: validate options, draw the chart and cache the text
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input: "fruit.csv",
//	    Width: 60,
//	    Range: "zero-max",
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/asciigraph/pkg/cache"
	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
	asciiio "github.com/matzehuels/asciigraph/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default maximum chart width in characters.
	DefaultWidth = chart.DefaultMaxWidth

	// DefaultHeight is the default chart height in rows.
	DefaultHeight = chart.DefaultMaxHeight

	// DefaultRange is the default y-range policy.
	DefaultRange = "min-max"

	// DefaultSymbol is the default plot symbol.
	DefaultSymbol = "#"

	// DefaultType is the default graph type.
	DefaultType = "bar"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. The JSON form is
// the "options" object of the server's render request.
type Options struct {
	// Load options
	Input    string `json:"-"` // file path or "-" for stdin
	Format   string `json:"format,omitempty"`
	JSONPath string `json:"json_path,omitempty"`
	Sheet    string `json:"sheet,omitempty"`
	Title    string `json:"title,omitempty"` // overrides the dataset title

	// Render options. Zero values select the defaults above.
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Range  string `json:"range,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Type   string `json:"type,omitempty"`
	Colour bool   `json:"colour,omitempty"`

	// Refresh bypasses the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// resolved by ValidateForRender
	config    chart.Config
	graphType chart.GraphType
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Dataset is the loaded (and possibly retitled) dataset.
	Dataset chart.Dataset

	// DatasetHash is the content hash used in cache keys.
	DatasetHash string

	// Output is the rendered chart text.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Points     int
	Lines      int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateSymbol checks that s is a single printable character one cell wide.
func ValidateSymbol(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "symbol must be a single character, got %q", s)
	}
	if !unicode.IsPrint(r) || unicode.IsSpace(r) || runewidth.RuneWidth(r) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "symbol %q must be a printable single-width character", s)
	}
	return r, nil
}

// ValidateFormat checks an input format name. Empty means detect from the
// file extension.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	_, err := asciiio.ParseFormat(format)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every option. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks load options.
func (o *Options) ValidateForLoad() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormat(o.Format)
}

// SetRenderDefaults fills zero-valued render options.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Range == "" {
		o.Range = DefaultRange
	}
	if o.Symbol == "" {
		o.Symbol = DefaultSymbol
	}
	if o.Type == "" {
		o.Type = DefaultType
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and resolves the chart configuration.
// Width and height limits are not checked here; the chart engine reports
// them with their own error codes.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()

	policy, err := chart.ParseScalePolicy(o.Range)
	if err != nil {
		return err
	}
	symbol, err := ValidateSymbol(o.Symbol)
	if err != nil {
		return err
	}
	g, err := chart.ParseGraphType(o.Type)
	if err != nil {
		return err
	}

	o.config = chart.DefaultConfig().
		WithMaxWidth(o.Width).
		WithMaxHeight(o.Height).
		WithYRange(policy).
		WithPlotSymbol(symbol).
		WithColour(o.Colour)
	o.graphType = g
	return nil
}

// Chart returns the resolved chart configuration and graph type.
// ValidateForRender must have succeeded first.
func (o *Options) Chart() (chart.Config, chart.GraphType) {
	return o.config, o.graphType
}

// ChartKeyOpts returns cache key options for the rendered output.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	return cache.ChartKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Range:  o.config.YRange.String(),
		Symbol: o.Symbol,
		Type:   o.graphType.String(),
		Colour: o.Colour,
	}
}

// ImportOptions returns the options passed to the dataset importer.
func (o *Options) ImportOptions() asciiio.ImportOptions {
	return asciiio.ImportOptions{
		Format:   asciiio.Format(o.Format),
		JSONPath: o.JSONPath,
		Sheet:    o.Sheet,
		Title:    o.Title,
	}
}
