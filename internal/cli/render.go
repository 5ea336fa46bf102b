package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// chartFlags are the flags shared by render and describe.
type chartFlags struct {
	width    int
	height   int
	rangeStr string
	symbol   string
	typ      string
	title    string
	colour   string
	format   string
	jsonPath string
	sheet    string
}

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	chartFlags
	output  string
	noCache bool
	refresh bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.width, "width", "w", pipeline.DefaultWidth, "maximum chart width in characters (min 40)")
	cmd.Flags().IntVarP(&f.height, "height", "H", pipeline.DefaultHeight, "chart height in rows, including axis and labels")
	cmd.Flags().StringVarP(&f.rangeStr, "range", "r", pipeline.DefaultRange, "y range: min-max, zero-max or LOWER:UPPER")
	cmd.Flags().StringVarP(&f.symbol, "symbol", "s", pipeline.DefaultSymbol, "plot symbol")
	cmd.Flags().StringVarP(&f.typ, "type", "t", pipeline.DefaultType, "graph type: bar, scatter")
	cmd.Flags().StringVar(&f.title, "title", "", "chart title (overrides the dataset title)")
	cmd.Flags().StringVar(&f.colour, "colour", colourAuto, "colour output: auto, always, never")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "input format: json, csv, toml, yaml, xlsx (default from extension)")
	cmd.Flags().StringVar(&f.jsonPath, "json-path", "", "gjson path of the points array in JSON input")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "worksheet name for XLSX input (default first sheet)")

	noFiles := cobra.ShellCompDirectiveNoFileComp
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions([]string{"bar", "scatter"}, noFiles))
	_ = cmd.RegisterFlagCompletionFunc("range", cobra.FixedCompletions([]string{"min-max", "zero-max"}, noFiles))
	_ = cmd.RegisterFlagCompletionFunc("colour", cobra.FixedCompletions([]string{colourAuto, colourAlways, colourNever}, noFiles))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"json", "csv", "toml", "yaml", "xlsx"}, noFiles))
}

// applyConfig fills every flag the user did not set from cfg.
func (f *chartFlags) applyConfig(cmd *cobra.Command, cfg ChartConfig) {
	set := func(name string, apply func()) {
		if !cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("width", func() { f.width = cfg.Width })
	set("height", func() { f.height = cfg.Height })
	set("range", func() { f.rangeStr = cfg.Range })
	set("symbol", func() { f.symbol = cfg.Symbol })
	set("type", func() { f.typ = cfg.Type })
	set("colour", func() { f.colour = cfg.Colour })
}

// options converts the flags to pipeline options for input, with colour
// resolved against out.
func (f *chartFlags) options(input string, out io.Writer) (pipeline.Options, error) {
	colour, err := useColour(f.colour, out)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Input:    input,
		Format:   strings.ToLower(f.format),
		JSONPath: f.jsonPath,
		Sheet:    f.sheet,
		Title:    f.title,
		Width:    f.width,
		Height:   f.height,
		Range:    f.rangeStr,
		Symbol:   f.symbol,
		Type:     f.typ,
		Colour:   colour,
	}, nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file|url]",
		Short: "Render a dataset as a text chart",
		Long: `Render a dataset as a bar or scatter chart.

The dataset is read from file, or from stdin when file is "-" or omitted
(stdin requires --format). An http or https URL is fetched and cached for
an hour; --refresh fetches it again. Wide datasets are split into several charts
that each fit within --width.`,
		Example: `  asciigraph render sales.csv
  asciigraph render --range zero-max --height 10 data.json
  cat data.yaml | asciigraph render -f yaml --type scatter
  asciigraph render report.xlsx --sheet Q3 -o q3.txt
  asciigraph render https://example.com/metrics.json --json-path data.series`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			flags.applyConfig(cmd, c.Config.Chart)
			return c.runRender(cmd, input, &flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the chart to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the chart cache")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render and re-fetch even if cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var out io.Writer = cmd.OutOrStdout()
	if flags.output != "" {
		// Colour auto-detection looks at the destination, and a file is not a
		// terminal.
		out = &bytes.Buffer{}
	}

	opts, err := flags.options(input, out)
	if err != nil {
		return err
	}
	opts.Refresh = flags.refresh
	opts.Logger = logger

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d points", result.Stats.Points))

	if flags.output == "" {
		_, err := out.Write(result.Output)
		return err
	}

	if err := os.WriteFile(flags.output, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	status := cmd.ErrOrStderr()
	printSuccess(status, "Rendered chart")
	printFile(status, flags.output)
	printStats(status, result.Stats.Points, result.Stats.Lines, result.CacheHit)
	return nil
}
