package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/httputil"
	asciiio "github.com/matzehuels/asciigraph/pkg/io"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

type convertFlags struct {
	format   string
	jsonPath string
	sheet    string
	title    string
	output   string
}

// convertCommand creates the convert command, which normalizes any
// supported input into the JSON dataset form.
func (c *CLI) convertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [file|url]",
		Short: "Convert a dataset to JSON",
		Long: `Convert a dataset in any supported format to the JSON form
{"title": ..., "points": [{"label": ..., "value": ..., "colour": ...}]}.`,
		Example: `  asciigraph convert report.xlsx --sheet Q3 -o q3.json
  cat data.csv | asciigraph convert -f csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return c.runConvert(cmd, input, &flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "input format: json, csv, toml, yaml, xlsx (default from extension)")
	cmd.Flags().StringVar(&flags.jsonPath, "json-path", "", "gjson path of the points array in JSON input")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "worksheet name for XLSX input (default first sheet)")
	cmd.Flags().StringVar(&flags.title, "title", "", "dataset title")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, flags *convertFlags) error {
	ctx := cmd.Context()
	opts := pipeline.Options{
		Input:    input,
		Format:   strings.ToLower(flags.format),
		JSONPath: flags.jsonPath,
		Sheet:    flags.sheet,
		Title:    flags.title,
		Logger:   loggerFromContext(ctx),
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	runner.Fetcher = httputil.NewFetcher(c.remoteCache(false))
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	if flags.output == "" {
		return asciiio.WriteJSON(ds, cmd.OutOrStdout())
	}
	if err := asciiio.ExportJSON(ds, flags.output); err != nil {
		return err
	}
	printFile(cmd.ErrOrStderr(), flags.output)
	return nil
}
