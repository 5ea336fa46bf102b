package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/colour"
	"github.com/matzehuels/asciigraph/pkg/httputil"
	"github.com/matzehuels/asciigraph/pkg/pipeline"
)

// describeCommand creates the describe command, which shows how a dataset
// would be laid out without drawing it.
func (c *CLI) describeCommand() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "describe [file|url]",
		Short: "Show a dataset and its computed scale and pages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			flags.applyConfig(cmd, c.Config.Chart)
			return c.runDescribe(cmd, input, &flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runDescribe(cmd *cobra.Command, input string, flags *chartFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	opts, err := flags.options(input, out)
	if err != nil {
		return err
	}
	opts.Logger = loggerFromContext(ctx)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	runner.Fetcher = httputil.NewFetcher(c.remoteCache(false))
	ds, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	cfg, g := opts.Chart()
	layout, err := chart.Plan(ds, cfg, g)
	if err != nil {
		return err
	}

	writeDescription(out, ds, layout, cfg, g)
	return nil
}

// writeDescription prints the points table followed by the layout summary.
func writeDescription(w io.Writer, ds chart.Dataset, l *chart.Layout, cfg chart.Config, g chart.GraphType) {
	if ds.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(ds.Title))
	}

	page := make([]int, 0, len(ds.Points))
	for i, p := range l.Pages {
		for range p.Columns {
			page = append(page, i+1)
		}
	}

	rows := make([][]string, len(ds.Points))
	for i, p := range ds.Points {
		col := ""
		if p.Colour != colour.None {
			col = p.Colour.String()
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			p.Label,
			strconv.FormatFloat(p.Value, 'g', -1, 64),
			col,
			strconv.Itoa(page[i]),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Label", "Value", "Colour", "Page").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 || col == 4 {
				return base.Foreground(colorDim)
			}
			if col == 2 {
				return base.Foreground(colorCyan)
			}
			return base
		})
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)

	printKeyValue(w, "Type", g.String())
	printKeyValue(w, "Range", cfg.YRange.String())
	printKeyValue(w, "Origin", strconv.FormatFloat(l.Scale.Origin, 'g', -1, 64))
	printKeyValue(w, "Increment", strconv.FormatFloat(l.Scale.Increment, 'g', -1, 64))
	printKeyValue(w, "Plotted rows", strconv.Itoa(l.PlottedRows))
	printKeyValue(w, "Axis width", strconv.Itoa(l.AxisWidth))
	printKeyValue(w, "Pages", strconv.Itoa(len(l.Pages)))
	for i, p := range l.Pages {
		printDetail(w, "page %d: %d columns, %d cells spare", i+1, len(p.Columns), p.Remaining)
	}
}
