// Package chart renders numeric datasets as ASCII bar or scatter charts.
//
// # Overview
//
// A render call takes an ordered [Dataset], a [Config] and a [GraphType] and
// writes plain text rows to an io.Writer. The work happens in four steps:
//
//  1. Validation: empty datasets and configs below the usability floor
//     (width < 40, height < 4) are rejected before anything is written.
//  2. Scale: [ResolveScale] computes the origin and per-row increment once
//     for the whole dataset, so every page shares the same axis.
//  3. Pagination: [Paginate] splits the columns into pages that fit within
//     MaxWidth. Columns are taken from the end of the remaining sequence, so
//     the first page shows the last columns of the dataset, right to left.
//  4. Grid: each page is built bottom-up (labels, axis rule, value levels)
//     and emitted top-down, so the highest level appears first and the
//     labels last.
//
// # Usage
//
//	ds := chart.FromSlices(
//	    []string{"apples", "oranges", "bananas", "grapes"},
//	    []float64{5, 3, 8, 2},
//	).WithTitle("Fruit")
//
//	cfg := chart.DefaultConfig().WithMaxHeight(11)
//	if err := chart.Render(os.Stdout, ds, cfg, chart.Bar); err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// All failures are *errors.Error values from [github.com/matzehuels/asciigraph/pkg/errors]
// with one of the chart codes (NO_DATA, WIDTH_TOO_SMALL, HEIGHT_TOO_SMALL,
// INVERTED_CUSTOM_RANGE, COLUMN_TOO_WIDE, UNSUPPORTED_GRAPH_TYPE). Output is
// assembled in memory and written in one call, so a failed render writes
// nothing.
//
// # Concurrency
//
// Render is a pure function of its arguments. Concurrent calls are safe as
// long as each uses its own writer.
package chart
