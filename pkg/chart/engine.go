package chart

import (
	"bytes"
	"io"
	"strings"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

// Layout is the fully validated render plan of a dataset.
type Layout struct {
	Title       string
	Scale       ResolvedScale
	PlottedRows int
	AxisWidth   int
	Pages       []Page
}

// Columns returns the total number of columns over all pages.
func (l *Layout) Columns() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Columns)
	}
	return n
}

// Plan validates the inputs and computes scale and pagination without
// producing any text.
//
// Checks run in order and stop at the first failure: empty dataset,
// MaxWidth below [MinMaxWidth], MaxHeight without a plotted row, unsupported
// graph type, inverted custom range, and finally a label too wide for any page.
func Plan(ds Dataset, cfg Config, g GraphType) (*Layout, error) {
	if len(ds.Points) == 0 {
		return nil, errors.New(errors.ErrCodeNoData, "dataset is empty")
	}
	if cfg.MaxWidth < MinMaxWidth {
		return nil, errors.New(errors.ErrCodeWidthTooSmall,
			"max width %d is below the minimum of %d", cfg.MaxWidth, MinMaxWidth)
	}
	if cfg.MaxHeight <= ReservedRows {
		return nil, errors.New(errors.ErrCodeHeightTooSmall,
			"max height %d leaves no plotted rows (need more than %d)", cfg.MaxHeight, ReservedRows)
	}
	if err := g.check(); err != nil {
		return nil, err
	}

	scale, err := ResolveScale(ds.Values(), cfg.YRange, cfg.PlottedRows())
	if err != nil {
		return nil, err
	}

	pages, err := Paginate(ds.Points, cfg.MaxWidth)
	if err != nil {
		return nil, err
	}

	return &Layout{
		Title:       ds.Title,
		Scale:       scale,
		PlottedRows: cfg.PlottedRows(),
		AxisWidth:   axisWidth(scale, cfg.MaxHeight),
		Pages:       pages,
	}, nil
}

// Render draws ds to w.
//
// The title, when present, is written once as a tab-indented line before the
// first page. Each page follows as MaxHeight rows. Nothing is written if any
// check fails.
func Render(w io.Writer, ds Dataset, cfg Config, g GraphType) error {
	l, err := Plan(ds, cfg, g)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if l.Title != "" {
		buf.WriteString("\t")
		buf.WriteString(l.Title)
		buf.WriteByte('\n')
	}
	for _, p := range l.Pages {
		for _, row := range renderPage(p, l.Scale, cfg, g, l.AxisWidth) {
			buf.WriteString(row)
			buf.WriteByte('\n')
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// RenderString renders ds and returns the text.
func RenderString(ds Dataset, cfg Config, g GraphType) (string, error) {
	var sb strings.Builder
	if err := Render(&sb, ds, cfg, g); err != nil {
		return "", err
	}
	return sb.String(), nil
}
