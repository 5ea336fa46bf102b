package chart

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

// Page is the group of columns drawn together in one figure.
type Page struct {
	// Columns in left-to-right display order.
	Columns []DataPoint

	// Remaining is the width budget left unused after the columns were
	// placed. It also sets the length of the page's axis rule.
	Remaining int
}

// Labels returns the column labels in display order.
func (p Page) Labels() []string {
	labels := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		labels[i] = c.Label
	}
	return labels
}

// labelWidth is the number of terminal cells a label occupies.
func labelWidth(label string) int {
	return runewidth.StringWidth(label)
}

// nextPage fills one page from the tail of remaining and returns it together
// with the points still to be placed. One cell of maxWidth is kept for the
// y-axis bar and every column costs its label width plus a separator.
func nextPage(remaining []DataPoint, maxWidth int) (Page, []DataPoint) {
	page := Page{Remaining: maxWidth - 1}
	for len(remaining) > 0 {
		last := remaining[len(remaining)-1]
		need := labelWidth(last.Label) + 1
		if need > page.Remaining {
			break
		}
		page.Columns = append(page.Columns, last)
		page.Remaining -= need
		remaining = remaining[:len(remaining)-1]
	}
	return page, remaining
}

// Paginate partitions points into pages no wider than maxWidth.
//
// Columns are consumed from the end of the sequence: the first page holds
// the last points of the input in reverse order, and the first points of the
// input land on the final page. Every point appears on exactly one page.
// A label too wide for an empty page fails with COLUMN_TOO_WIDE.
func Paginate(points []DataPoint, maxWidth int) ([]Page, error) {
	var pages []Page
	remaining := points
	for len(remaining) > 0 {
		page, rest := nextPage(remaining, maxWidth)
		if len(page.Columns) == 0 {
			label := remaining[len(remaining)-1].Label
			return nil, errors.New(errors.ErrCodeColumnTooWide,
				"label %q needs %d columns but max width %d leaves %d",
				label, labelWidth(label)+1, maxWidth, maxWidth-1)
		}
		pages = append(pages, page)
		remaining = rest
	}
	return pages, nil
}
