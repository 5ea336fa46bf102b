package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/asciigraph/pkg/colour"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

// GraphType selects the predicate deciding which cells are drawn.
type GraphType int

const (
	// Bar fills every level at or below a column's value.
	Bar GraphType = iota
	// Scatter marks only the level whose band contains the value.
	Scatter
	// ScatterInterpolated is reserved. Rendering it fails with
	// UNSUPPORTED_GRAPH_TYPE.
	ScatterInterpolated
)

var graphTypeNames = map[GraphType]string{
	Bar:                 "bar",
	Scatter:             "scatter",
	ScatterInterpolated: "scatter-interpolated",
}

// String returns the lower-case name of the graph type.
func (g GraphType) String() string {
	if n, ok := graphTypeNames[g]; ok {
		return n
	}
	return fmt.Sprintf("graph(%d)", int(g))
}

// ParseGraphType parses "bar", "scatter" or "scatter-interpolated".
func ParseGraphType(s string) (GraphType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Bar, nil
	}
	for g, name := range graphTypeNames {
		if s == name {
			return g, nil
		}
	}
	return Bar, errors.New(errors.ErrCodeInvalidInput,
		"invalid graph type %q (must be bar, scatter or scatter-interpolated)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (g GraphType) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *GraphType) UnmarshalText(b []byte) error {
	parsed, err := ParseGraphType(string(b))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func (g GraphType) check() error {
	switch g {
	case Bar, Scatter:
		return nil
	case ScatterInterpolated:
		return errors.New(errors.ErrCodeUnsupportedGraphType, "%s graphs are not implemented", g)
	default:
		return errors.New(errors.ErrCodeUnsupportedGraphType, "unknown graph type %d", int(g))
	}
}

// plots reports whether value is drawn at the level y with the given band
// height.
func (g GraphType) plots(value, y, increment float64) bool {
	switch g {
	case Bar:
		return value >= y
	case Scatter:
		return y <= value && value < y+increment
	default:
		return false
	}
}

// formatAxisValue renders a level value in its shortest single-precision
// decimal form ("2", "2.75", "2.6666667").
func formatAxisValue(v float64) string {
	return strconv.FormatFloat(float64(float32(v)), 'f', -1, 32)
}

// axisWidth is the widest formatted level value over all maxHeight rows.
func axisWidth(s ResolvedScale, maxHeight int) int {
	w := 0
	for i := 0; i < maxHeight; i++ {
		w = max(w, len(formatAxisValue(s.Level(i))))
	}
	return w
}

// renderPage builds the text rows of one page, top row first.
//
// Rows are assembled bottom-up: index 0 holds the labels, index 1 the axis
// rule and indexes 2 and above the value levels in ascending order. Level
// values are printed on even indexes and on the last one. The result is
// returned reversed so the highest level comes first.
func renderPage(p Page, s ResolvedScale, cfg Config, g GraphType, axisW int) []string {
	rows := make([]string, 0, cfg.MaxHeight)
	symbol := string(cfg.symbol())

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", axisW+1))
	for _, c := range p.Columns {
		b.WriteString(c.Label)
		b.WriteByte(' ')
	}
	rows = append(rows, b.String())

	rows = append(rows, strings.Repeat(" ", axisW)+strings.Repeat("-", max(p.Remaining, 0)))

	for idx := 2; idx < cfg.MaxHeight; idx++ {
		y := s.Level(idx - 2)

		b.Reset()
		if idx%2 == 0 || idx == cfg.MaxHeight-1 {
			v := formatAxisValue(y)
			b.WriteString(v)
			b.WriteString(strings.Repeat(" ", axisW-len(v)))
		} else {
			b.WriteString(strings.Repeat(" ", axisW))
		}
		b.WriteByte('|')

		for _, c := range p.Columns {
			if g.plots(c.Value, y, s.Increment) {
				if cfg.Colour {
					b.WriteString(colour.Format(symbol, c.Colour, colour.Foreground))
				} else {
					b.WriteString(symbol)
				}
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Repeat(" ", labelWidth(c.Label)))
		}
		rows = append(rows, b.String())
	}

	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}
