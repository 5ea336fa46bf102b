package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/asciigraph/pkg/colour"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

func fruit() Dataset {
	return FromSlices(
		[]string{"apples", "oranges", "bananas", "grapes"},
		[]float64{5, 3, 8, 2},
	)
}

// cells renders one value row body: a symbol or blank per column followed by
// padding of the column's label width.
func cells(widths []int, hits ...bool) string {
	var b strings.Builder
	for i, w := range widths {
		if hits[i] {
			b.WriteByte('#')
		} else {
			b.WriteByte(' ')
		}
		b.WriteString(strings.Repeat(" ", w))
	}
	return b.String()
}

func TestRenderFruitBar(t *testing.T) {
	cfg := DefaultConfig().WithMaxHeight(11)
	out, err := RenderString(fruit(), cfg, Bar)
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}

	// Display order is grapes, bananas, oranges, apples.
	w := []int{6, 7, 7, 6}
	const T, F = true, false
	want := []string{
		"8   |" + cells(w, F, T, F, F),
		"    |" + cells(w, F, T, F, F),
		"6.5 |" + cells(w, F, T, F, F),
		"    |" + cells(w, F, T, F, F),
		"5   |" + cells(w, F, T, F, T),
		"    |" + cells(w, F, T, F, T),
		"3.5 |" + cells(w, F, T, F, T),
		"    |" + cells(w, F, T, T, T),
		"2   |" + cells(w, T, T, T, T),
		"    " + strings.Repeat("-", 49),
		"     grapes bananas oranges apples ",
	}

	got := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("lines = %d, want %d:\n%s", len(got), len(want), out)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPlanFruit(t *testing.T) {
	l, err := Plan(fruit(), DefaultConfig().WithMaxHeight(11), Bar)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(l.Pages) != 1 || l.Columns() != 4 {
		t.Errorf("pages = %d, columns = %d, want 1 and 4", len(l.Pages), l.Columns())
	}
	if l.Scale.Origin != 2 || l.Scale.Increment != 0.75 {
		t.Errorf("scale = %+v, want origin 2 increment 0.75", l.Scale)
	}
	if l.PlottedRows != 8 {
		t.Errorf("PlottedRows = %d, want 8", l.PlottedRows)
	}
	if l.AxisWidth != 4 {
		t.Errorf("AxisWidth = %d, want 4", l.AxisWidth)
	}
}

func TestRenderValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		cfg  Config
		g    GraphType
		code errors.Code
	}{
		{"empty beats everything", Dataset{}, DefaultConfig().WithMaxWidth(1).WithMaxHeight(1), ScatterInterpolated, errors.ErrCodeNoData},
		{"width before height", fruit(), DefaultConfig().WithMaxWidth(39).WithMaxHeight(3), Bar, errors.ErrCodeWidthTooSmall},
		{"height", fruit(), DefaultConfig().WithMaxHeight(3), Bar, errors.ErrCodeHeightTooSmall},
		{"graph type before range", fruit(), DefaultConfig().WithYRange(Custom(10, 2)), ScatterInterpolated, errors.ErrCodeUnsupportedGraphType},
		{"inverted range", fruit(), DefaultConfig().WithYRange(Custom(10, 2)), Bar, errors.ErrCodeInvertedCustomRange},
		{"column too wide", FromSlices([]string{strings.Repeat("w", 60)}, []int{1}), DefaultConfig().WithMaxWidth(40), Bar, errors.ErrCodeColumnTooWide},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, tt.ds.WithTitle("title"), tt.cfg, tt.g)
			if !errors.Is(err, tt.code) {
				t.Errorf("Render() error = %v, want code %s", err, tt.code)
			}
			if buf.Len() != 0 {
				t.Errorf("Render() wrote %d bytes on failure", buf.Len())
			}
		})
	}
}

func TestRenderWidthBoundary(t *testing.T) {
	ds := fruit()

	if _, err := RenderString(ds, DefaultConfig().WithMaxWidth(39), Bar); !errors.Is(err, errors.ErrCodeWidthTooSmall) {
		t.Errorf("width 39: error = %v, want WIDTH_TOO_SMALL", err)
	}
	if _, err := RenderString(ds, DefaultConfig().WithMaxWidth(40), Bar); err != nil {
		t.Errorf("width 40: %v", err)
	}
}

func TestRenderHeightBoundary(t *testing.T) {
	if _, err := RenderString(fruit(), DefaultConfig().WithMaxHeight(3), Bar); !errors.Is(err, errors.ErrCodeHeightTooSmall) {
		t.Errorf("height 3: error = %v, want HEIGHT_TOO_SMALL", err)
	}
	out, err := RenderString(fruit(), DefaultConfig().WithMaxHeight(4), Bar)
	if err != nil {
		t.Fatalf("height 4: %v", err)
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Errorf("height 4: %d lines, want 4", n)
	}
}

func TestRenderCustomRangeOutOfBounds(t *testing.T) {
	ds := FromSlices([]string{"low", "mid", "high"}, []float64{1, 5, 9})
	cfg := DefaultConfig().WithMaxHeight(11).WithYRange(Custom(2, 10))

	l, err := Plan(ds, cfg, Bar)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if l.Scale.Origin != 2 || l.Scale.Increment != 1 {
		t.Errorf("scale = %+v, want origin 2 increment 1", l.Scale)
	}

	out, err := RenderString(ds, cfg, Bar)
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}

	// Display order is high, mid, low; "low" sits below the range.
	w := []int{4, 3, 3}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, line := range lines[:9] {
		body := line[strings.IndexByte(line, '|')+1:]
		if got := cellHits(body, w)[2]; got {
			t.Errorf("line %d: value below range plotted: %q", i, line)
		}
	}
}

func TestRenderZeroToMaxOrigin(t *testing.T) {
	ds := FromSlices([]string{"a", "b", "c"}, []float64{-4, 2, 6})
	l, err := Plan(ds, DefaultConfig().WithYRange(ZeroToMax()).WithMaxHeight(9), Bar)
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if l.Scale.Origin != 0 {
		t.Errorf("Origin = %v, want 0", l.Scale.Origin)
	}
	if l.Scale.Increment != 1 {
		t.Errorf("Increment = %v, want 1", l.Scale.Increment)
	}
}

func TestRenderScatterBoundary(t *testing.T) {
	// Levels 0, 2, 4, 6, 8 with increment 2.
	ds := FromSlices([]string{"a", "b", "c"}, []float64{0, 4, 8})
	cfg := DefaultConfig().WithMaxHeight(7)

	out, err := RenderString(ds, cfg, Scatter)
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// Display order c, b, a; lines top-down are levels 8, 6, 4, 2, 0.
	w := []int{1, 1, 1}
	want := [][]bool{
		{true, false, false},
		{false, false, false},
		{false, true, false},
		{false, false, false},
		{false, false, true},
	}
	for i, hits := range want {
		body := lines[i][strings.IndexByte(lines[i], '|')+1:]
		got := cellHits(body, w)
		for c := range hits {
			if got[c] != hits[c] {
				t.Errorf("level line %d = %q, want hits %v", i, lines[i], hits)
				break
			}
		}
	}
}

func TestRenderMultiPage(t *testing.T) {
	names := []string{"apples", "oranges", "bananas", "grapes"}
	var labels []string
	for i := 0; i < 3; i++ {
		labels = append(labels, names...)
	}
	values := make([]float64, len(labels))
	for i := range values {
		values[i] = float64(i)
	}
	ds := FromSlices(labels, values).WithTitle("Lots of Fruit")
	cfg := DefaultConfig().WithMaxHeight(11).WithMaxWidth(50)

	out, err := RenderString(ds, cfg, Bar)
	if err != nil {
		t.Fatalf("RenderString() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if lines[0] != "\tLots of Fruit" {
		t.Errorf("title line = %q", lines[0])
	}
	if strings.Count(out, "Lots of Fruit") != 1 {
		t.Error("title written more than once")
	}
	if got, want := len(lines), 1+2*cfg.MaxHeight; got != want {
		t.Fatalf("lines = %d, want %d", got, want)
	}

	// Same calibration on both pages: the top level line matches.
	top1, top2 := lines[1], lines[1+cfg.MaxHeight]
	if top1[:strings.IndexByte(top1, '|')] != top2[:strings.IndexByte(top2, '|')] {
		t.Errorf("pages disagree on axis: %q vs %q", top1, top2)
	}

	label1 := lines[cfg.MaxHeight]
	label2 := lines[2*cfg.MaxHeight]
	if !strings.HasPrefix(strings.TrimSpace(label1), "grapes bananas oranges apples grapes bananas") {
		t.Errorf("first page labels = %q", label1)
	}
	if !strings.HasPrefix(strings.TrimSpace(label2), "oranges apples grapes bananas oranges apples") {
		t.Errorf("second page labels = %q", label2)
	}
}

func TestRenderColumnCount(t *testing.T) {
	labels := make([]string, 37)
	for i := range labels {
		labels[i] = strings.Repeat("z", 1+i%9)
	}
	ds := FromSlices(labels, make([]int, len(labels)))

	for _, width := range []int{40, 55, 80, 120} {
		l, err := Plan(ds, DefaultConfig().WithMaxWidth(width), Bar)
		if err != nil {
			t.Fatalf("width %d: %v", width, err)
		}
		if l.Columns() != len(labels) {
			t.Errorf("width %d: columns = %d, want %d", width, l.Columns(), len(labels))
		}
	}
}

func TestRenderScatterInterpolatedFails(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, fruit(), DefaultConfig(), ScatterInterpolated)
	if !errors.Is(err, errors.ErrCodeUnsupportedGraphType) {
		t.Errorf("Render() error = %v, want UNSUPPORTED_GRAPH_TYPE", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q", buf.String())
	}
}

func TestRenderColouredWidths(t *testing.T) {
	ds := fruit()
	for i := range ds.Points {
		ds.Points[i].Colour = colour.Palette[i]
	}
	cfg := DefaultConfig().WithMaxHeight(11)

	plain, err := RenderString(ds, cfg, Bar)
	if err != nil {
		t.Fatal(err)
	}
	coloured, err := RenderString(ds, cfg.WithColour(true), Bar)
	if err != nil {
		t.Fatal(err)
	}
	if stripANSI(coloured) != plain {
		t.Errorf("colour changed layout:\n%s\nvs\n%s", stripANSI(coloured), plain)
	}
}

func TestFromPairs(t *testing.T) {
	ds := FromPairs([]Pair[int, int32]{{Label: 2024, Value: 7}, {Label: 2025, Value: 9}})
	if ds.Len() != 2 || ds.Points[0].Label != "2024" || ds.Points[1].Value != 9 {
		t.Errorf("FromPairs() = %+v", ds)
	}
}

func TestFromSlicesTruncates(t *testing.T) {
	ds := FromSlices([]string{"a", "b", "c"}, []uint8{1, 2})
	if ds.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ds.Len())
	}
	if got := ds.Labels(); len(got) != 2 || got[1] != "b" {
		t.Errorf("Labels() = %v", got)
	}
}

func TestConfigSettersCopy(t *testing.T) {
	base := DefaultConfig()
	changed := base.WithMaxWidth(100).WithMaxHeight(20).WithPlotSymbol('*').WithYRange(ZeroToMax()).WithColour(true)

	if base != DefaultConfig() {
		t.Errorf("setters mutated the receiver: %+v", base)
	}
	if changed.MaxWidth != 100 || changed.MaxHeight != 20 || changed.PlotSymbol != '*' ||
		changed.YRange != ZeroToMax() || !changed.Colour {
		t.Errorf("changed = %+v", changed)
	}
}

func cellHits(body string, widths []int) []bool {
	hits := make([]bool, len(widths))
	pos := 0
	for i, w := range widths {
		if pos < len(body) {
			hits[i] = body[pos] != ' '
		}
		pos += 1 + w
	}
	return hits
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
