package chart

const (
	// MinMaxWidth is the smallest accepted Config.MaxWidth.
	MinMaxWidth = 40

	// ReservedRows counts the rows of MaxHeight that never hold a value level.
	// MaxHeight must exceed it to leave at least one plotted increment.
	ReservedRows = 3

	// DefaultMaxWidth is the default terminal width budget.
	DefaultMaxWidth = 80

	// DefaultMaxHeight is the default number of output rows per page.
	DefaultMaxHeight = 5

	// DefaultPlotSymbol is drawn where a column satisfies a level.
	DefaultPlotSymbol = '#'
)

// Config controls the size and look of a chart.
// It is a value type; the With* methods return modified copies.
type Config struct {
	MaxWidth   int
	MaxHeight  int
	YRange     ScalePolicy
	PlotSymbol rune

	// Colour wraps plot symbols of coloured points in ANSI codes.
	Colour bool
}

// DefaultConfig returns an 80 column, 5 row, min-to-max bar configuration
// drawing '#' without colour.
func DefaultConfig() Config {
	return Config{
		MaxWidth:   DefaultMaxWidth,
		MaxHeight:  DefaultMaxHeight,
		YRange:     MinToMax(),
		PlotSymbol: DefaultPlotSymbol,
	}
}

// WithMaxWidth returns a copy of c with the given width budget.
func (c Config) WithMaxWidth(w int) Config {
	c.MaxWidth = w
	return c
}

// WithMaxHeight returns a copy of c with the given height.
func (c Config) WithMaxHeight(h int) Config {
	c.MaxHeight = h
	return c
}

// WithYRange returns a copy of c with the given scaling policy.
func (c Config) WithYRange(p ScalePolicy) Config {
	c.YRange = p
	return c
}

// WithPlotSymbol returns a copy of c drawing s.
func (c Config) WithPlotSymbol(s rune) Config {
	c.PlotSymbol = s
	return c
}

// WithColour returns a copy of c with colouring switched on or off.
func (c Config) WithColour(on bool) Config {
	c.Colour = on
	return c
}

// PlottedRows returns the number of increments between the lowest and the
// highest value level.
func (c Config) PlottedRows() int {
	return c.MaxHeight - ReservedRows
}

func (c Config) symbol() rune {
	if c.PlotSymbol == 0 {
		return DefaultPlotSymbol
	}
	return c.PlotSymbol
}
