package chart

import (
	"fmt"

	"github.com/matzehuels/asciigraph/pkg/colour"
)

// DataPoint is one labeled column of a chart.
type DataPoint struct {
	Label  string        `json:"label"`
	Value  float64       `json:"value"`
	Colour colour.Colour `json:"colour,omitempty"`
}

// Dataset is an ordered sequence of points plus an optional title.
// Point order determines column order.
type Dataset struct {
	Title  string      `json:"title,omitempty"`
	Points []DataPoint `json:"points"`
}

// WithTitle returns a copy of d with the given title.
func (d Dataset) WithTitle(title string) Dataset {
	d.Title = title
	return d
}

// Len returns the number of points.
func (d Dataset) Len() int { return len(d.Points) }

// Values returns the point values in order.
func (d Dataset) Values() []float64 {
	vals := make([]float64, len(d.Points))
	for i, p := range d.Points {
		vals[i] = p.Value
	}
	return vals
}

// Labels returns the point labels in order.
func (d Dataset) Labels() []string {
	labels := make([]string, len(d.Points))
	for i, p := range d.Points {
		labels[i] = p.Label
	}
	return labels
}

// Number is the set of value types accepted by the conversion helpers.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Pair is a single label/value tuple.
type Pair[L any, V Number] struct {
	Label L
	Value V
}

// FromSlices zips parallel label and value slices into a Dataset.
// Extra elements in the longer slice are ignored. Labels are rendered with
// fmt.Sprint, so any fmt.Stringer works.
func FromSlices[L any, V Number](labels []L, values []V) Dataset {
	n := min(len(labels), len(values))
	points := make([]DataPoint, n)
	for i := 0; i < n; i++ {
		points[i] = DataPoint{Label: fmt.Sprint(labels[i]), Value: float64(values[i])}
	}
	return Dataset{Points: points}
}

// FromPairs converts a list of label/value pairs into a Dataset.
func FromPairs[L any, V Number](pairs []Pair[L, V]) Dataset {
	points := make([]DataPoint, len(pairs))
	for i, p := range pairs {
		points[i] = DataPoint{Label: fmt.Sprint(p.Label), Value: float64(p.Value)}
	}
	return Dataset{Points: points}
}
