// Package colour maps a small fixed palette onto ANSI terminal escape codes.
//
// The palette matches the eight basic SGR colours. Each colour has a
// foreground code (30–37) and a background code (40–47); FallbackDefault
// resets the layer (39 / 49). [Format] wraps text in a colour code followed by
// the reset code of the same layer, so the visible width of the text is
// unchanged.
//
// [None] is the zero value and means "no colour": [Format] returns the text
// untouched.
package colour

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

// Colour is one entry of the terminal palette.
type Colour int

// Palette entries. None is the zero value.
const (
	None Colour = iota
	Red
	Orange
	Green
	Blue
	Cyan
	Magenta
	LightGrey
	Black
	FallbackDefault
)

// Layer selects whether a colour applies to the text or the cell behind it.
type Layer int

const (
	Foreground Layer = iota
	Background
)

// Palette lists the selectable colours in display order.
var Palette = []Colour{Red, Orange, Green, Blue, Cyan, Magenta, LightGrey, Black}

var names = map[Colour]string{
	None:            "none",
	Red:             "red",
	Orange:          "orange",
	Green:           "green",
	Blue:            "blue",
	Cyan:            "cyan",
	Magenta:         "magenta",
	LightGrey:       "lightgrey",
	Black:           "black",
	FallbackDefault: "default",
}

// SGR offsets from the layer base (30 foreground, 40 background).
var offsets = map[Colour]int{
	Black:           0,
	Red:             1,
	Green:           2,
	Orange:          3,
	Blue:            4,
	Magenta:         5,
	Cyan:            6,
	LightGrey:       7,
	FallbackDefault: 9,
}

// Reference RGB values (xterm defaults) used to snap hex colours.
var reference = map[Colour]string{
	Black:     "#000000",
	Red:       "#cd0000",
	Green:     "#00cd00",
	Orange:    "#cdcd00",
	Blue:      "#0000ee",
	Magenta:   "#cd00cd",
	Cyan:      "#00cdcd",
	LightGrey: "#e5e5e5",
}

// String returns the lower-case name of the colour.
func (c Colour) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("colour(%d)", int(c))
}

// Code returns the ANSI escape sequence selecting c on layer l.
// None has no code and returns the empty string.
func (c Colour) Code(l Layer) string {
	off, ok := offsets[c]
	if !ok {
		return ""
	}
	base := 30
	if l == Background {
		base = 40
	}
	return fmt.Sprintf("\x1b[%dm", base+off)
}

// Format wraps text in the code for c and the default-colour code for the
// same layer. With None the text is returned unchanged.
func Format(text string, c Colour, l Layer) string {
	code := c.Code(l)
	if code == "" {
		return text
	}
	return code + text + FallbackDefault.Code(l)
}

// MarshalText implements encoding.TextMarshaler.
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using [Parse].
func (c *Colour) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse resolves a colour name or a "#rrggbb" hex value.
//
// Names are case-insensitive; "grey"/"gray"/"lightgray" map to LightGrey and
// "yellow" to Orange (the terminal renders SGR 33 as either). Hex values are
// snapped to the perceptually nearest palette colour. An empty string yields
// None.
func Parse(s string) (Colour, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return None, nil
	case "red":
		return Red, nil
	case "orange", "yellow":
		return Orange, nil
	case "green":
		return Green, nil
	case "blue":
		return Blue, nil
	case "cyan":
		return Cyan, nil
	case "magenta", "purple":
		return Magenta, nil
	case "lightgrey", "lightgray", "grey", "gray", "white":
		return LightGrey, nil
	case "black":
		return Black, nil
	case "default":
		return FallbackDefault, nil
	}
	if strings.HasPrefix(s, "#") {
		return nearest(s)
	}
	return None, errors.New(errors.ErrCodeInvalidInput, "unknown colour %q", s)
}

func nearest(hex string) (Colour, error) {
	want, err := colorful.Hex(hex)
	if err != nil {
		return None, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex colour %q", hex)
	}
	best, bestDist := None, 0.0
	for _, c := range Palette {
		ref, _ := colorful.Hex(reference[c])
		d := want.DistanceLab(ref)
		if best == None || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, nil
}
