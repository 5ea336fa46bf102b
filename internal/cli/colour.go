package cli

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/asciigraph/pkg/errors"
)

// Values of --colour.
const (
	colourAuto   = "auto"
	colourAlways = "always"
	colourNever  = "never"
)

func parseColourMode(s string) (string, error) {
	switch m := strings.ToLower(strings.TrimSpace(s)); m {
	case "", colourAuto:
		return colourAuto, nil
	case colourAlways, colourNever:
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid colour mode %q (must be auto, always or never)", s)
}

// useColour resolves a colour mode for output written to w. In auto mode
// colour is used only when w is a terminal and NO_COLOR is unset.
func useColour(mode string, w io.Writer) (bool, error) {
	m, err := parseColourMode(mode)
	if err != nil {
		return false, err
	}
	switch m {
	case colourAlways:
		return true, nil
	case colourNever:
		return false, nil
	}
	if os.Getenv("NO_COLOR") != "" {
		return false, nil
	}
	return isTerminal(w), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
