package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints render statistics on a single line.
func printStats(w io.Writer, points, lines int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d points", points),
		fmt.Sprintf("%d lines", lines),
	}

	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}
