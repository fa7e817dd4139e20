// Package output provides styled terminal rendering helpers for daypattern.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for healthy values.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for high-priority suggestions.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for medium-priority suggestions.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")
)

// Styles provides reusable lipgloss styles. They are rebuilt by SetNoColor.
var (
	StyleHeader  lipgloss.Style
	StyleSuccess lipgloss.Style
	StyleError   lipgloss.Style
	StyleWarning lipgloss.Style
	StyleMuted   lipgloss.Style
	StyleBold    lipgloss.Style
	StyleLabel   lipgloss.Style
	StyleValue   lipgloss.Style
)

// noColor tracks whether color output is disabled.
var noColor bool

// DefaultWidth is the output width used until SetWidth is called.
const DefaultWidth = 80

// minWidth keeps rules and labels legible on tiny widths.
const minWidth = 20

var width = DefaultWidth

// SetWidth sets the output width in columns, clamped to a minimum of 20.
func SetWidth(w int) {
	width = max(w, minWidth)
}

// Width returns the current output width.
func Width() int {
	return width
}

func init() {
	buildStyles(false)
}

func buildStyles(plain bool) {
	color := func(c lipgloss.Color) lipgloss.Style {
		if plain {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}

	StyleHeader = color(ColorPrimary).Bold(!plain)
	StyleSuccess = color(ColorSuccess)
	StyleError = color(ColorError).Bold(!plain)
	StyleWarning = color(ColorWarning)
	StyleMuted = color(ColorMuted)
	StyleBold = lipgloss.NewStyle().Bold(!plain)
	StyleLabel = lipgloss.NewStyle().Width(20)
	StyleValue = lipgloss.NewStyle().Bold(!plain).Width(10)
}

// SetNoColor disables or enables color output globally.
func SetNoColor(disabled bool) {
	noColor = disabled
	buildStyles(disabled)
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// ConfigureColor applies the color preference from flags and config. Color
// is also turned off when stdout is not a terminal.
func ConfigureColor(flagNoColor, cfgColor bool) {
	SetNoColor(flagNoColor || !cfgColor || !isTerminal(os.Stdout))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
