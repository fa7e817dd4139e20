package output

import (
	"fmt"
	"strings"
)

// HoursBar renders a 0-24h value as a bar, colored by whether it exceeds
// the warn and alert thresholds.
// Example: "██████░░░░░░ 9.5h"
func HoursBar(hours, warn, alert float64, width int) string {
	if width <= 0 {
		width = 12
	}
	filled := int((hours / 24.0) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleSuccess
	switch {
	case hours > alert:
		style = StyleError
	case hours > warn:
		style = StyleWarning
	}

	return fmt.Sprintf("%s %s", style.Render(bar), StyleMuted.Render(fmt.Sprintf("%.1fh", hours)))
}

// EnergyMeter renders an energy rating on the 1-10 scale.
func EnergyMeter(rating int) string {
	text := fmt.Sprintf("%d/10", rating)
	switch {
	case rating < 3:
		return StyleError.Render(text)
	case rating <= 5:
		return StyleWarning.Render(text)
	default:
		return StyleSuccess.Render(text)
	}
}

// TrendArrow returns a styled trend indicator for a delta value.
// The higherIsBetter parameter decides whether a rise is shown as good.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := isPositive == higherIsBetter

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section prints a styled section header with a horizontal rule that spans
// the configured output width.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", width-1))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
