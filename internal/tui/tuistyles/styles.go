// Package tuistyles holds the shared lipgloss palette and styles of the TUI.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#2C5282")
	ColorSecondary = lipgloss.Color("#4A5568")
	ColorAccent    = lipgloss.Color("#D69E2E")
	ColorSuccess   = lipgloss.Color("#38A169")
	ColorDanger    = lipgloss.Color("#E53E3E")
	ColorInfo      = lipgloss.Color("#3182CE")

	ColorForeground = lipgloss.Color("#E2E8F0")
	ColorMuted      = lipgloss.Color("#718096")
	ColorBorder     = lipgloss.Color("#4A5568")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Bold(true)
	ParameterValueStyle = lipgloss.NewStyle()

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorInfo)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	TableCellStyle      = lipgloss.NewStyle()
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
)

// MetricTrendStyle colors a change; for costs a decrease is good
func MetricTrendStyle(isGood bool) lipgloss.Style {
	if isGood {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change in cost
func TrendIndicator(decreased bool) string {
	if decreased {
		return "▼"
	}
	return "▲"
}

// FormatCurrency renders whole dollars, e.g. "$1,240" or "-$3,660"
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	digits := amount.Round(0).String()
	for i := len(digits) - 3; i > 0; i -= 3 {
		digits = digits[:i] + "," + digits[i:]
	}
	return sign + "$" + digits
}
