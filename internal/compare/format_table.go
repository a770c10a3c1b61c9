package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing options
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("MEDICAL PLAN OPTION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 88) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario: %s\n", compSet.Scenario))
	sb.WriteString(fmt.Sprintf("Best Option: %s\n", compSet.BaseOptionName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 46
	numWidth := 10

	sb.WriteString(fmt.Sprintf("%4s  %-*s %*s %*s %*s\n",
		"#",
		nameWidth, "Option",
		numWidth, "Total",
		numWidth, "vs Best",
		numWidth, "Change"))
	sb.WriteString(strings.Repeat("-", 88) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 88) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 88) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single option row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	diff, pct := "base", ""
	if !isBase {
		diff = tf.deltaSymbol(result.DiffFromBase) + tf.money(result.DiffFromBase.Abs())
		pct = result.PctFromBase.StringFixed(1) + "%"
	}

	return fmt.Sprintf("%4d  %-*s %*s %*s %*s\n",
		result.Rank,
		nameWidth, tf.truncate(result.OptionName, nameWidth),
		numWidth, tf.money(result.Total),
		numWidth, diff,
		numWidth, pct)
}

// money formats a signed amount with a currency symbol
func (tf *TableFormatter) money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + tf.formatDecimal(d.Abs())
	}
	return "$" + tf.formatDecimal(d)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(10000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns + for a more expensive option
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary of the comparison
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Best: %s %s | ", compSet.BaseOptionName, tf.money(compSet.BaseResult.Total)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.DiffFromBase.IsPositive() {
			change = "+" + tf.money(alt.DiffFromBase)
		} else if alt.DiffFromBase.IsNegative() {
			change = tf.money(alt.DiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.OptionName, change))
	}

	return sb.String()
}
