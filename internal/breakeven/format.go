package breakeven

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/output"
	"github.com/shopspring/decimal"
)

// FormatValue renders a dimension value: whole dollars for expenses, a percentage for the tax rate
func FormatValue(d Dimension, v decimal.Decimal) string {
	if d.IsRate() {
		return output.FormatPercentage(v)
	}
	return "$" + v.StringFixed(0)
}

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one dimension
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder
	d := result.Request.Dimension

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Dimension:   %s\n", d.Label()))
	sb.WriteString(fmt.Sprintf("Range:       %s to %s\n",
		FormatValue(d, result.Request.Range.Min), FormatValue(d, result.Request.Range.Max)))
	sb.WriteString(fmt.Sprintf("Scenario:    %s\n", result.Request.Scenario))
	sb.WriteString(fmt.Sprintf("Evaluations: %d\n", result.Evaluations))
	sb.WriteString("\n")

	sb.WriteString("CROSSOVERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if len(result.Crossovers) == 0 {
		sb.WriteString("None: the best option never changes over this range\n")
	}
	for _, c := range result.Crossovers {
		sb.WriteString(fmt.Sprintf("At %-10s %s -> %s\n",
			FormatValue(d, c.At), tf.truncate(c.Before, 32), tf.truncate(c.After, 32)))
	}
	sb.WriteString("\n")

	sb.WriteString("BEST OPTION BY RANGE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, seg := range result.Segments {
		sb.WriteString(fmt.Sprintf("%10s - %-10s %s\n",
			FormatValue(d, seg.From), FormatValue(d, seg.To), seg.Option))
	}

	return sb.String()
}

// FormatMultiDimensional formats the results of every dimension
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario:     %s\n", result.Scenario))
	sb.WriteString(fmt.Sprintf("Current Best: %s (%s)\n\n",
		result.Baseline.Name(), output.FormatCurrency(result.Baseline.Total)))

	sb.WriteString(fmt.Sprintf("%-16s %10s %s\n", "Dimension", "Switches", "Nearest"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		d := res.Request.Dimension
		nearest := "-"
		if len(res.Crossovers) > 0 {
			nearest = FormatValue(d, res.Crossovers[0].At)
		}
		sb.WriteString(fmt.Sprintf("%-16s %10d %s\n", d.Label(), len(res.Crossovers), nearest))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	data, err := output.MarshalJSON(v, jf.Pretty)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
