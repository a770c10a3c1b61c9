package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Option",
		"Type",
		"Dad Cost",
		"Mom Cost",
		"Surcharge",
		"Total",
		"Diff from Best",
		"% Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, optionType string) []string {
	return []string{
		strconv.Itoa(result.Rank),
		result.OptionName,
		optionType,
		result.Evaluation.DadCost.StringFixed(2),
		result.Evaluation.MomCost.StringFixed(2),
		result.Evaluation.Surcharge.StringFixed(2),
		result.Total.StringFixed(2),
		result.DiffFromBase.StringFixed(2),
		result.PctFromBase.StringFixed(2),
	}
}
