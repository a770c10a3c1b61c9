package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// CSVFormatter writes one row per option, cheapest first
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Rank", "Option", "MomPlan", "DadPlan", "Dependent", "DadCost", "MomCost", "Surcharge", "Total", "DiffFromBest"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i, e := range report.Ranked {
		row := []string{
			strconv.Itoa(i + 1),
			e.Name(),
			planCell(e.Option.MomPlan),
			planCell(e.Option.DadPlan),
			e.Option.Dependent.String(),
			e.DadCost.StringFixed(2),
			e.MomCost.StringFixed(2),
			e.Surcharge.StringFixed(2),
			e.Total.StringFixed(2),
			e.Total.Sub(report.Best.Total).StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func planCell(pi *domain.PlanInstance) string {
	if pi == nil {
		return ""
	}
	return pi.Label()
}
