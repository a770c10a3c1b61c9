package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SweepFormatter renders a sweep result
type SweepFormatter interface {
	Name() string
	FormatSweep(result *domain.SweepResult) ([]byte, error)
}

var sweepFormatters = map[string]SweepFormatter{}

func init() {
	for _, f := range []SweepFormatter{SweepConsoleFormatter{}, SweepCSVFormatter{}, SweepXLSXFormatter{}} {
		sweepFormatters[f.Name()] = f
	}
}

// GetSweepFormatterByName returns the sweep formatter registered under name, or nil
func GetSweepFormatterByName(name string) SweepFormatter {
	return sweepFormatters[name]
}

// AvailableSweepFormatterNames lists registered sweep formatter names, sorted
func AvailableSweepFormatterNames() []string {
	names := make([]string, 0, len(sweepFormatters))
	for name := range sweepFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var sweepHeader = []string{"MomExpenses", "DadExpenses", "BabyExpenses", "TaxRate", "BestOption", "DadCost", "MomCost", "Surcharge", "Total"}

// SweepConsoleFormatter prints the winner tally and the grid points
type SweepConsoleFormatter struct {
	// Points limits how many grid points are listed; zero lists none
	Points int
}

func (s SweepConsoleFormatter) Name() string { return "console" }

func (s SweepConsoleFormatter) FormatSweep(result *domain.SweepResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MEDICAL PLAN SWEEP")
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	fmt.Fprintf(&buf, "Grid: %d mom x %d dad x %d baby x %d tax rates = %d scenarios\n\n",
		len(result.Grid.MomExpenses), len(result.Grid.DadExpenses),
		len(result.Grid.BabyExpenses), len(result.Grid.TaxRates), len(result.Points))

	fmt.Fprintf(&buf, "BEST OPTIONS (%d distinct)\n", len(result.Winners))
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	for _, w := range result.Winners {
		share := 0.0
		if len(result.Points) > 0 {
			share = 100 * float64(w.Points) / float64(len(result.Points))
		}
		fmt.Fprintf(&buf, "%7d  %5.1f%%  %s\n", w.Points, share, w.Option)
	}

	if s.Points > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%10s %10s %10s %6s  %-46s %12s\n", "Mom", "Dad", "Baby", "Tax", "Best", "Total")
		fmt.Fprintln(&buf, strings.Repeat("-", 100))
		for i, p := range result.Points {
			if i >= s.Points {
				fmt.Fprintf(&buf, "... %d more\n", len(result.Points)-i)
				break
			}
			fmt.Fprintf(&buf, "%10s %10s %10s %6s  %-46s %12s\n",
				p.Scenario.MomExpenses.StringFixed(0), p.Scenario.DadExpenses.StringFixed(0),
				p.Scenario.BabyExpenses.StringFixed(0), p.Scenario.TaxRate.StringFixed(2),
				p.Best.Name(), FormatCurrency(p.Best.Total))
		}
	}
	return buf.Bytes(), nil
}

func sweepRow(p domain.SweepPoint) []string {
	return []string{
		p.Scenario.MomExpenses.String(),
		p.Scenario.DadExpenses.String(),
		p.Scenario.BabyExpenses.String(),
		p.Scenario.TaxRate.String(),
		p.Best.Name(),
		p.Best.DadCost.StringFixed(2),
		p.Best.MomCost.StringFixed(2),
		p.Best.Surcharge.StringFixed(2),
		p.Best.Total.StringFixed(2),
	}
}

// SweepCSVFormatter writes one row per grid point in grid order
type SweepCSVFormatter struct{}

func (s SweepCSVFormatter) Name() string { return "csv" }

func (s SweepCSVFormatter) FormatSweep(result *domain.SweepResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(sweepHeader); err != nil {
		return nil, err
	}
	for _, p := range result.Points {
		if err := w.Write(sweepRow(p)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SweepXLSXFormatter writes a workbook with a Points sheet and a Winners sheet
type SweepXLSXFormatter struct{}

func (s SweepXLSXFormatter) Name() string { return "xlsx" }

const (
	pointsSheet  = "Points"
	winnersSheet = "Winners"
)

func (s SweepXLSXFormatter) FormatSweep(result *domain.SweepResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), pointsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(sweepHeader))
	for i, h := range sweepHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(pointsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range result.Points {
		row := []interface{}{
			p.Scenario.MomExpenses.InexactFloat64(),
			p.Scenario.DadExpenses.InexactFloat64(),
			p.Scenario.BabyExpenses.InexactFloat64(),
			p.Scenario.TaxRate.InexactFloat64(),
			p.Best.Name(),
			p.Best.DadCost.InexactFloat64(),
			p.Best.MomCost.InexactFloat64(),
			p.Best.Surcharge.InexactFloat64(),
			p.Best.Total.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(pointsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write point %d: %w", i, err)
		}
	}

	if _, err := f.NewSheet(winnersSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	winnersHeader := []interface{}{"Option", "Points"}
	if err := f.SetSheetRow(winnersSheet, "A1", &winnersHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, w := range result.Winners {
		row := []interface{}{w.Option, w.Points}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(winnersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write winner %d: %w", i, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
