package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sweepResult(t *testing.T) *domain.SweepResult {
	t.Helper()
	grid := domain.SweepGrid{
		MomExpenses:  []decimal.Decimal{decimal.NewFromInt(10000)},
		DadExpenses:  []decimal.Decimal{decimal.NewFromInt(500), decimal.NewFromInt(20000)},
		BabyExpenses: []decimal.Decimal{decimal.NewFromInt(1000)},
		TaxRates:     []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(0.3)},
	}
	result, err := calculation.NewDefaultCalculationEngine().Sweep(context.Background(), grid)
	require.NoError(t, err)
	return result
}

func TestSweepFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "xlsx"}, AvailableSweepFormatterNames())
	for _, name := range AvailableSweepFormatterNames() {
		assert.Equal(t, name, GetSweepFormatterByName(name).Name())
	}
	assert.Nil(t, GetSweepFormatterByName("html"))
}

func TestSweepConsoleFormatter(t *testing.T) {
	result := sweepResult(t)

	out, err := SweepConsoleFormatter{}.FormatSweep(result)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "MEDICAL PLAN SWEEP")
	assert.Contains(t, text, "Grid: 1 mom x 2 dad x 1 baby x 2 tax rates = 4 scenarios")
	assert.Contains(t, text, result.Winners[0].Option)
	assert.NotContains(t, text, "... ")

	out, err = SweepConsoleFormatter{Points: 3}.FormatSweep(result)
	require.NoError(t, err)
	assert.Contains(t, string(out), "... 1 more")
	assert.Contains(t, string(out), "$1240.00", "the reference scenario is the first grid point")
}

func TestSweepCSVFormatter(t *testing.T) {
	result := sweepResult(t)
	out, err := SweepCSVFormatter{}.FormatSweep(result)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, sweepHeader, records[0])

	assert.Equal(t, []string{"10000", "500", "1000", "0"}, records[1][:4])
	assert.Equal(t, referenceBest, records[1][4])
	assert.Equal(t, "1240.00", records[1][8])
	for i, p := range result.Points {
		assert.Equal(t, p.Best.Name(), records[i+1][4])
	}
}

func TestSweepXLSXFormatter(t *testing.T) {
	result := sweepResult(t)
	out, err := SweepXLSXFormatter{}.FormatSweep(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{pointsSheet, winnersSheet}, f.GetSheetList())

	rows, err := f.GetRows(pointsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(result.Points)+1)
	assert.Equal(t, sweepHeader, rows[0])
	assert.Equal(t, referenceBest, rows[1][4])
	assert.Equal(t, "1240", rows[1][8])

	winners, err := f.GetRows(winnersSheet)
	require.NoError(t, err)
	require.Len(t, winners, len(result.Winners)+1)
	assert.Equal(t, []string{"Option", "Points"}, winners[0])
	assert.Equal(t, result.Winners[0].Option, winners[1][0])
}
