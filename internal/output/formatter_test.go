package output

import (
	"encoding/csv"
	"html/template"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceBest = "sph:self_only|premera:self_family|dad"

func referenceReport(t *testing.T) *domain.Report {
	t.Helper()
	report, err := calculation.NewDefaultCalculationEngine().Report(domain.DefaultScenario())
	require.NoError(t, err)
	return report
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1240.00", FormatCurrency(decimal.NewFromInt(1240)))
	assert.Equal(t, "-$3660.00", FormatCurrency(decimal.NewFromInt(-3660)))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "$12.35", FormatCurrency(decimal.RequireFromString("12.345")))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "24.00%", FormatPercentage(decimal.NewFromFloat(0.24)))
	assert.Equal(t, "0.00%", FormatPercentage(decimal.Zero))
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "console-lite", "csv", "html", "json"}, AvailableFormatterNames())
	assert.Equal(t, []string{"lite", "table", "verbose"}, AvailableFormatAliases())

	for _, name := range AvailableFormatterNames() {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}
	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "console-lite", GetFormatterByName("lite").Name())
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "name-only", F: func(r *domain.Report) ([]byte, error) {
		return []byte(r.Best.Name()), nil
	}}
	assert.Equal(t, "name-only", f.Name())

	out, err := f.Format(referenceReport(t))
	require.NoError(t, err)
	assert.Equal(t, referenceBest, string(out))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(referenceReport(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "FAMILY MEDICAL PLAN ANALYSIS")
	assert.Contains(t, text, "KEY ASSUMPTIONS:")
	assert.Contains(t, text, "Mom's Expenses:          $10000.00")
	assert.Contains(t, text, "Sole Coverage Surcharge (dad): $1800.00")
	assert.Contains(t, text, "BEST OPTION")
	assert.Contains(t, text, referenceBest)
	assert.Contains(t, text, "TOTAL:            $1240.00")
	assert.Contains(t, text, "ALL OPTIONS (52, cheapest first)")
	assert.Contains(t, text, "Mom's Plan:   sph self_only")
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleLiteFormatter{Top: 3}.Format(referenceReport(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "MEDICAL PLAN SUMMARY")
	assert.Contains(t, text, "Scenario: mom=10000 dad=500 baby=1000 tax=0")
	assert.Contains(t, text, "Best: "+referenceBest+" at $1240.00")
	assert.NotContains(t, text, "KEY ASSUMPTIONS")

	// header, rule, three rows
	lines := strings.Split(strings.TrimSpace(text), "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "3 "), lines[len(lines)-1])
}

func TestCSVFormatter(t *testing.T) {
	report := referenceReport(t)
	out, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 53)

	assert.Equal(t, "Rank", records[0][0])
	assert.Equal(t, "DiffFromBest", records[0][9])

	first := records[1]
	assert.Equal(t, "1", first[0])
	assert.Equal(t, referenceBest, first[1])
	assert.Equal(t, "sph:self_only", first[2])
	assert.Equal(t, "premera:self_family", first[3])
	assert.Equal(t, "dad", first[4])
	assert.Equal(t, "1240.00", first[8])
	assert.Equal(t, "0.00", first[9])

	for _, rec := range records[1:] {
		if strings.HasPrefix(rec[1], "none|") {
			assert.Empty(t, rec[2], "absent mom plan renders as empty cell")
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	report := referenceReport(t)
	for _, pretty := range []bool{true, false} {
		out, err := JSONFormatter{Pretty: pretty}.Format(report)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		best := decoded["best"].(map[string]any)
		assert.Equal(t, "1240", best["total"])
		assert.Len(t, decoded["ranked"], 52)
		assert.Equal(t, pretty, strings.Contains(string(out), "\n  "))
	}
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]decimal.Decimal{"total": decimal.NewFromInt(1240)}

	compact, err := MarshalJSON(v, false)
	require.NoError(t, err)
	assert.Equal(t, `{"total":"1240"}`, string(compact))

	pretty, err := MarshalJSON(v, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"total\": \"1240\"\n}", string(pretty))
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(referenceReport(t))
	require.NoError(t, err)
	html := string(out)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Family Medical Plan Analysis</title>")
	assert.Contains(t, html, referenceBest)
	assert.Contains(t, html, "$1240.00")
	assert.Contains(t, html, `class="best"`)
	for _, a := range DefaultAssumptions {
		assert.Contains(t, html, template.HTMLEscapeString(a))
	}
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	name, err := WriteFormatted(CSVFormatter{}, referenceReport(t), "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "medplan_report_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), referenceBest)
}

func TestDescribePlan(t *testing.T) {
	assert.Equal(t, "none (covered as spouse)", describePlan(nil))

	premera := domain.DefaultPlanCatalog()[0]
	require.Equal(t, "premera", premera.ID)
	assert.Equal(t, "premera self_family", describePlan(domain.NewPlanInstance(premera, true, true)))
	assert.Equal(t, "premera self_children (billed as self_spouse)", describePlan(domain.NewPlanInstance(premera, false, true)))
}
