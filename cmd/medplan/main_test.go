package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rgehrsitz/medplan/internal/logging"
)

// execute runs a fresh command tree with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(logging.InitializeDefault)

	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// smallConfig writes a config whose sweep grid has four points
func smallConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medplan.yaml")
	content := `
sweep:
  mom_expenses: [10000]
  dad_expenses: [500, 20000]
  baby_expenses: [1000]
  tax_rates: [0, 0.3]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}
	if cmd.Use != "medplan" {
		t.Errorf("Expected root command use to be 'medplan', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "medplan")
	assert.Contains(t, out, "--config")
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{"evaluate", "rank", "sweep", "breakeven", "templates", "plans", "validate", "init", "version"}

	registered := map[string]bool{}
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expectedCommands {
		assert.True(t, registered[name], "Expected command %s to be registered", name)
	}
}

func TestInvalidCommandAndFlag(t *testing.T) {
	_, err := execute(t, "nonexistent")
	assert.Error(t, err)

	_, err = execute(t, "evaluate", "--no-such-flag")
	assert.Error(t, err)
}

func TestEvaluate_Default(t *testing.T) {
	out, err := execute(t, "evaluate")
	require.NoError(t, err)
	assert.Contains(t, out, "FAMILY MEDICAL PLAN ANALYSIS")
	assert.Contains(t, out, "sph:self_only|premera:self_family|dad")
	assert.Contains(t, out, "$1240.00")
}

func TestEvaluate_FlagsOverrideScenario(t *testing.T) {
	out, err := execute(t, "evaluate", "--mom", "0", "--dad", "0", "--baby", "0", "-f", "lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario: mom=0 dad=0 baby=0 tax=0")
	assert.Contains(t, out, "Best: cigna:self_children|premera:self_family|both at -$3660.00")
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := execute(t, "evaluate", "--tax", "abc")
	assert.ErrorContains(t, err, "invalid --tax value")

	_, err = execute(t, "evaluate", "--dad=-100")
	assert.ErrorContains(t, err, "invalid scenario")

	_, err = execute(t, "evaluate", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "evaluate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestEvaluate_JSON(t *testing.T) {
	out, err := execute(t, "evaluate", "-f", "json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report["ranked"], 52)
}

func TestEvaluate_Out(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "evaluate", "-f", "html", "--out")
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to medplan_report_")

	matches, err := filepath.Glob("medplan_report_*.html")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRank(t *testing.T) {
	out, err := execute(t, "rank", "--top", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "MEDICAL PLAN OPTION COMPARISON")
	assert.Contains(t, out, "RECOMMENDATIONS")

	out, err = execute(t, "rank", "--top", "2", "--include", "sph:self_family|none|mom", "-f", "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5, "header, best, two runners-up, one included")
	assert.Equal(t, "sph:self_family|none|mom", records[4][1])

	_, err = execute(t, "rank", "-f", "yaml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "rank", "--include", "nobody|none|mom")
	assert.ErrorContains(t, err, "not found")
}

func TestSweep(t *testing.T) {
	cfg := smallConfig(t)

	out, err := execute(t, "sweep", "--config", cfg, "--points", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "= 4 scenarios")

	out, err = execute(t, "sweep", "--config", cfg, "-f", "csv")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 5)

	_, err = execute(t, "sweep", "--config", cfg, "-f", "xlsx")
	assert.ErrorContains(t, err, "requires --out")

	xlsx := filepath.Join(t.TempDir(), "sweep.xlsx")
	out, err = execute(t, "sweep", "--config", cfg, "-f", "xlsx", "-o", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "Sweep of 4 scenarios written to")

	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Points")
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestBreakeven(t *testing.T) {
	out, err := execute(t, "breakeven", "--dimension", "tax", "--grid", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Dimension:   Tax rate")
	assert.Contains(t, out, "Range:       0.00% to 50.00%")

	out, err = execute(t, "breakeven", "--dimension", "dad", "--min", "0", "--max", "1000", "--grid", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Range:       $0 to $1000")
}

func TestBreakeven_AllJSON(t *testing.T) {
	out, err := execute(t, "breakeven", "--grid", "5", "--format", "json")
	require.NoError(t, err)

	var decoded struct {
		Results         []map[string]any `json:"results"`
		Recommendations []string         `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Results, 4)
	assert.Len(t, decoded.Recommendations, 4)
}

func TestBreakeven_Errors(t *testing.T) {
	_, err := execute(t, "breakeven", "--dimension", "age")
	assert.ErrorContains(t, err, "unknown dimension")

	_, err = execute(t, "breakeven", "--min", "10")
	assert.ErrorContains(t, err, "require a single --dimension")

	_, err = execute(t, "breakeven", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "breakeven", "--dimension", "mom", "--max", "lots")
	assert.ErrorContains(t, err, "invalid --max value")
}

func TestWhatIf(t *testing.T) {
	out, err := execute(t, "rank", "-f", "compact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Best: sph:self_only|premera:self_family|dad "), out)

	out, err = execute(t, "rank", "-f", "compact", "--what-if", "set_expenses:member=all,amount=0", "--what-if", "set_tax_rate:rate=0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Best: cigna:self_children|premera:self_family|both "), out)

	_, err = execute(t, "evaluate", "--what-if", "adjust_expenses:member=dad,delta=-1000000")
	assert.ErrorContains(t, err, "validation failed")

	_, err = execute(t, "evaluate", "--what-if", "bogus")
	assert.ErrorContains(t, err, "invalid --what-if")

	_, err = execute(t, "rank", "--template", "heavy_year,nope")
	assert.ErrorContains(t, err, `unknown template "nope"`)

	_, err = execute(t, "rank", "--template", "heavy_year, top_bracket", "--format", "compact")
	assert.NoError(t, err)
}

func TestTemplates(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "heavy_year")
	assert.Contains(t, out, "adjust_expenses")
}

func TestPlans(t *testing.T) {
	out, err := execute(t, "plans")
	require.NoError(t, err)
	for _, id := range []string{"premera", "surest", "cigna", "sph"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "tier_policy=symmetric")
	assert.Contains(t, out, "self_children")
}

func TestInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medplan.yaml")

	out, err := execute(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Default configuration written to")

	out, err = execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (4 plans: premera, surest, cigna, sph; 10000 sweep points)")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("rules:\n  dependent_primary: grandma\n"), 0644))
	_, err = execute(t, "validate", bad)
	assert.Error(t, err)

	_, err = execute(t, "validate")
	assert.Error(t, err, "validate needs a file argument")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "medplan dev")
}

func TestDebugFlagEnablesDebugLogging(t *testing.T) {
	_, err := execute(t, "evaluate", "--debug", "-f", "lite")
	require.NoError(t, err)
	assert.True(t, logging.Logger.Core().Enabled(-1), "debug level enabled")
}
