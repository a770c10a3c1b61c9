package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// ConsoleFormatter renders the detailed console report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf, "FAMILY MEDICAL PLAN ANALYSIS")
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeScenario(&buf, report)
	writeEvaluation(&buf, "BEST OPTION", report.Best)

	fmt.Fprintf(&buf, "ALL OPTIONS (%d, cheapest first)\n", len(report.Ranked))
	fmt.Fprintln(&buf, strings.Repeat("=", 40))
	writeRankTable(&buf, report.Ranked, report.Best, len(report.Ranked))
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, report *domain.Report) {
	s := report.Scenario
	fmt.Fprintln(buf, "SCENARIO")
	fmt.Fprintln(buf, strings.Repeat("=", 40))
	fmt.Fprintf(buf, "  Mom's Expenses:          %s\n", FormatCurrency(s.MomExpenses))
	fmt.Fprintf(buf, "  Dad's Expenses:          %s\n", FormatCurrency(s.DadExpenses))
	fmt.Fprintf(buf, "  Baby's Expenses:         %s\n", FormatCurrency(s.BabyExpenses))
	fmt.Fprintf(buf, "  Marginal Tax Rate:       %s\n", FormatPercentage(s.TaxRate))
	fmt.Fprintf(buf, "  Dependent Primary Plan:  %s\n", report.Rules.DependentPrimary)
	for _, adult := range domain.Adults {
		fmt.Fprintf(buf, "  Sole Coverage Surcharge (%s): %s\n", adult, FormatCurrency(report.Rules.Surcharge(adult)))
	}
	fmt.Fprintln(buf)
}

func writeEvaluation(buf *bytes.Buffer, title string, eval domain.Evaluation) {
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", 40))
	fmt.Fprintf(buf, "  %s\n", eval.Name())
	fmt.Fprintf(buf, "  Mom's Plan:   %s\n", describePlan(eval.Option.MomPlan))
	fmt.Fprintf(buf, "  Dad's Plan:   %s\n", describePlan(eval.Option.DadPlan))
	fmt.Fprintf(buf, "  Dependent:    under %s\n", eval.Option.Dependent)
	fmt.Fprintln(buf, "  ----------------------------------------")
	fmt.Fprintf(buf, "  Dad's Plan Cost:  %s\n", FormatCurrency(eval.DadCost))
	fmt.Fprintf(buf, "  Mom's Plan Cost:  %s\n", FormatCurrency(eval.MomCost))
	if !eval.Surcharge.IsZero() {
		fmt.Fprintf(buf, "  Surcharge:        %s\n", FormatCurrency(eval.Surcharge))
	}
	fmt.Fprintf(buf, "  TOTAL:            %s\n", FormatCurrency(eval.Total))
	fmt.Fprintln(buf)
}

func describePlan(pi *domain.PlanInstance) string {
	if pi == nil {
		return "none (covered as spouse)"
	}
	election := domain.TierFor(pi.Spouse, pi.Children)
	if election == pi.Tier {
		return fmt.Sprintf("%s %s", pi.PlanID, election)
	}
	return fmt.Sprintf("%s %s (billed as %s)", pi.PlanID, election, pi.Tier)
}

func writeRankTable(buf *bytes.Buffer, ranked []domain.Evaluation, best domain.Evaluation, limit int) {
	fmt.Fprintf(buf, "%4s  %-46s %12s %12s %10s %12s %12s\n", "#", "Option", "Dad", "Mom", "Surcharge", "Total", "vs Best")
	fmt.Fprintln(buf, strings.Repeat("-", 116))
	for i, e := range ranked {
		if i >= limit {
			break
		}
		fmt.Fprintf(buf, "%4d  %-46s %12s %12s %10s %12s %12s\n",
			i+1, e.Name(),
			FormatCurrency(e.DadCost), FormatCurrency(e.MomCost), FormatCurrency(e.Surcharge),
			FormatCurrency(e.Total), "+"+FormatCurrency(e.Total.Sub(best.Total)))
	}
	fmt.Fprintln(buf)
}

// ConsoleLiteFormatter renders the best option and the next few runners-up
type ConsoleLiteFormatter struct {
	Top int
}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MEDICAL PLAN SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 20))
	fmt.Fprintf(&buf, "Scenario: %s\n", report.Scenario)
	fmt.Fprintf(&buf, "Best: %s at %s\n\n", report.Best.Name(), FormatCurrency(report.Best.Total))

	top := c.Top
	if top <= 0 {
		top = 5
	}
	writeRankTable(&buf, report.Ranked, report.Best, top)
	return buf.Bytes(), nil
}
