package compare

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CloseCallThreshold is the cost gap under which the runner-up is flagged as a close call
var CloseCallThreshold = decimal.NewFromInt(250)

// ComparisonResult is one ranked option measured against the base option
type ComparisonResult struct {
	Rank       int               `json:"rank"`
	OptionName string            `json:"optionName"`
	Evaluation domain.Evaluation `json:"evaluation"`
	Total      decimal.Decimal   `json:"total"`

	// Comparison to Base
	DiffFromBase decimal.Decimal `json:"diffFromBase"`
	PctFromBase  decimal.Decimal `json:"pctFromBase"`
}

// ComparisonSet is the base option of a scenario plus the alternatives compared to it
type ComparisonSet struct {
	Scenario           domain.Scenario    `json:"scenario"`
	BaseOptionName     string             `json:"baseOptionName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
}

// MetricsCalculator turns evaluations into comparison results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds the result for the option ranked at rank (1-based)
func (mc *MetricsCalculator) CalculateMetrics(rank int, eval domain.Evaluation) ComparisonResult {
	return ComparisonResult{
		Rank:       rank,
		OptionName: eval.Name(),
		Evaluation: eval,
		Total:      eval.Total,
	}
}

// CalculateComparison fills in the deltas of result against base. The
// percentage is relative to the magnitude of the base total, since totals
// can be negative; it stays zero when the base total is zero.
func (mc *MetricsCalculator) CalculateComparison(result, base ComparisonResult) ComparisonResult {
	result.DiffFromBase = result.Total.Sub(base.Total)
	if !base.Total.IsZero() {
		result.PctFromBase = result.DiffFromBase.
			Div(base.Total.Abs()).
			Mul(decimal.NewFromInt(100))
	}
	return result
}

// GenerateRecommendations summarizes the ranking: the best option, a close
// runner-up, and the cheapest option of each shape when it is not the best.
func GenerateRecommendations(compSet *ComparisonSet, ranked []domain.Evaluation) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(ranked) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	recommendations = append(recommendations,
		"Best Option: "+base.OptionName+" costs $"+base.Total.StringFixed(0)+" per year")

	if len(ranked) > 1 {
		gap := ranked[1].Total.Sub(base.Total)
		if gap.LessThan(CloseCallThreshold) {
			recommendations = append(recommendations,
				"Close Call: "+ranked[1].Name()+" is only $"+gap.StringFixed(0)+" more")
		}
	}

	if both, ok := cheapest(ranked, func(fo domain.FamilyOption) bool { return !fo.IsSoleCoverage() }); ok && both.Name() != base.OptionName {
		recommendations = append(recommendations,
			"Both On Own Plans: "+both.Name()+" costs $"+both.Total.Sub(base.Total).StringFixed(0)+" more than the best option")
	}

	if sole, ok := cheapest(ranked, domain.FamilyOption.IsSoleCoverage); ok && sole.Name() != base.OptionName {
		holder, _ := sole.Option.SoleHolder()
		recommendations = append(recommendations,
			fmt.Sprintf("Single Plan: covering everyone on %s's plan (%s) costs $%s more than the best option",
				holder, sole.Name(), sole.Total.Sub(base.Total).StringFixed(0)))
	}

	return recommendations
}

// cheapest returns the first evaluation in ranked order whose option matches
func cheapest(ranked []domain.Evaluation, match func(domain.FamilyOption) bool) (domain.Evaluation, bool) {
	for _, e := range ranked {
		if match(e.Option) {
			return e, true
		}
	}
	return domain.Evaluation{}, false
}
