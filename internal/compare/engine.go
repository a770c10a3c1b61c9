package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
)

// CompareEngine ranks the options of a scenario against the best one
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Top     int      // Number of runners-up to include after the best option
	Include []string // Option names to include regardless of rank
}

// Compare evaluates every option for scenario and compares the runners-up and
// any explicitly included options with the best one.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	scenario domain.Scenario,
	options CompareOptions,
) (*ComparisonSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if options.Top < 0 {
		return nil, fmt.Errorf("top must be non-negative, got %d", options.Top)
	}

	ranked, err := ce.CalcEngine.Rank(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to rank options: %w", err)
	}

	baseResult := ce.MetricsCalculator.CalculateMetrics(1, ranked[0])

	rankOf := make(map[string]int, len(ranked))
	for i, e := range ranked {
		rankOf[e.Name()] = i
	}

	selected := map[int]bool{}
	order := []int{}
	for i := 1; i <= options.Top && i < len(ranked); i++ {
		selected[i] = true
		order = append(order, i)
	}
	for _, name := range options.Include {
		i, ok := rankOf[name]
		if !ok {
			return nil, fmt.Errorf("option %s not found", name)
		}
		if i == 0 || selected[i] {
			continue
		}
		selected[i] = true
		order = append(order, i)
	}

	alternatives := make([]ComparisonResult, 0, len(order))
	for _, i := range order {
		altResult := ce.MetricsCalculator.CalculateMetrics(i+1, ranked[i])
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		Scenario:           scenario,
		BaseOptionName:     baseResult.OptionName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet, ranked)

	return compSet, nil
}
