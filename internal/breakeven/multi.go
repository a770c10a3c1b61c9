package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
	"golang.org/x/sync/errgroup"
)

// SolveAll runs Solve along every dimension from the same scenario. Missing
// ranges fall back to DefaultRange. Dimensions are solved concurrently and the
// results keep the order of Dimensions.
func (s *Solver) SolveAll(ctx context.Context, scenario domain.Scenario, ranges map[Dimension]Range) (*MultiDimensionalResult, error) {
	if s.CalcEngine == nil {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "calculation engine is required"}
	}
	baseline, err := s.CalcEngine.Best(scenario)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_all", Message: "failed to evaluate scenario", Cause: err}
	}

	results := make([]*Result, len(Dimensions))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range Dimensions {
		r, ok := ranges[d]
		if !ok {
			r = DefaultRange(d)
		}
		g.Go(func() error {
			res, err := s.Solve(gctx, Request{Scenario: scenario, Dimension: d, Range: r})
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	md := &MultiDimensionalResult{
		Scenario: scenario,
		Baseline: baseline,
		Results:  results,
	}
	md.Recommendations = generateRecommendations(md)
	return md, nil
}

// generateRecommendations names, per dimension, the nearest switch above the
// scenario's current value
func generateRecommendations(md *MultiDimensionalResult) []string {
	var recommendations []string
	for _, res := range md.Results {
		d := res.Request.Dimension
		current := d.Value(md.Scenario)

		var next *Crossover
		for i := range res.Crossovers {
			if res.Crossovers[i].At.GreaterThan(current) {
				next = &res.Crossovers[i]
				break
			}
		}
		if next == nil {
			recommendations = append(recommendations, fmt.Sprintf("%s: %s stays best up to %s",
				d.Label(), md.Baseline.Name(), FormatValue(d, res.Request.Range.Max)))
			continue
		}
		recommendations = append(recommendations, fmt.Sprintf("%s: above %s switch from %s to %s",
			d.Label(), FormatValue(d, next.Below), next.Before, next.After))
	}
	return recommendations
}
