package calculation

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/rgehrsitz/medplan/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Sweep finds the best option at every point of the grid. Points are evaluated
// in parallel; the result keeps grid order.
func (ce *CalculationEngine) Sweep(ctx context.Context, grid domain.SweepGrid) (*domain.SweepResult, error) {
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep grid: %w", err)
	}

	scenarios := grid.Scenarios()
	points := make([]domain.SweepPoint, len(scenarios))
	ce.Logger.Infof("sweeping %d scenarios over %d options", len(scenarios), len(ce.options))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			best, err := ce.bestQuiet(s)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", s, err)
			}
			points[i] = domain.SweepPoint{Scenario: s, Best: best}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.SweepResult{
		Grid:    grid,
		Points:  points,
		Winners: TallyWinners(points),
	}, nil
}

// bestQuiet is Best without per-option logging, for use from many goroutines
func (ce *CalculationEngine) bestQuiet(s domain.Scenario) (domain.Evaluation, error) {
	evals := make([]domain.Evaluation, 0, len(ce.options))
	for _, opt := range ce.options {
		eval, err := ce.Evaluator.Evaluate(opt, s)
		if err != nil {
			return domain.Evaluation{}, err
		}
		evals = append(evals, eval)
	}
	return BestOption(evals)
}

// TallyWinners counts grid points per winning option, most wins first, then by name
func TallyWinners(points []domain.SweepPoint) []domain.WinnerCount {
	counts := make(map[string]int)
	for _, p := range points {
		counts[p.Best.Name()]++
	}

	winners := make([]domain.WinnerCount, 0, len(counts))
	for name, n := range counts {
		winners = append(winners, domain.WinnerCount{Option: name, Points: n})
	}
	sort.Slice(winners, func(i, j int) bool {
		if winners[i].Points != winners[j].Points {
			return winners[i].Points > winners[j].Points
		}
		return winners[i].Option < winners[j].Option
	})
	return winners
}
