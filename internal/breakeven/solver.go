package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver locates the scenario values at which the cheapest option changes
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// sample is the best option at one value of the dimension
type sample struct {
	value decimal.Decimal
	best  domain.Evaluation
}

// Solve scans the range on an even grid and bisects every interval whose ends
// have different winners. Several switches inside one interval are found one
// after another, left to right.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if s.CalcEngine == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "calculation engine is required"}
	}
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	if _, err := ParseDimension(string(req.Dimension)); err != nil {
		return nil, err
	}
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}
	for _, v := range []decimal.Decimal{req.Range.Min, req.Range.Max} {
		if err := req.Dimension.With(req.Scenario, v).Validate(); err != nil {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("%s range is invalid", req.Dimension),
				Cause:     err,
			}
		}
	}

	result := &Result{Request: req}
	tol := s.Options.Tolerance(req.Dimension)

	grid := s.gridValues(req.Range)
	prev, err := s.sample(ctx, req, grid[0], result)
	if err != nil {
		return nil, err
	}
	for _, v := range grid[1:] {
		next, err := s.sample(ctx, req, v, result)
		if err != nil {
			return nil, err
		}
		lo := prev
		for lo.best.Name() != next.best.Name() {
			c, hi, err := s.bisect(ctx, req, lo, next, tol, result)
			if err != nil {
				return nil, err
			}
			result.Crossovers = append(result.Crossovers, c)
			lo = hi
		}
		prev = next
	}

	result.Segments = segments(req.Range, result.Crossovers, prev.best.Name())
	return result, nil
}

// bisect narrows (lo, hi] to the first value where lo's winner stops winning
func (s *Solver) bisect(ctx context.Context, req Request, lo, hi sample, tol decimal.Decimal, result *Result) (Crossover, sample, error) {
	two := decimal.NewFromInt(2)
	for i := 0; i < s.Options.MaxIterations && hi.value.Sub(lo.value).GreaterThan(tol); i++ {
		mid, err := s.sample(ctx, req, lo.value.Add(hi.value).Div(two), result)
		if err != nil {
			return Crossover{}, sample{}, err
		}
		if mid.best.Name() == lo.best.Name() {
			lo = mid
		} else {
			hi = mid
		}
	}
	return Crossover{
		Below:       lo.value,
		At:          hi.value,
		Before:      lo.best.Name(),
		After:       hi.best.Name(),
		BeforeTotal: lo.best.Total,
		AfterTotal:  hi.best.Total,
	}, hi, nil
}

func (s *Solver) sample(ctx context.Context, req Request, v decimal.Decimal, result *Result) (sample, error) {
	select {
	case <-ctx.Done():
		return sample{}, &BreakEvenError{Operation: "solve", Message: "cancelled", Cause: ctx.Err()}
	default:
	}
	best, err := s.best(req, v, result)
	if err != nil {
		return sample{}, err
	}
	return sample{value: v, best: best}, nil
}

func (s *Solver) best(req Request, v decimal.Decimal, result *Result) (domain.Evaluation, error) {
	result.Evaluations++
	best, err := s.CalcEngine.Best(req.Dimension.With(req.Scenario, v))
	if err != nil {
		return domain.Evaluation{}, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("failed to evaluate %s=%s", req.Dimension, v.String()),
			Cause:     err,
		}
	}
	return best, nil
}

// gridValues splits the range into GridResolution even steps. A degenerate
// range yields a single value.
func (s *Solver) gridValues(r Range) []decimal.Decimal {
	if r.Min.Equal(r.Max) {
		return []decimal.Decimal{r.Min}
	}
	n := decimal.NewFromInt(int64(s.Options.GridResolution))
	width := r.Max.Sub(r.Min)
	values := make([]decimal.Decimal, 0, s.Options.GridResolution+1)
	for i := 0; i < s.Options.GridResolution; i++ {
		values = append(values, r.Min.Add(width.Mul(decimal.NewFromInt(int64(i))).Div(n)))
	}
	return append(values, r.Max)
}

func segments(r Range, crossovers []Crossover, last string) []Segment {
	if len(crossovers) == 0 {
		return []Segment{{From: r.Min, To: r.Max, Option: last}}
	}
	out := make([]Segment, 0, len(crossovers)+1)
	from := r.Min
	for _, c := range crossovers {
		out = append(out, Segment{From: from, To: c.Below, Option: c.Before})
		from = c.At
	}
	return append(out, Segment{From: from, To: r.Max, Option: last})
}
