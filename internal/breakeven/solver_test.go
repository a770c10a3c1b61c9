package breakeven

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/catalog"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// twoPlanEngine offers dad a cheap plan with a high out-of-pocket maximum and a
// dearer one with a low maximum. Covering everyone on "high" wins below $5000
// of pooled expenses and "low" wins above it.
func twoPlanEngine(t *testing.T) *calculation.CalculationEngine {
	t.Helper()
	spec := func(id string, premium, oopm int64) domain.PlanSpec {
		row := domain.PlanParameters{
			Premium:        decimal.NewFromInt(premium),
			OutOfPocketMax: decimal.NewFromInt(oopm),
		}
		return domain.PlanSpec{
			ID:      id,
			Sponsor: domain.Dad,
			Policy:  domain.TierPolicySymmetric,
			Tiers:   domain.TierTable{SelfOnly: row, SelfSpouse: row, SelfChildren: row, SelfFamily: row},
		}
	}
	cat, err := catalog.New([]domain.PlanSpec{spec("high", 0, 10000), spec("low", 2000, 3000)})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	engine, err := calculation.NewCalculationEngine(cat, domain.DefaultEvaluationRules())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return engine
}

func TestNewSolver(t *testing.T) {
	calcEngine := &calculation.CalculationEngine{}
	options := DefaultSolverOptions()

	solver := NewSolver(calcEngine, options)

	if solver == nil {
		t.Fatal("Expected solver to be created, got nil")
	}
	if solver.CalcEngine != calcEngine {
		t.Error("Expected CalcEngine to match input")
	}
	if solver.Options.GridResolution != options.GridResolution {
		t.Error("Expected Options to match input")
	}
}

func TestNewDefaultSolver(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultCalculationEngine())

	expected := DefaultSolverOptions()
	if solver.Options.GridResolution != expected.GridResolution {
		t.Error("Expected default grid resolution to be applied")
	}
	if !solver.Options.ExpenseTolerance.Equal(expected.ExpenseTolerance) {
		t.Error("Expected default expense tolerance to be applied")
	}
}

func TestSolve_SingleCrossover(t *testing.T) {
	solver := NewSolver(twoPlanEngine(t), SolverOptions{
		GridResolution:   20,
		ExpenseTolerance: decimal.NewFromInt(1),
		RateTolerance:    decimal.NewFromFloat(0.0001),
		MaxIterations:    50,
	})

	result, err := solver.Solve(context.Background(), Request{
		Scenario:  domain.NewScenario(0, 0, 0, 0),
		Dimension: DimensionDadExpenses,
		Range:     Range{Min: decimal.Zero, Max: decimal.NewFromInt(20000)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Crossovers) != 1 {
		t.Fatalf("Expected 1 crossover, got %d", len(result.Crossovers))
	}
	c := result.Crossovers[0]
	if c.Before != "none|high:self_family|dad" || c.After != "none|low:self_family|dad" {
		t.Errorf("Unexpected switch %s -> %s", c.Before, c.After)
	}
	// ties keep the earlier option, so $5000 itself still belongs to "high"
	if !c.Below.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("Expected below 5000, got %s", c.Below)
	}
	if !c.At.GreaterThan(c.Below) || c.At.Sub(c.Below).GreaterThan(decimal.NewFromInt(1)) {
		t.Errorf("Expected at within $1 above 5000, got %s", c.At)
	}
	if !c.BeforeTotal.Equal(decimal.NewFromInt(6800)) {
		t.Errorf("Expected before total 6800, got %s", c.BeforeTotal)
	}
	if !c.AfterTotal.Equal(decimal.NewFromInt(6800)) {
		t.Errorf("Expected after total 6800, got %s", c.AfterTotal)
	}

	if len(result.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].Option != c.Before || !result.Segments[0].From.IsZero() {
		t.Errorf("Unexpected first segment %+v", result.Segments[0])
	}
	if result.Segments[1].Option != c.After || !result.Segments[1].To.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Unexpected last segment %+v", result.Segments[1])
	}
	if result.Evaluations <= 21 {
		t.Errorf("Expected bisection evaluations beyond the 21 grid points, got %d", result.Evaluations)
	}
}

func TestSolve_CrossoversAreConsistent(t *testing.T) {
	engine := calculation.NewDefaultCalculationEngine()
	options := DefaultSolverOptions()
	options.GridResolution = 25
	solver := NewSolver(engine, options)

	for _, d := range Dimensions {
		t.Run(string(d), func(t *testing.T) {
			req := Request{Scenario: domain.DefaultScenario(), Dimension: d, Range: DefaultRange(d)}
			result, err := solver.Solve(context.Background(), req)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			start, err := engine.Best(d.With(req.Scenario, req.Range.Min))
			if err != nil {
				t.Fatal(err)
			}
			if result.Segments[0].Option != start.Name() {
				t.Errorf("Expected first segment %s, got %s", start.Name(), result.Segments[0].Option)
			}
			if len(result.Segments) != len(result.Crossovers)+1 {
				t.Errorf("Expected %d segments, got %d", len(result.Crossovers)+1, len(result.Segments))
			}

			tol := options.Tolerance(d)
			prev := req.Range.Min
			for _, c := range result.Crossovers {
				if c.At.LessThan(prev) {
					t.Errorf("Crossovers out of order at %s", c.At)
				}
				prev = c.At
				if c.At.Sub(c.Below).GreaterThan(tol) {
					t.Errorf("Crossover at %s not within tolerance of %s", c.At, c.Below)
				}
				below, _ := engine.Best(d.With(req.Scenario, c.Below))
				at, _ := engine.Best(d.With(req.Scenario, c.At))
				if below.Name() != c.Before || at.Name() != c.After {
					t.Errorf("Crossover %s -> %s does not match %s -> %s", c.Before, c.After, below.Name(), at.Name())
				}
			}
		})
	}
}

func TestSolve_DegenerateRange(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultCalculationEngine())
	v := decimal.NewFromInt(500)

	result, err := solver.Solve(context.Background(), Request{
		Scenario:  domain.DefaultScenario(),
		Dimension: DimensionMomExpenses,
		Range:     Range{Min: v, Max: v},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Crossovers) != 0 {
		t.Errorf("Expected no crossovers, got %d", len(result.Crossovers))
	}
	if len(result.Segments) != 1 || result.Evaluations != 1 {
		t.Errorf("Expected a single sample, got %d segments and %d evaluations", len(result.Segments), result.Evaluations)
	}
}

func TestSolve_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultCalculationEngine())
	base := domain.DefaultScenario()

	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"unknown dimension", Request{Scenario: base, Dimension: "age", Range: DefaultRange(DimensionDadExpenses)}, "unknown dimension"},
		{"inverted range", Request{Scenario: base, Dimension: DimensionDadExpenses, Range: Range{Min: decimal.NewFromInt(10), Max: decimal.Zero}}, "cannot be greater than"},
		{"negative expenses", Request{Scenario: base, Dimension: DimensionBabyExpenses, Range: Range{Min: decimal.NewFromInt(-1), Max: decimal.Zero}}, "baby range is invalid"},
		{"tax rate of one", Request{Scenario: base, Dimension: DimensionTaxRate, Range: Range{Min: decimal.Zero, Max: decimal.NewFromInt(1)}}, "tax range is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := solver.Solve(context.Background(), tt.req)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
			var beErr *BreakEvenError
			if !errors.As(err, &beErr) {
				t.Errorf("Expected *BreakEvenError, got %T", err)
			}
		})
	}
}

func TestSolve_InvalidOptions(t *testing.T) {
	solver := NewSolver(calculation.NewDefaultCalculationEngine(), SolverOptions{})
	_, err := solver.Solve(context.Background(), Request{
		Scenario:  domain.DefaultScenario(),
		Dimension: DimensionDadExpenses,
		Range:     DefaultRange(DimensionDadExpenses),
	})
	if err == nil || !strings.Contains(err.Error(), "grid resolution") {
		t.Errorf("Expected grid resolution error, got %v", err)
	}

	_, err = NewDefaultSolver(nil).Solve(context.Background(), Request{})
	if err == nil || !strings.Contains(err.Error(), "calculation engine is required") {
		t.Errorf("Expected missing engine error, got %v", err)
	}
}

func TestSolve_Cancelled(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewDefaultCalculationEngine())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := solver.Solve(ctx, Request{
		Scenario:  domain.DefaultScenario(),
		Dimension: DimensionDadExpenses,
		Range:     DefaultRange(DimensionDadExpenses),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestSolveAll(t *testing.T) {
	options := DefaultSolverOptions()
	options.GridResolution = 20
	solver := NewSolver(calculation.NewDefaultCalculationEngine(), options)

	result, err := solver.SolveAll(context.Background(), domain.DefaultScenario(), map[Dimension]Range{
		DimensionTaxRate: {Min: decimal.Zero, Max: decimal.NewFromFloat(0.4)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Baseline.Name() != "sph:self_only|premera:self_family|dad" {
		t.Errorf("Unexpected baseline %s", result.Baseline.Name())
	}
	if len(result.Results) != len(Dimensions) {
		t.Fatalf("Expected %d results, got %d", len(Dimensions), len(result.Results))
	}
	for i, d := range Dimensions {
		if result.Results[i].Request.Dimension != d {
			t.Errorf("Result %d: expected %s, got %s", i, d, result.Results[i].Request.Dimension)
		}
	}
	if !result.Results[3].Request.Range.Max.Equal(decimal.NewFromFloat(0.4)) {
		t.Errorf("Expected tax range override, got %s", result.Results[3].Request.Range.Max)
	}
	if len(result.Recommendations) != len(Dimensions) {
		t.Errorf("Expected one recommendation per dimension, got %d", len(result.Recommendations))
	}
	if !strings.HasPrefix(result.Recommendations[0], "Mom's expenses: ") {
		t.Errorf("Unexpected recommendation %q", result.Recommendations[0])
	}
}
