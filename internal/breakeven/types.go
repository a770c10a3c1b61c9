package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Dimension is the scenario input varied while the others stay fixed
type Dimension string

const (
	DimensionMomExpenses  Dimension = "mom"
	DimensionDadExpenses  Dimension = "dad"
	DimensionBabyExpenses Dimension = "baby"
	DimensionTaxRate      Dimension = "tax"
)

// Dimensions lists every dimension in report order
var Dimensions = []Dimension{
	DimensionMomExpenses,
	DimensionDadExpenses,
	DimensionBabyExpenses,
	DimensionTaxRate,
}

// ParseDimension accepts a dimension name
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_dimension",
		Message:   fmt.Sprintf("unknown dimension %q (want mom, dad, baby or tax)", s),
	}
}

// Label is the human-readable name of the dimension
func (d Dimension) Label() string {
	switch d {
	case DimensionMomExpenses:
		return "Mom's expenses"
	case DimensionDadExpenses:
		return "Dad's expenses"
	case DimensionBabyExpenses:
		return "Baby's expenses"
	case DimensionTaxRate:
		return "Tax rate"
	}
	return string(d)
}

// IsRate reports whether values of the dimension are fractions rather than dollars
func (d Dimension) IsRate() bool {
	return d == DimensionTaxRate
}

// Value reads the dimension from a scenario
func (d Dimension) Value(s domain.Scenario) decimal.Decimal {
	switch d {
	case DimensionMomExpenses:
		return s.MomExpenses
	case DimensionDadExpenses:
		return s.DadExpenses
	case DimensionBabyExpenses:
		return s.BabyExpenses
	default:
		return s.TaxRate
	}
}

// With returns a copy of s with the dimension set to v
func (d Dimension) With(s domain.Scenario, v decimal.Decimal) domain.Scenario {
	switch d {
	case DimensionMomExpenses:
		s.MomExpenses = v
	case DimensionDadExpenses:
		s.DadExpenses = v
	case DimensionBabyExpenses:
		s.BabyExpenses = v
	case DimensionTaxRate:
		s.TaxRate = v
	}
	return s
}

// Range is the closed interval searched along a dimension
type Range struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// DefaultRange returns the search interval used when none is given
func DefaultRange(d Dimension) Range {
	if d.IsRate() {
		return Range{Min: decimal.Zero, Max: decimal.NewFromFloat(0.5)}
	}
	return Range{Min: decimal.Zero, Max: decimal.NewFromInt(50000)}
}

// Validate checks Min <= Max
func (r Range) Validate() error {
	if r.Min.GreaterThan(r.Max) {
		return &BreakEvenError{
			Operation: "validate_range",
			Message:   fmt.Sprintf("min (%s) cannot be greater than max (%s)", r.Min.String(), r.Max.String()),
		}
	}
	return nil
}

// Request asks for every point along one dimension where the best option changes
type Request struct {
	Scenario  domain.Scenario `json:"scenario"`
	Dimension Dimension       `json:"dimension"`
	Range     Range           `json:"range"`
}

// Crossover is a switch of the best option. Before wins at Below, After wins
// at At, and the two are no further apart than the solver tolerance.
type Crossover struct {
	Below       decimal.Decimal `json:"below"`
	At          decimal.Decimal `json:"at"`
	Before      string          `json:"before"`
	After       string          `json:"after"`
	BeforeTotal decimal.Decimal `json:"beforeTotal"`
	AfterTotal  decimal.Decimal `json:"afterTotal"`
}

// Segment is a stretch of the range over which one option stays best
type Segment struct {
	From   decimal.Decimal `json:"from"`
	To     decimal.Decimal `json:"to"`
	Option string          `json:"option"`
}

// Result holds the crossovers found along one dimension
type Result struct {
	Request     Request     `json:"request"`
	Crossovers  []Crossover `json:"crossovers"`
	Segments    []Segment   `json:"segments"`
	Evaluations int         `json:"evaluations"`
}

// MultiDimensionalResult holds one result per dimension
type MultiDimensionalResult struct {
	Scenario        domain.Scenario   `json:"scenario"`
	Baseline        domain.Evaluation `json:"baseline"`
	Results         []*Result         `json:"results"`
	Recommendations []string          `json:"recommendations"`
}

// SolverOptions configures the scan and bisection
type SolverOptions struct {
	GridResolution   int             // scan intervals across the range
	ExpenseTolerance decimal.Decimal // bisection stops below this gap, in dollars
	RateTolerance    decimal.Decimal // same for the tax rate
	MaxIterations    int             // bisection steps per crossover
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution:   100,
		ExpenseTolerance: decimal.NewFromInt(1),
		RateTolerance:    decimal.NewFromFloat(0.0001),
		MaxIterations:    50,
	}
}

// Tolerance returns the bisection tolerance for a dimension
func (o SolverOptions) Tolerance(d Dimension) decimal.Decimal {
	if d.IsRate() {
		return o.RateTolerance
	}
	return o.ExpenseTolerance
}

// Validate checks the options can drive a search
func (o SolverOptions) Validate() error {
	if o.GridResolution < 1 {
		return &BreakEvenError{Operation: "validate_options", Message: "grid resolution must be at least 1"}
	}
	if o.MaxIterations < 1 {
		return &BreakEvenError{Operation: "validate_options", Message: "max iterations must be at least 1"}
	}
	if !o.ExpenseTolerance.IsPositive() || !o.RateTolerance.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "tolerances must be positive"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
