package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scenario is one set of projected annual in-network expenses and a marginal tax rate
type Scenario struct {
	MomExpenses  decimal.Decimal `yaml:"mom_expenses" json:"momExpenses"`
	DadExpenses  decimal.Decimal `yaml:"dad_expenses" json:"dadExpenses"`
	BabyExpenses decimal.Decimal `yaml:"baby_expenses" json:"babyExpenses"`
	TaxRate      decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
}

// NewScenario builds a scenario from whole-dollar expenses and a fractional tax rate
func NewScenario(mom, dad, baby int64, taxRate float64) Scenario {
	return Scenario{
		MomExpenses:  decimal.NewFromInt(mom),
		DadExpenses:  decimal.NewFromInt(dad),
		BabyExpenses: decimal.NewFromInt(baby),
		TaxRate:      decimal.NewFromFloat(taxRate),
	}
}

// Validate checks expenses are non-negative and the tax rate is in [0, 1)
func (s Scenario) Validate() error {
	if s.MomExpenses.IsNegative() {
		return fmt.Errorf("%w: mom expenses cannot be negative", ErrInvalidScenario)
	}
	if s.DadExpenses.IsNegative() {
		return fmt.Errorf("%w: dad expenses cannot be negative", ErrInvalidScenario)
	}
	if s.BabyExpenses.IsNegative() {
		return fmt.Errorf("%w: baby expenses cannot be negative", ErrInvalidScenario)
	}
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: tax rate must be in [0, 1), got %s", ErrInvalidScenario, s.TaxRate.String())
	}
	return nil
}

// TotalExpenses is the household's pooled expenses
func (s Scenario) TotalExpenses() decimal.Decimal {
	return s.MomExpenses.Add(s.DadExpenses).Add(s.BabyExpenses)
}

// Expenses returns one adult's own expenses
func (s Scenario) Expenses(a Adult) decimal.Decimal {
	if a == Dad {
		return s.DadExpenses
	}
	return s.MomExpenses
}

func (s Scenario) String() string {
	return fmt.Sprintf("mom=%s dad=%s baby=%s tax=%s",
		s.MomExpenses.String(), s.DadExpenses.String(), s.BabyExpenses.String(), s.TaxRate.String())
}

// EvaluationRules are the business rules applied on top of the plan rates
type EvaluationRules struct {
	// SoleCoverageSurcharge is added when the keyed adult's plan covers the whole
	// family, e.g. an employer surcharge for enrolling a spouse who has other coverage.
	SoleCoverageSurcharge map[Adult]decimal.Decimal `yaml:"sole_coverage_surcharge" json:"soleCoverageSurcharge"`

	// DependentPrimary is the adult whose plan pays first for the dependent when both
	// plans cover the dependent (birthday rule).
	DependentPrimary Adult `yaml:"dependent_primary" json:"dependentPrimary"`
}

// Surcharge returns the sole-coverage surcharge for holder, zero if unset
func (r EvaluationRules) Surcharge(holder Adult) decimal.Decimal {
	if r.SoleCoverageSurcharge == nil {
		return decimal.Zero
	}
	return r.SoleCoverageSurcharge[holder]
}

// Validate checks the rules are usable
func (r EvaluationRules) Validate() error {
	if !r.DependentPrimary.Valid() {
		return fmt.Errorf("dependent_primary must be 'dad' or 'mom', got %q", r.DependentPrimary)
	}
	for adult, amount := range r.SoleCoverageSurcharge {
		if !adult.Valid() {
			return fmt.Errorf("sole_coverage_surcharge references unknown adult %q", adult)
		}
		if amount.IsNegative() {
			return fmt.Errorf("sole_coverage_surcharge for %s cannot be negative", adult)
		}
	}
	return nil
}

// Evaluation is the cost breakdown of one option under one scenario
type Evaluation struct {
	Option    FamilyOption    `json:"option"`
	DadCost   decimal.Decimal `json:"dadCost"`
	MomCost   decimal.Decimal `json:"momCost"`
	Surcharge decimal.Decimal `json:"surcharge"`
	Total     decimal.Decimal `json:"total"`
}

// Name is the evaluated option's name
func (e Evaluation) Name() string {
	return e.Option.Name()
}

// Report is the result of evaluating every option for one scenario
type Report struct {
	Scenario Scenario        `json:"scenario"`
	Rules    EvaluationRules `json:"rules"`
	Best     Evaluation      `json:"best"`
	Ranked   []Evaluation    `json:"ranked"`
}

// SweepGrid lists explicit values for each scenario dimension
type SweepGrid struct {
	MomExpenses  []decimal.Decimal `yaml:"mom_expenses" json:"momExpenses"`
	DadExpenses  []decimal.Decimal `yaml:"dad_expenses" json:"dadExpenses"`
	BabyExpenses []decimal.Decimal `yaml:"baby_expenses" json:"babyExpenses"`
	TaxRates     []decimal.Decimal `yaml:"tax_rates" json:"taxRates"`
}

// Size is the number of grid points
func (g SweepGrid) Size() int {
	return len(g.MomExpenses) * len(g.DadExpenses) * len(g.BabyExpenses) * len(g.TaxRates)
}

// Scenarios expands the grid with mom outermost and tax rate innermost
func (g SweepGrid) Scenarios() []Scenario {
	scenarios := make([]Scenario, 0, g.Size())
	for _, mom := range g.MomExpenses {
		for _, dad := range g.DadExpenses {
			for _, baby := range g.BabyExpenses {
				for _, tax := range g.TaxRates {
					scenarios = append(scenarios, Scenario{
						MomExpenses:  mom,
						DadExpenses:  dad,
						BabyExpenses: baby,
						TaxRate:      tax,
					})
				}
			}
		}
	}
	return scenarios
}

// Validate checks every dimension is non-empty and every point is a valid scenario
func (g SweepGrid) Validate() error {
	if g.Size() == 0 {
		return fmt.Errorf("sweep grid needs at least one value per dimension")
	}
	for _, s := range g.Scenarios() {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SweepPoint is the best option at one grid point
type SweepPoint struct {
	Scenario Scenario   `json:"scenario"`
	Best     Evaluation `json:"best"`
}

// WinnerCount tallies how many grid points an option won
type WinnerCount struct {
	Option string `json:"option"`
	Points int    `json:"points"`
}

// SweepResult holds every grid point in grid order
type SweepResult struct {
	Grid    SweepGrid     `json:"grid"`
	Points  []SweepPoint  `json:"points"`
	Winners []WinnerCount `json:"winners"`
}

// Configuration is the full input of a run
type Configuration struct {
	Plans    []PlanSpec      `yaml:"plans" json:"plans"`
	Rules    EvaluationRules `yaml:"rules" json:"rules"`
	Scenario Scenario        `yaml:"scenario" json:"scenario"`
	Sweep    SweepGrid       `yaml:"sweep" json:"sweep"`
}
