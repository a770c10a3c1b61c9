package domain

import (
	"github.com/shopspring/decimal"
)

// 2025 HSA contribution limits
var (
	HSAFamilyContributionLimit     = decimal.NewFromInt(8550)
	HSAIndividualContributionLimit = decimal.NewFromInt(4300)
)

// DefaultSoleCoverageSurcharge is $75 per pay period over 24 pay periods
var DefaultSoleCoverageSurcharge = decimal.NewFromInt(75 * 24)

// hsaRow builds a rate row whose employee contribution fills the HSA limit left after the match
func hsaRow(premium, deductible, oopm, match int64, limit decimal.Decimal) PlanParameters {
	m := decimal.NewFromInt(match)
	return PlanParameters{
		Premium:                 decimal.NewFromInt(premium),
		Deductible:              decimal.NewFromInt(deductible),
		OutOfPocketMax:          decimal.NewFromInt(oopm),
		EmployerHSAMatch:        m,
		EmployeeHSAContribution: limit.Sub(m),
	}
}

// copayRow builds a rate row for a plan with no HSA
func copayRow(premium, deductible, oopm int64) PlanParameters {
	return PlanParameters{
		Premium:                 decimal.NewFromInt(premium),
		Deductible:              decimal.NewFromInt(deductible),
		OutOfPocketMax:          decimal.NewFromInt(oopm),
		EmployerHSAMatch:        decimal.Zero,
		EmployeeHSAContribution: decimal.Zero,
	}
}

// DefaultPlanCatalog returns the 2025 plans offered by each employer
func DefaultPlanCatalog() []PlanSpec {
	return []PlanSpec{
		{
			ID:      "premera",
			Name:    "Premera HSA",
			Sponsor: Dad,
			Policy:  TierPolicySymmetric,
			Tiers: TierTable{
				SelfOnly:     hsaRow(0, 1750, 2750, 1000, HSAIndividualContributionLimit),
				SelfSpouse:   hsaRow(0, 3500, 5500, 2000, HSAFamilyContributionLimit),
				SelfChildren: hsaRow(0, 3500, 5500, 2000, HSAFamilyContributionLimit),
				SelfFamily:   hsaRow(0, 4375, 6875, 2500, HSAFamilyContributionLimit),
			},
		},
		{
			ID:      "surest",
			Name:    "Surest copay",
			Sponsor: Dad,
			Policy:  TierPolicySymmetric,
			Tiers: TierTable{
				SelfOnly:     copayRow(0, 0, 2750),
				SelfSpouse:   copayRow(0, 0, 5500),
				SelfChildren: copayRow(0, 0, 5500),
				SelfFamily:   copayRow(0, 0, 6875),
			},
		},
		{
			ID:      "cigna",
			Name:    "Cigna HSA",
			Sponsor: Mom,
			Policy:  TierPolicyDistinct,
			Tiers: TierTable{
				SelfOnly:     hsaRow(240, 1650, 3300, 1000, HSAIndividualContributionLimit),
				SelfSpouse:   hsaRow(960, 3300, 6600, 2000, HSAFamilyContributionLimit),
				SelfChildren: hsaRow(840, 3300, 6600, 2000, HSAFamilyContributionLimit),
				SelfFamily:   hsaRow(1200, 3300, 6600, 2000, HSAFamilyContributionLimit),
			},
		},
		{
			ID:      "sph",
			Name:    "SPH copay",
			Sponsor: Mom,
			Policy:  TierPolicyDistinct,
			Tiers: TierTable{
				SelfOnly:     copayRow(240, 0, 2000),
				SelfSpouse:   copayRow(960, 0, 4000),
				SelfChildren: copayRow(840, 0, 4000),
				SelfFamily:   copayRow(1200, 0, 4000),
			},
		},
	}
}

// DefaultEvaluationRules returns the surcharge and birthday-rule defaults
func DefaultEvaluationRules() EvaluationRules {
	return EvaluationRules{
		SoleCoverageSurcharge: map[Adult]decimal.Decimal{
			Dad: DefaultSoleCoverageSurcharge,
			Mom: decimal.Zero,
		},
		DependentPrimary: Mom, // mom's birthday is earlier in the year
	}
}

// DefaultScenario returns the reference scenario
func DefaultScenario() Scenario {
	return NewScenario(10000, 500, 1000, 0)
}

var defaultSweepExpenses = []int64{0, 500, 1000, 2000, 3000, 4000, 8000, 10000, 20000, 50000}

// DefaultSweepGrid returns the exhaustive evaluation grid
func DefaultSweepGrid() SweepGrid {
	expenses := func() []decimal.Decimal {
		values := make([]decimal.Decimal, len(defaultSweepExpenses))
		for i, v := range defaultSweepExpenses {
			values[i] = decimal.NewFromInt(v)
		}
		return values
	}
	taxRates := make([]decimal.Decimal, 0, 10)
	for i := int64(0); i < 10; i++ {
		taxRates = append(taxRates, decimal.New(5*i, -2)) // 0.00 .. 0.45
	}
	return SweepGrid{
		MomExpenses:  expenses(),
		DadExpenses:  expenses(),
		BabyExpenses: expenses(),
		TaxRates:     taxRates,
	}
}

// DefaultConfiguration returns the built-in catalog, rules, scenario and grid
func DefaultConfiguration() Configuration {
	return Configuration{
		Plans:    DefaultPlanCatalog(),
		Rules:    DefaultEvaluationRules(),
		Scenario: DefaultScenario(),
		Sweep:    DefaultSweepGrid(),
	}
}
