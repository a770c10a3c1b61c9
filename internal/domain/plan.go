package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CoverageTier is the enrollment category that selects a plan's rate row
type CoverageTier int

const (
	SelfOnly CoverageTier = iota
	SelfSpouse
	SelfChildren
	SelfFamily
)

// CoverageTiers lists every tier in rate-table order
var CoverageTiers = []CoverageTier{SelfOnly, SelfSpouse, SelfChildren, SelfFamily}

var tierNames = map[CoverageTier]string{
	SelfOnly:     "self_only",
	SelfSpouse:   "self_spouse",
	SelfChildren: "self_children",
	SelfFamily:   "self_family",
}

func (t CoverageTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// ParseCoverageTier parses the text form produced by String
func ParseCoverageTier(s string) (CoverageTier, error) {
	for tier, name := range tierNames {
		if name == s {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("unknown coverage tier %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (t CoverageTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *CoverageTier) UnmarshalText(text []byte) error {
	parsed, err := ParseCoverageTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TierFor maps the two coverage flags to the tier that literally describes them
func TierFor(spouse, children bool) CoverageTier {
	switch {
	case spouse && children:
		return SelfFamily
	case spouse:
		return SelfSpouse
	case children:
		return SelfChildren
	default:
		return SelfOnly
	}
}

// IncludesChildren reports whether the tier covers the dependent
func (t CoverageTier) IncludesChildren() bool {
	return t == SelfChildren || t == SelfFamily
}

// PlanParameters is one rate row of a plan. All amounts are annual.
type PlanParameters struct {
	Premium                 decimal.Decimal `yaml:"premium" json:"premium"`
	Deductible              decimal.Decimal `yaml:"deductible" json:"deductible"`
	OutOfPocketMax          decimal.Decimal `yaml:"out_of_pocket_max" json:"outOfPocketMax"`
	EmployerHSAMatch        decimal.Decimal `yaml:"employer_hsa_match" json:"employerHsaMatch"`
	EmployeeHSAContribution decimal.Decimal `yaml:"employee_hsa_contribution" json:"employeeHsaContribution"`
}

// Validate checks out_of_pocket_max >= deductible >= 0 and that no amount is negative
func (p PlanParameters) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"premium", p.Premium},
		{"deductible", p.Deductible},
		{"out_of_pocket_max", p.OutOfPocketMax},
		{"employer_hsa_match", p.EmployerHSAMatch},
		{"employee_hsa_contribution", p.EmployeeHSAContribution},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}
	if p.OutOfPocketMax.LessThan(p.Deductible) {
		return fmt.Errorf("out_of_pocket_max (%s) cannot be less than deductible (%s)",
			p.OutOfPocketMax.String(), p.Deductible.String())
	}
	return nil
}

// TierTable holds the four rate rows of a plan
type TierTable struct {
	SelfOnly     PlanParameters `yaml:"self_only" json:"selfOnly"`
	SelfSpouse   PlanParameters `yaml:"self_spouse" json:"selfSpouse"`
	SelfChildren PlanParameters `yaml:"self_children" json:"selfChildren"`
	SelfFamily   PlanParameters `yaml:"self_family" json:"selfFamily"`
}

// Row returns the rate row for a tier
func (tt TierTable) Row(tier CoverageTier) (PlanParameters, bool) {
	switch tier {
	case SelfOnly:
		return tt.SelfOnly, true
	case SelfSpouse:
		return tt.SelfSpouse, true
	case SelfChildren:
		return tt.SelfChildren, true
	case SelfFamily:
		return tt.SelfFamily, true
	}
	return PlanParameters{}, false
}

// TierPolicy decides which rate row a (spouse, children) election bills at.
// Carriers differ: some bill spouse-only and children-only from one shared row,
// others price them separately.
type TierPolicy string

const (
	// TierPolicySymmetric bills spouse-only and children-only from the self_spouse row
	TierPolicySymmetric TierPolicy = "symmetric"
	// TierPolicyDistinct bills children-only from the self_children row
	TierPolicyDistinct TierPolicy = "distinct"
)

// tierPolicyTables is indexed [spouse][children]
var tierPolicyTables = map[TierPolicy][2][2]CoverageTier{
	TierPolicySymmetric: {
		{SelfOnly, SelfSpouse},
		{SelfSpouse, SelfFamily},
	},
	TierPolicyDistinct: {
		{SelfOnly, SelfChildren},
		{SelfSpouse, SelfFamily},
	},
}

// Valid reports whether the policy is known
func (p TierPolicy) Valid() bool {
	_, ok := tierPolicyTables[p]
	return ok
}

// Tier selects the billed tier for an election. Unknown policies bill literally.
func (p TierPolicy) Tier(spouse, children bool) CoverageTier {
	table, ok := tierPolicyTables[p]
	if !ok {
		return TierFor(spouse, children)
	}
	return table[boolIndex(spouse)][boolIndex(children)]
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

// PlanSpec is one catalog entry: a plan offered through one adult's employer
type PlanSpec struct {
	ID      string     `yaml:"id" json:"id"`
	Name    string     `yaml:"name,omitempty" json:"name,omitempty"`
	Sponsor Adult      `yaml:"sponsor" json:"sponsor"`
	Policy  TierPolicy `yaml:"tier_policy" json:"tierPolicy"`
	Tiers   TierTable  `yaml:"tiers" json:"tiers"`
}

// Validate checks the plan's identity, policy and every rate row
func (ps PlanSpec) Validate() error {
	if ps.ID == "" {
		return fmt.Errorf("plan id is required")
	}
	if !ps.Sponsor.Valid() {
		return fmt.Errorf("plan %s: sponsor must be 'dad' or 'mom', got %q", ps.ID, ps.Sponsor)
	}
	if !ps.Policy.Valid() {
		return fmt.Errorf("plan %s: tier_policy must be 'symmetric' or 'distinct', got %q", ps.ID, ps.Policy)
	}
	for _, tier := range CoverageTiers {
		row, _ := ps.Tiers.Row(tier)
		if err := row.Validate(); err != nil {
			return fmt.Errorf("plan %s %s: %w", ps.ID, tier, err)
		}
	}
	return nil
}

// PlanInstance is a plan bound to a concrete election
type PlanInstance struct {
	PlanID   string         `json:"planId"`
	Spouse   bool           `json:"spouse"`
	Children bool           `json:"children"`
	Tier     CoverageTier   `json:"tier"`
	Params   PlanParameters `json:"params"`
}

// NewPlanInstance resolves the election through the plan's tier policy
func NewPlanInstance(spec PlanSpec, spouse, children bool) *PlanInstance {
	tier := spec.Policy.Tier(spouse, children)
	row, _ := spec.Tiers.Row(tier)
	return &PlanInstance{
		PlanID:   spec.ID,
		Spouse:   spouse,
		Children: children,
		Tier:     tier,
		Params:   row,
	}
}

// CoversChildren reports whether the dependent was elected onto this plan
func (pi *PlanInstance) CoversChildren() bool {
	return pi.Children
}

// CoversFamily reports whether both spouse and dependent were elected
func (pi *PlanInstance) CoversFamily() bool {
	return pi.Spouse && pi.Children
}

// Label renders "<plan>:<election>", e.g. "cigna:self_children"
func (pi *PlanInstance) Label() string {
	return pi.PlanID + ":" + TierFor(pi.Spouse, pi.Children).String()
}

// TaxSaving is the value of making the employee HSA contribution pre-tax
func (pi *PlanInstance) TaxSaving(taxRate decimal.Decimal) decimal.Decimal {
	return pi.Params.EmployeeHSAContribution.Mul(taxRate)
}

// Cost is the annual cost of this plan for the expenses billed against it.
// Expenses above the out-of-pocket maximum are not borne by the family.
// The result may be negative when HSA offsets exceed premium plus expenses.
func (pi *PlanInstance) Cost(expenses, taxRate decimal.Decimal) decimal.Decimal {
	capped := decimal.Min(expenses, pi.Params.OutOfPocketMax)
	return pi.Params.Premium.
		Add(capped).
		Sub(pi.Params.EmployerHSAMatch).
		Sub(pi.TaxSaving(taxRate))
}
