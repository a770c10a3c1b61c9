package domain

import (
	"fmt"
)

// Adult identifies one of the two policy holders in the household
type Adult string

const (
	Dad Adult = "dad"
	Mom Adult = "mom"
)

// Adults lists both policy holders in enumeration order
var Adults = []Adult{Dad, Mom}

// Valid reports whether a is a known adult
func (a Adult) Valid() bool {
	return a == Dad || a == Mom
}

// Other returns the spouse of a
func (a Adult) Other() Adult {
	if a == Dad {
		return Mom
	}
	return Dad
}

// DependentCoverage records which adult plan(s) carry the dependent
type DependentCoverage int

const (
	UnderDad DependentCoverage = iota + 1
	UnderMom
	UnderBoth
)

func (dc DependentCoverage) String() string {
	switch dc {
	case UnderDad:
		return "dad"
	case UnderMom:
		return "mom"
	case UnderBoth:
		return "both"
	default:
		return fmt.Sprintf("coverage(%d)", int(dc))
	}
}

// MarshalText implements encoding.TextMarshaler
func (dc DependentCoverage) MarshalText() ([]byte, error) {
	return []byte(dc.String()), nil
}

// CoverageUnder is the designation for a dependent carried only by a's plan
func CoverageUnder(a Adult) DependentCoverage {
	if a == Dad {
		return UnderDad
	}
	return UnderMom
}

// FamilyOption is one assignment of plans to the household. A nil adult plan
// means that adult is covered as a spouse on the other adult's plan.
type FamilyOption struct {
	DadPlan   *PlanInstance     `json:"dadPlan"`
	MomPlan   *PlanInstance     `json:"momPlan"`
	Dependent DependentCoverage `json:"dependent"`
}

// NewFamilyOption builds an option and checks that the dependent designation
// agrees with the adult elections.
func NewFamilyOption(dad, mom *PlanInstance, dependent DependentCoverage) (FamilyOption, error) {
	opt := FamilyOption{DadPlan: dad, MomPlan: mom, Dependent: dependent}
	if err := opt.Validate(); err != nil {
		return FamilyOption{}, err
	}
	return opt, nil
}

// SoleCoverageOption builds the option where one adult's plan covers everyone
func SoleCoverageOption(holder Adult, plan *PlanInstance) (FamilyOption, error) {
	if holder == Dad {
		return NewFamilyOption(plan, nil, UnderDad)
	}
	return NewFamilyOption(nil, plan, UnderMom)
}

// Validate checks the option invariants
func (fo FamilyOption) Validate() error {
	switch {
	case fo.DadPlan == nil && fo.MomPlan == nil:
		return &InvalidOptionStateError{Option: fo.Name(), Reason: "no adult plan"}

	case fo.DadPlan == nil || fo.MomPlan == nil:
		holder, plan := fo.SoleHolder()
		if !plan.CoversFamily() {
			return &InvalidOptionStateError{
				Option: fo.Name(),
				Reason: fmt.Sprintf("%s's plan must cover the whole family when %s has no plan", holder, holder.Other()),
			}
		}
		if fo.Dependent != CoverageUnder(holder) {
			return &InvalidOptionStateError{
				Option: fo.Name(),
				Reason: fmt.Sprintf("dependent must be under %s, got %s", holder, fo.Dependent),
			}
		}
		return nil
	}

	var want DependentCoverage
	switch dad, mom := fo.DadPlan.CoversChildren(), fo.MomPlan.CoversChildren(); {
	case dad && mom:
		want = UnderBoth
	case dad:
		want = UnderDad
	case mom:
		want = UnderMom
	default:
		return &InvalidOptionStateError{Option: fo.Name(), Reason: "dependent is not covered by either plan"}
	}
	if fo.Dependent != want {
		return &InvalidOptionStateError{
			Option: fo.Name(),
			Reason: fmt.Sprintf("dependent designation %s does not match elections (want %s)", fo.Dependent, want),
		}
	}
	return nil
}

// IsSoleCoverage reports whether exactly one adult holds a plan
func (fo FamilyOption) IsSoleCoverage() bool {
	return (fo.DadPlan == nil) != (fo.MomPlan == nil)
}

// SoleHolder returns the adult whose plan covers everyone. Only meaningful when
// IsSoleCoverage is true.
func (fo FamilyOption) SoleHolder() (Adult, *PlanInstance) {
	if fo.MomPlan == nil {
		return Dad, fo.DadPlan
	}
	return Mom, fo.MomPlan
}

// Plan returns an adult's own plan, or nil
func (fo FamilyOption) Plan(a Adult) *PlanInstance {
	if a == Dad {
		return fo.DadPlan
	}
	return fo.MomPlan
}

// Name renders "mom|dad|dependent", for example
// "cigna:self_children|premera:self_spouse|mom" or "none|premera:self_family|dad".
func (fo FamilyOption) Name() string {
	return planLabel(fo.MomPlan) + "|" + planLabel(fo.DadPlan) + "|" + fo.Dependent.String()
}

func (fo FamilyOption) String() string {
	return fo.Name()
}

func planLabel(pi *PlanInstance) string {
	if pi == nil {
		return "none"
	}
	return pi.Label()
}
