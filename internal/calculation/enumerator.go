package calculation

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// PlanResolver is the part of the catalog the enumerator needs
type PlanResolver interface {
	Resolve(planID string, spouse, children bool) (*domain.PlanInstance, error)
	PlanIDs(sponsor domain.Adult) []string
}

// election is one (spouse, children) choice for an adult's plan
type election struct {
	spouse   bool
	children bool
}

// elections in enumeration order: self, +spouse, +children, +family
var elections = []election{
	{false, false},
	{true, false},
	{false, true},
	{true, true},
}

// noPlan marks the "adult has no plan of their own" candidate
const noPlan = ""

// Enumerator builds every valid family option from a catalog
type Enumerator struct {
	plans PlanResolver
}

// NewEnumerator creates an enumerator over the given catalog
func NewEnumerator(plans PlanResolver) *Enumerator {
	return &Enumerator{plans: plans}
}

// Enumerate returns every valid option in a deterministic order: dad's plans then
// "none" in the outer loop, mom's plans then "none" next, then dad's and mom's
// elections. An adult without a plan is covered as the other adult's spouse, so
// the remaining plan must cover the whole family and yields exactly one option.
func (e *Enumerator) Enumerate() ([]domain.FamilyOption, error) {
	dadIDs := append(e.plans.PlanIDs(domain.Dad), noPlan)
	momIDs := append(e.plans.PlanIDs(domain.Mom), noPlan)

	var options []domain.FamilyOption
	for _, dadID := range dadIDs {
		for _, momID := range momIDs {
			switch {
			case dadID == noPlan && momID == noPlan:
				continue

			case dadID == noPlan:
				opt, err := e.soleCoverage(domain.Mom, momID)
				if err != nil {
					return nil, err
				}
				options = append(options, opt)

			case momID == noPlan:
				opt, err := e.soleCoverage(domain.Dad, dadID)
				if err != nil {
					return nil, err
				}
				options = append(options, opt)

			default:
				pairs, err := e.bothCovered(dadID, momID)
				if err != nil {
					return nil, err
				}
				options = append(options, pairs...)
			}
		}
	}
	return options, nil
}

func (e *Enumerator) soleCoverage(holder domain.Adult, planID string) (domain.FamilyOption, error) {
	plan, err := e.plans.Resolve(planID, true, true)
	if err != nil {
		return domain.FamilyOption{}, fmt.Errorf("resolve %s plan: %w", holder, err)
	}
	return domain.SoleCoverageOption(holder, plan)
}

func (e *Enumerator) bothCovered(dadID, momID string) ([]domain.FamilyOption, error) {
	var options []domain.FamilyOption
	for _, de := range elections {
		for _, me := range elections {
			var dependent domain.DependentCoverage
			switch {
			case de.children && me.children:
				dependent = domain.UnderBoth
			case de.children:
				dependent = domain.UnderDad
			case me.children:
				dependent = domain.UnderMom
			default:
				// dependent would be uncovered
				continue
			}

			dad, err := e.plans.Resolve(dadID, de.spouse, de.children)
			if err != nil {
				return nil, fmt.Errorf("resolve dad plan: %w", err)
			}
			mom, err := e.plans.Resolve(momID, me.spouse, me.children)
			if err != nil {
				return nil, fmt.Errorf("resolve mom plan: %w", err)
			}
			opt, err := domain.NewFamilyOption(dad, mom, dependent)
			if err != nil {
				return nil, err
			}
			options = append(options, opt)
		}
	}
	return options, nil
}
