// Package catalog holds the read-only table of plan rates and resolves
// coverage elections to rate rows.
package catalog

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// Catalog maps plan ids to their rate tables. It is never mutated after New
// and is safe to share between goroutines.
type Catalog struct {
	specs []domain.PlanSpec
	byID  map[string]int
}

// New validates the specs and builds a catalog in the given order
func New(specs []domain.PlanSpec) (*Catalog, error) {
	c := &Catalog{
		specs: make([]domain.PlanSpec, 0, len(specs)),
		byID:  make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("plan %d: %w", i, err)
		}
		if _, dup := c.byID[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate plan id %q", spec.ID)
		}
		c.byID[spec.ID] = len(c.specs)
		c.specs = append(c.specs, spec)
	}
	return c, nil
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := New(domain.DefaultPlanCatalog())
	if err != nil {
		panic(fmt.Sprintf("built-in plan catalog is invalid: %v", err))
	}
	return c
}

// Spec returns the catalog entry for a plan id
func (c *Catalog) Spec(planID string) (domain.PlanSpec, error) {
	i, ok := c.byID[planID]
	if !ok {
		return domain.PlanSpec{}, &domain.UnknownPlanError{PlanID: planID}
	}
	return c.specs[i], nil
}

// Lookup returns the rate row of a plan at a tier
func (c *Catalog) Lookup(planID string, tier domain.CoverageTier) (domain.PlanParameters, error) {
	spec, err := c.Spec(planID)
	if err != nil {
		return domain.PlanParameters{}, err
	}
	row, ok := spec.Tiers.Row(tier)
	if !ok {
		return domain.PlanParameters{}, fmt.Errorf("plan %s has no tier %s", planID, tier)
	}
	return row, nil
}

// Resolve binds a plan to an election using the plan's tier policy
func (c *Catalog) Resolve(planID string, spouse, children bool) (*domain.PlanInstance, error) {
	spec, err := c.Spec(planID)
	if err != nil {
		return nil, err
	}
	return domain.NewPlanInstance(spec, spouse, children), nil
}

// PlanIDs returns the ids offered through one adult's employer, in catalog order
func (c *Catalog) PlanIDs(sponsor domain.Adult) []string {
	var ids []string
	for _, spec := range c.specs {
		if spec.Sponsor == sponsor {
			ids = append(ids, spec.ID)
		}
	}
	return ids
}

// Specs returns a copy of every catalog entry
func (c *Catalog) Specs() []domain.PlanSpec {
	return append([]domain.PlanSpec(nil), c.specs...)
}

// Len is the number of plans
func (c *Catalog) Len() int {
	return len(c.specs)
}
