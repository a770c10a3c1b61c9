package catalog

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, 4, c.Len())
	assert.Equal(t, []string{"premera", "surest"}, c.PlanIDs(domain.Dad))
	assert.Equal(t, []string{"cigna", "sph"}, c.PlanIDs(domain.Mom))
}

func TestLookup(t *testing.T) {
	c := Default()

	row, err := c.Lookup("cigna", domain.SelfChildren)
	require.NoError(t, err)
	assert.True(t, row.Premium.Equal(decimal.NewFromInt(840)))
	assert.True(t, row.OutOfPocketMax.Equal(decimal.NewFromInt(6600)))
	assert.True(t, row.EmployeeHSAContribution.Equal(decimal.NewFromInt(6550)))

	row, err = c.Lookup("premera", domain.SelfOnly)
	require.NoError(t, err)
	assert.True(t, row.EmployeeHSAContribution.Equal(decimal.NewFromInt(3300)), "individual limit minus match")
}

func TestLookup_UnknownPlan(t *testing.T) {
	c := Default()

	_, err := c.Lookup("aetna", domain.SelfOnly)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownPlan))

	var upe *domain.UnknownPlanError
	require.True(t, errors.As(err, &upe))
	assert.Equal(t, "aetna", upe.PlanID)
}

func TestResolve_TierPolicies(t *testing.T) {
	c := Default()

	tests := []struct {
		plan     string
		spouse   bool
		children bool
		tier     domain.CoverageTier
		premium  int64
	}{
		{"premera", false, false, domain.SelfOnly, 0},
		{"premera", true, false, domain.SelfSpouse, 0},
		{"premera", false, true, domain.SelfSpouse, 0},
		{"premera", true, true, domain.SelfFamily, 0},
		{"cigna", false, false, domain.SelfOnly, 240},
		{"cigna", true, false, domain.SelfSpouse, 960},
		{"cigna", false, true, domain.SelfChildren, 840},
		{"cigna", true, true, domain.SelfFamily, 1200},
		{"sph", false, true, domain.SelfChildren, 840},
	}

	for _, tt := range tests {
		pi, err := c.Resolve(tt.plan, tt.spouse, tt.children)
		require.NoError(t, err)
		assert.Equal(t, tt.tier, pi.Tier, "%s spouse=%v children=%v", tt.plan, tt.spouse, tt.children)
		assert.True(t, pi.Params.Premium.Equal(decimal.NewFromInt(tt.premium)),
			"%s premium: got %s", tt.plan, pi.Params.Premium)
		assert.Equal(t, tt.spouse, pi.Spouse)
		assert.Equal(t, tt.children, pi.Children)
	}
}

func TestResolve_UnknownPlan(t *testing.T) {
	_, err := Default().Resolve("kaiser", true, true)
	assert.ErrorIs(t, err, domain.ErrUnknownPlan)
}

func TestNew_Rejects(t *testing.T) {
	valid := domain.DefaultPlanCatalog()[0]

	dup := []domain.PlanSpec{valid, valid}
	_, err := New(dup)
	assert.ErrorContains(t, err, "duplicate plan id")

	badPolicy := valid
	badPolicy.Policy = "tiered"
	_, err = New([]domain.PlanSpec{badPolicy})
	assert.ErrorContains(t, err, "tier_policy")

	badRow := valid
	badRow.Tiers.SelfFamily.OutOfPocketMax = decimal.NewFromInt(100)
	_, err = New([]domain.PlanSpec{badRow})
	assert.ErrorContains(t, err, "out_of_pocket_max")

	negative := valid
	negative.Tiers.SelfOnly.Premium = decimal.NewFromInt(-1)
	_, err = New([]domain.PlanSpec{negative})
	assert.ErrorContains(t, err, "premium cannot be negative")
}

func TestSpecs_ReturnsCopy(t *testing.T) {
	c := Default()
	specs := c.Specs()
	specs[0].ID = "changed"

	_, err := c.Spec("premera")
	assert.NoError(t, err)
	assert.Equal(t, "premera", c.Specs()[0].ID)
}
