package transform

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Member selects whose expenses a transform touches
type Member string

const (
	MemberMom  Member = "mom"
	MemberDad  Member = "dad"
	MemberBaby Member = "baby"
	MemberAll  Member = "all"
)

// ParseMember accepts mom, dad, baby or all
func ParseMember(s string) (Member, error) {
	switch m := Member(s); m {
	case MemberMom, MemberDad, MemberBaby, MemberAll:
		return m, nil
	}
	return "", fmt.Errorf("unknown member %q (want mom, dad, baby or all)", s)
}

// fields returns pointers to the expense fields of s selected by m
func (m Member) fields(s *domain.Scenario) []*decimal.Decimal {
	switch m {
	case MemberMom:
		return []*decimal.Decimal{&s.MomExpenses}
	case MemberDad:
		return []*decimal.Decimal{&s.DadExpenses}
	case MemberBaby:
		return []*decimal.Decimal{&s.BabyExpenses}
	case MemberAll:
		return []*decimal.Decimal{&s.MomExpenses, &s.DadExpenses, &s.BabyExpenses}
	}
	return nil
}

func (m Member) validate(name string) error {
	if _, err := ParseMember(string(m)); err != nil {
		return NewTransformError(name, "validate", "invalid member", err)
	}
	return nil
}

// SetExpenses replaces a member's expected expenses
type SetExpenses struct {
	Member Member
	Amount decimal.Decimal
}

func (st *SetExpenses) Name() string {
	return "set_expenses"
}

func (st *SetExpenses) Description() string {
	return fmt.Sprintf("Set %s expenses to $%s", st.Member, st.Amount.StringFixed(0))
}

func (st *SetExpenses) Validate(base domain.Scenario) error {
	if err := st.Member.validate(st.Name()); err != nil {
		return err
	}
	if st.Amount.IsNegative() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", st.Amount), nil)
	}
	return nil
}

func (st *SetExpenses) Apply(base domain.Scenario) (domain.Scenario, error) {
	modified := base
	for _, f := range st.Member.fields(&modified) {
		*f = st.Amount
	}
	return modified, nil
}

// AdjustExpenses adds Delta to a member's expenses. A negative delta may not
// take the expenses below zero.
type AdjustExpenses struct {
	Member Member
	Delta  decimal.Decimal
}

func (at *AdjustExpenses) Name() string {
	return "adjust_expenses"
}

func (at *AdjustExpenses) Description() string {
	if at.Delta.IsNegative() {
		return fmt.Sprintf("Reduce %s expenses by $%s", at.Member, at.Delta.Abs().StringFixed(0))
	}
	return fmt.Sprintf("Increase %s expenses by $%s", at.Member, at.Delta.StringFixed(0))
}

func (at *AdjustExpenses) Validate(base domain.Scenario) error {
	if err := at.Member.validate(at.Name()); err != nil {
		return err
	}
	for _, f := range at.Member.fields(&base) {
		if f.Add(at.Delta).IsNegative() {
			return NewTransformError(at.Name(), "validate",
				fmt.Sprintf("%s expenses of %s cannot be reduced by %s", at.Member, f.String(), at.Delta.Abs()), nil)
		}
	}
	return nil
}

func (at *AdjustExpenses) Apply(base domain.Scenario) (domain.Scenario, error) {
	modified := base
	for _, f := range at.Member.fields(&modified) {
		*f = f.Add(at.Delta)
	}
	return modified, nil
}

// ScaleExpenses multiplies a member's expenses by Factor
type ScaleExpenses struct {
	Member Member
	Factor decimal.Decimal
}

func (sc *ScaleExpenses) Name() string {
	return "scale_expenses"
}

func (sc *ScaleExpenses) Description() string {
	return fmt.Sprintf("Scale %s expenses by %s", sc.Member, sc.Factor)
}

func (sc *ScaleExpenses) Validate(base domain.Scenario) error {
	if err := sc.Member.validate(sc.Name()); err != nil {
		return err
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleExpenses) Apply(base domain.Scenario) (domain.Scenario, error) {
	modified := base
	for _, f := range sc.Member.fields(&modified) {
		*f = f.Mul(sc.Factor)
	}
	return modified, nil
}

// SetTaxRate replaces the marginal tax rate
type SetTaxRate struct {
	Rate decimal.Decimal
}

func (tr *SetTaxRate) Name() string {
	return "set_tax_rate"
}

func (tr *SetTaxRate) Description() string {
	return fmt.Sprintf("Set the marginal tax rate to %s%%", tr.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

func (tr *SetTaxRate) Validate(base domain.Scenario) error {
	if tr.Rate.IsNegative() || tr.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return NewTransformError(tr.Name(), "validate", fmt.Sprintf("rate must be in [0, 1), got %s", tr.Rate), nil)
	}
	return nil
}

func (tr *SetTaxRate) Apply(base domain.Scenario) (domain.Scenario, error) {
	modified := base
	modified.TaxRate = tr.Rate
	return modified, nil
}
