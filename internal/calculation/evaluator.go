package calculation

import (
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// CostEvaluator prices family options under the configured business rules
type CostEvaluator struct {
	Rules domain.EvaluationRules
}

// NewCostEvaluator creates an evaluator with the given rules
func NewCostEvaluator(rules domain.EvaluationRules) *CostEvaluator {
	return &CostEvaluator{Rules: rules}
}

// NewDefaultCostEvaluator creates an evaluator with the default rules
func NewDefaultCostEvaluator() *CostEvaluator {
	return NewCostEvaluator(domain.DefaultEvaluationRules())
}

// Evaluate prices one option. Expenses billed to the same plan are pooled so the
// plan's single out-of-pocket maximum applies to their sum.
func (ce *CostEvaluator) Evaluate(option domain.FamilyOption, s domain.Scenario) (domain.Evaluation, error) {
	eval := domain.Evaluation{Option: option}

	switch {
	case option.DadPlan == nil && option.MomPlan == nil:
		return eval, &domain.InvalidOptionStateError{Option: option.Name(), Reason: "no adult plan"}

	case option.MomPlan == nil:
		eval.DadCost = option.DadPlan.Cost(s.TotalExpenses(), s.TaxRate)
		eval.Surcharge = ce.Rules.Surcharge(domain.Dad)

	case option.DadPlan == nil:
		eval.MomCost = option.MomPlan.Cost(s.TotalExpenses(), s.TaxRate)
		eval.Surcharge = ce.Rules.Surcharge(domain.Mom)

	default:
		var babyWith domain.Adult
		switch option.Dependent {
		case domain.UnderBoth:
			babyWith = ce.primary()
		case domain.UnderDad:
			babyWith = domain.Dad
		case domain.UnderMom:
			babyWith = domain.Mom
		default:
			return eval, &domain.InvalidOptionStateError{
				Option: option.Name(),
				Reason: "unknown dependent designation " + option.Dependent.String(),
			}
		}

		dadExpenses, momExpenses := s.DadExpenses, s.MomExpenses
		if babyWith == domain.Dad {
			dadExpenses = dadExpenses.Add(s.BabyExpenses)
		} else {
			momExpenses = momExpenses.Add(s.BabyExpenses)
		}
		eval.DadCost = option.DadPlan.Cost(dadExpenses, s.TaxRate)
		eval.MomCost = option.MomPlan.Cost(momExpenses, s.TaxRate)
	}

	eval.Total = eval.DadCost.Add(eval.MomCost).Add(eval.Surcharge)
	return eval, nil
}

// TotalCost is Evaluate without the breakdown
func (ce *CostEvaluator) TotalCost(option domain.FamilyOption, s domain.Scenario) (decimal.Decimal, error) {
	eval, err := ce.Evaluate(option, s)
	if err != nil {
		return decimal.Zero, err
	}
	return eval.Total, nil
}

// primary is the adult whose plan pays first for a dependent on both plans
func (ce *CostEvaluator) primary() domain.Adult {
	if ce.Rules.DependentPrimary == domain.Dad {
		return domain.Dad
	}
	return domain.Mom
}
