package calculation

import (
	"fmt"

	"github.com/rgehrsitz/medplan/internal/catalog"
	"github.com/rgehrsitz/medplan/internal/domain"
)

// CalculationEngine enumerates the family options of a catalog once and prices
// them for any number of scenarios.
type CalculationEngine struct {
	Catalog    *catalog.Catalog
	Enumerator *Enumerator
	Evaluator  *CostEvaluator
	Logger     Logger

	options []domain.FamilyOption
}

// NewCalculationEngine creates an engine over the given catalog and rules
func NewCalculationEngine(cat *catalog.Catalog, rules domain.EvaluationRules) (*CalculationEngine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	enum := NewEnumerator(cat)
	options, err := enum.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("enumerate options: %w", err)
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("catalog yields no family options")
	}

	return &CalculationEngine{
		Catalog:    cat,
		Enumerator: enum,
		Evaluator:  NewCostEvaluator(rules),
		Logger:     NopLogger{},
		options:    options,
	}, nil
}

// NewDefaultCalculationEngine creates an engine over the built-in catalog and rules
func NewDefaultCalculationEngine() *CalculationEngine {
	engine, err := NewCalculationEngine(catalog.Default(), domain.DefaultEvaluationRules())
	if err != nil {
		panic(fmt.Sprintf("default engine: %v", err))
	}
	return engine
}

// NewCalculationEngineFromConfig creates an engine from a loaded configuration
func NewCalculationEngineFromConfig(config *domain.Configuration) (*CalculationEngine, error) {
	cat, err := catalog.New(config.Plans)
	if err != nil {
		return nil, err
	}
	return NewCalculationEngine(cat, config.Rules)
}

// SetLogger sets the engine's logger. nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Options returns a copy of the enumerated options in enumeration order
func (ce *CalculationEngine) Options() []domain.FamilyOption {
	return append([]domain.FamilyOption(nil), ce.options...)
}

// EvaluateAll prices every option for the scenario, in enumeration order
func (ce *CalculationEngine) EvaluateAll(s domain.Scenario) ([]domain.Evaluation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	evals := make([]domain.Evaluation, 0, len(ce.options))
	for _, opt := range ce.options {
		eval, err := ce.Evaluator.Evaluate(opt, s)
		if err != nil {
			return nil, err
		}
		ce.Logger.Debugf("%s: dad=%s mom=%s surcharge=%s total=%s", opt.Name(),
			eval.DadCost.StringFixed(2), eval.MomCost.StringFixed(2),
			eval.Surcharge.StringFixed(2), eval.Total.StringFixed(2))
		evals = append(evals, eval)
	}
	return evals, nil
}

// Best returns the cheapest option for the scenario
func (ce *CalculationEngine) Best(s domain.Scenario) (domain.Evaluation, error) {
	evals, err := ce.EvaluateAll(s)
	if err != nil {
		return domain.Evaluation{}, err
	}
	best, err := BestOption(evals)
	if err != nil {
		return domain.Evaluation{}, err
	}
	ce.Logger.Infof("best option for %s: %s at %s", s, best.Name(), best.Total.StringFixed(2))
	return best, nil
}

// Rank returns every option for the scenario, cheapest first
func (ce *CalculationEngine) Rank(s domain.Scenario) ([]domain.Evaluation, error) {
	evals, err := ce.EvaluateAll(s)
	if err != nil {
		return nil, err
	}
	return RankEvaluations(evals), nil
}

// Report evaluates the scenario and bundles the ranking with its winner
func (ce *CalculationEngine) Report(s domain.Scenario) (*domain.Report, error) {
	ranked, err := ce.Rank(s)
	if err != nil {
		return nil, err
	}
	ce.Logger.Infof("evaluated %d options for %s", len(ranked), s)
	return &domain.Report{
		Scenario: s,
		Rules:    ce.Evaluator.Rules,
		Best:     ranked[0],
		Ranked:   ranked,
	}, nil
}
