package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for use by the CLI
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_expenses", createSetExpenses)
	registry.Register("adjust_expenses", createAdjustExpenses)
	registry.Register("scale_expenses", createScaleExpenses)
	registry.Register("set_tax_rate", createSetTaxRate)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_expenses:member=dad,delta=5000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func memberParam(transform string, params map[string]string) (Member, error) {
	raw, ok := params["member"]
	if !ok {
		return "", fmt.Errorf("%s requires 'member' parameter", transform)
	}
	return ParseMember(raw)
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func createSetExpenses(params map[string]string) (ScenarioTransform, error) {
	member, err := memberParam("set_expenses", params)
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam("set_expenses", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetExpenses{Member: member, Amount: amount}, nil
}

func createAdjustExpenses(params map[string]string) (ScenarioTransform, error) {
	member, err := memberParam("adjust_expenses", params)
	if err != nil {
		return nil, err
	}
	delta, err := decimalParam("adjust_expenses", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustExpenses{Member: member, Delta: delta}, nil
}

func createScaleExpenses(params map[string]string) (ScenarioTransform, error) {
	member, err := memberParam("scale_expenses", params)
	if err != nil {
		return nil, err
	}
	factor, err := decimalParam("scale_expenses", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Member: member, Factor: factor}, nil
}

func createSetTaxRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_tax_rate", "rate", params)
	if err != nil {
		return nil, err
	}
	return &SetTaxRate{Rate: rate}, nil
}
