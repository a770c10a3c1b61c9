package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/logging"
	"github.com/rgehrsitz/medplan/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// addScenarioFlags registers the flags that override the configured scenario
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().String("mom", "", "Mom's expected annual medical expenses")
	cmd.Flags().String("dad", "", "Dad's expected annual medical expenses")
	cmd.Flags().String("baby", "", "The dependent's expected annual medical expenses")
	cmd.Flags().String("tax", "", "Marginal tax rate as a fraction, e.g. 0.24")
	cmd.Flags().StringArray("what-if", nil, "Transform applied to the scenario, e.g. adjust_expenses:member=dad,delta=5000 (repeatable)")
	cmd.Flags().String("template", "", "Comma-separated built-in what-if templates (see 'medplan templates')")
}

// scenarioFromFlags applies any scenario flags the user set on top of base
func scenarioFromFlags(cmd *cobra.Command, base domain.Scenario) (domain.Scenario, error) {
	s := base
	fields := []struct {
		flag   string
		target *decimal.Decimal
	}{
		{"mom", &s.MomExpenses},
		{"dad", &s.DadExpenses},
		{"baby", &s.BabyExpenses},
		{"tax", &s.TaxRate},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		raw, _ := cmd.Flags().GetString(f.flag)
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("invalid --%s value %q: %w", f.flag, raw, err)
		}
		*f.target = value
	}
	if err := s.Validate(); err != nil {
		return domain.Scenario{}, err
	}
	return applyWhatIf(cmd, s)
}

// applyWhatIf applies --template then --what-if transforms, in the order given
func applyWhatIf(cmd *cobra.Command, s domain.Scenario) (domain.Scenario, error) {
	var transforms []transform.ScenarioTransform

	templateList, _ := cmd.Flags().GetString("template")
	templates := transform.CreateBuiltInTemplates()
	for _, name := range transform.ParseTemplateList(templateList) {
		tmpl, ok := templates.Get(name)
		if !ok {
			return domain.Scenario{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(templates.List(), ", "))
		}
		transforms = append(transforms, tmpl.Transforms...)
	}

	specs, _ := cmd.Flags().GetStringArray("what-if")
	registry := transform.NewTransformRegistry()
	for _, spec := range specs {
		tr, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return domain.Scenario{}, fmt.Errorf("invalid --what-if %q: %w", spec, err)
		}
		transforms = append(transforms, tr)
	}

	if len(transforms) == 0 {
		return s, nil
	}
	for _, tr := range transforms {
		logging.Debug("applying what-if", zap.String("transform", tr.Name()), zap.String("description", tr.Description()))
	}
	return transform.ApplyTransforms(s, transforms)
}
