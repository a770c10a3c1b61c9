package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with common what-if years
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "light_year",
		Description: "Everyone uses half the expected care",
		Transforms: []ScenarioTransform{
			&ScaleExpenses{Member: MemberAll, Factor: decimal.NewFromFloat(0.5)},
		},
	})

	registry.Register(Template{
		Name:        "heavy_year",
		Description: "Everyone uses twice the expected care",
		Transforms: []ScenarioTransform{
			&ScaleExpenses{Member: MemberAll, Factor: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "baby_hospital_stay",
		Description: "Add a $15,000 hospital stay for the baby",
		Transforms: []ScenarioTransform{
			&AdjustExpenses{Member: MemberBaby, Delta: decimal.NewFromInt(15000)},
		},
	})

	registry.Register(Template{
		Name:        "dad_surgery",
		Description: "Add a $25,000 surgery for dad",
		Transforms: []ScenarioTransform{
			&AdjustExpenses{Member: MemberDad, Delta: decimal.NewFromInt(25000)},
		},
	})

	registry.Register(Template{
		Name:        "second_pregnancy",
		Description: "Add $12,000 of maternity care for mom",
		Transforms: []ScenarioTransform{
			&AdjustExpenses{Member: MemberMom, Delta: decimal.NewFromInt(12000)},
		},
	})

	registry.Register(Template{
		Name:        "no_tax_benefit",
		Description: "HSA contributions save no tax",
		Transforms: []ScenarioTransform{
			&SetTaxRate{Rate: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "top_bracket",
		Description: "Marginal tax rate of 37%",
		Transforms: []ScenarioTransform{
			&SetTaxRate{Rate: decimal.NewFromFloat(0.37)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base domain.Scenario, template Template) (domain.Scenario, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Utilization": {},
		"Events":      {},
		"Tax":         {},
	}
	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasSuffix(name, "_year"):
			categories["Utilization"] = append(categories["Utilization"], template)
		case len(template.Transforms) > 0 && isTaxOnly(template):
			categories["Tax"] = append(categories["Tax"], template)
		default:
			categories["Events"] = append(categories["Events"], template)
		}
	}

	for _, category := range []string{"Utilization", "Events", "Tax"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  medplan evaluate --template heavy_year,top_bracket\n")
	sb.WriteString("  medplan rank --what-if adjust_expenses:member=dad,delta=5000\n")

	return sb.String()
}

func isTaxOnly(t Template) bool {
	for _, tr := range t.Transforms {
		if _, ok := tr.(*SetTaxRate); !ok {
			return false
		}
	}
	return true
}
