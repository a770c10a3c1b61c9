package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/tui/components"
)

// Field identifies an editable scenario value
type Field int

const (
	FieldMomExpenses Field = iota
	FieldDadExpenses
	FieldBabyExpenses
	FieldTaxRate
)

var (
	expenseStep = decimal.NewFromInt(500)
	expenseMax  = decimal.NewFromInt(100000)
	taxStep     = decimal.NewFromFloat(0.01)
	taxMax      = decimal.NewFromFloat(0.6)
)

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	config     *domain.Configuration
	configPath string
	calcEngine *calculation.CalculationEngine

	// Scenario editor
	initial domain.Scenario
	sliders []*components.ParameterSlider
	focused Field

	// Latest ranking and the best option before it
	ranked       []domain.Evaluation
	previousBest *domain.Evaluation

	keys keyMap
	help help.Model

	loading bool
	err     error
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev field")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next field")),
		Left:  key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Right: key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// NewModel creates the application model for cfg, starting from its scenario
func NewModel(cfg *domain.Configuration, configPath string) (Model, error) {
	engine, err := calculation.NewCalculationEngineFromConfig(cfg)
	if err != nil {
		return Model{}, fmt.Errorf("failed to build calculation engine: %w", err)
	}
	if err := cfg.Scenario.Validate(); err != nil {
		return Model{}, err
	}

	m := Model{
		width:      100,
		height:     30,
		config:     cfg,
		configPath: configPath,
		calcEngine: engine,
		initial:    cfg.Scenario,
		keys:       defaultKeyMap(),
		help:       help.New(),
		loading:    true,
	}
	m.sliders = buildSliders(cfg.Scenario)
	m.sliders[m.focused].SetFocused(true)
	return m, nil
}

// buildSliders creates one slider per field, widening a range when s starts beyond it
func buildSliders(s domain.Scenario) []*components.ParameterSlider {
	expense := func(label string, v decimal.Decimal) *components.ParameterSlider {
		return components.NewParameterSlider(label, v, decimal.Zero, decimal.Max(expenseMax, v), expenseStep)
	}
	tax := components.NewParameterSlider("Marginal tax rate", s.TaxRate, decimal.Zero, decimal.Max(taxMax, s.TaxRate), taxStep).
		WithFormat(func(d decimal.Decimal) string {
			return d.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
		})

	return []*components.ParameterSlider{
		FieldMomExpenses:  expense("Mom's expenses", s.MomExpenses),
		FieldDadExpenses:  expense("Dad's expenses", s.DadExpenses),
		FieldBabyExpenses: expense("Baby's expenses", s.BabyExpenses),
		FieldTaxRate:      tax,
	}
}

// Init starts the first ranking
func (m Model) Init() tea.Cmd {
	return calculateCmd(m.calcEngine, m.Scenario())
}

// Scenario is the scenario currently shown in the editor
func (m Model) Scenario() domain.Scenario {
	return domain.Scenario{
		MomExpenses:  m.sliders[FieldMomExpenses].Value,
		DadExpenses:  m.sliders[FieldDadExpenses].Value,
		BabyExpenses: m.sliders[FieldBabyExpenses].Value,
		TaxRate:      m.sliders[FieldTaxRate].Value,
	}
}

// Ranked returns the latest ranking
func (m Model) Ranked() []domain.Evaluation {
	return m.ranked
}

// Focused returns the selected field
func (m Model) Focused() Field {
	return m.focused
}

// calculateCmd returns a command that ranks every option for s
func calculateCmd(engine *calculation.CalculationEngine, s domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		ranked, err := engine.Rank(s)
		return RankingCompleteMsg{
			Scenario: s,
			Ranked:   ranked,
			Err:      err,
		}
	}
}

func (f Field) String() string {
	switch f {
	case FieldMomExpenses:
		return "Mom's expenses"
	case FieldDadExpenses:
		return "Dad's expenses"
	case FieldBabyExpenses:
		return "Baby's expenses"
	case FieldTaxRate:
		return "Tax rate"
	default:
		return "Unknown"
	}
}
