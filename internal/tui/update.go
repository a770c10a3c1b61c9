package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/medplan/internal/tui/components"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RankingCompleteMsg:
		// a slower calculation for an older scenario must not overwrite a newer one
		if msg.Scenario.String() != m.Scenario().String() {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		if len(m.ranked) > 0 {
			prev := m.ranked[0]
			m.previousBest = &prev
		}
		m.ranked = msg.Ranked
		m.err = nil
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m.adjust((*components.ParameterSlider).Decrement)

	case key.Matches(msg, m.keys.Right):
		return m.adjust((*components.ParameterSlider).Increment)

	case key.Matches(msg, m.keys.Reset):
		m.sliders = buildSliders(m.initial)
		m.sliders[m.focused].SetFocused(true)
		m.previousBest = nil
		m.ranked = nil
		m.loading = true
		return m, calculateCmd(m.calcEngine, m.Scenario())
	}

	return m, nil
}

// moveFocus selects the previous or next field, stopping at either end
func (m *Model) moveFocus(delta int) {
	next := int(m.focused) + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders = cloneSliders(m.sliders)
	m.sliders[m.focused].SetFocused(false)
	m.focused = Field(next)
	m.sliders[m.focused].SetFocused(true)
}

// adjust applies step to the focused slider and recalculates when the value moved
func (m Model) adjust(step func(*components.ParameterSlider) bool) (tea.Model, tea.Cmd) {
	m.sliders = cloneSliders(m.sliders)
	if !step(m.sliders[m.focused]) {
		return m, nil
	}
	m.loading = true
	return m, calculateCmd(m.calcEngine, m.Scenario())
}

// cloneSliders copies the sliders so earlier model values keep their own state
func cloneSliders(sliders []*components.ParameterSlider) []*components.ParameterSlider {
	out := make([]*components.ParameterSlider, len(sliders))
	for i, s := range sliders {
		c := *s
		out[i] = &c
	}
	return out
}
