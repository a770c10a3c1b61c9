package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/tui/components"
	"github.com/rgehrsitz/medplan/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	left := m.renderScenario()
	right := m.renderRanking()

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		body,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and config source
func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("MEDPLAN - Family Medical Plan Explorer")

	source := "built-in plans"
	if m.configPath != "" {
		source = m.configPath
	}
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d plans • %d options • %s",
		len(m.config.Plans), len(m.calcEngine.Options()), source))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

// renderScenario renders the editable scenario pane
func (m Model) renderScenario() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.SubtitleStyle.Render("SCENARIO"))
	sb.WriteString("\n\n")
	for _, s := range m.sliders {
		sb.WriteString(s.Render())
		sb.WriteString("\n")
	}

	rules := m.calcEngine.Evaluator.Rules
	sb.WriteString("\n")
	sb.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("Dependent primary: %s • Surcharge: dad %s, mom %s",
		rules.DependentPrimary,
		tuistyles.FormatCurrency(rules.Surcharge(domain.Dad)),
		tuistyles.FormatCurrency(rules.Surcharge(domain.Mom)))))

	return tuistyles.ActiveBorderStyle.Render(sb.String())
}

// renderRanking renders the best option card and the ranked table
func (m Model) renderRanking() string {
	if m.err != nil {
		return tuistyles.BorderStyle.Render(tuistyles.ErrorStyle.Render("Error: " + m.err.Error()))
	}
	if len(m.ranked) == 0 {
		return tuistyles.BorderStyle.Render("⠋ Calculating...")
	}

	best := m.ranked[0]
	card := components.NewMetricCard("Best option", best.Name()).
		WithDescription(fmt.Sprintf("Total %s (dad %s, mom %s, surcharge %s)",
			tuistyles.FormatCurrency(best.Total),
			tuistyles.FormatCurrency(best.DadCost),
			tuistyles.FormatCurrency(best.MomCost),
			tuistyles.FormatCurrency(best.Surcharge))).
		WithWidth(72)
	if m.previousBest != nil && !m.previousBest.Total.Equal(best.Total) {
		change := best.Total.Sub(m.previousBest.Total)
		card.WithTrend(change.IsNegative(), tuistyles.FormatCurrency(change.Abs()))
	}

	rows := m.height - 16
	if rows < 5 {
		rows = 5
	}
	table := components.NewRankingTable(m.ranked, rows).Render()

	return lipgloss.JoinVertical(lipgloss.Left, card.Render(), tuistyles.BorderStyle.Render(table))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.loading {
		status += "  " + tuistyles.SubtitleStyle.Render("recalculating")
	}
	return tuistyles.StatusBarStyle.Width(m.width).Render(status)
}
