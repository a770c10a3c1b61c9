package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/rgehrsitz/medplan/internal/tui/tuistyles"
)

// RankingTable renders ranked evaluations, cheapest first, with the best row highlighted
type RankingTable struct {
	Ranked []domain.Evaluation
	Rows   int
}

// NewRankingTable creates a table showing at most rows evaluations
func NewRankingTable(ranked []domain.Evaluation, rows int) *RankingTable {
	return &RankingTable{Ranked: ranked, Rows: rows}
}

// Render returns the table
func (t *RankingTable) Render() string {
	if len(t.Ranked) == 0 {
		return tuistyles.SubtitleStyle.Render("No options evaluated")
	}

	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%3s  %-46s %10s %10s", "#", "Option", "Total", "vs Best")))
	sb.WriteString("\n")

	best := t.Ranked[0].Total
	for i, e := range t.Ranked {
		if t.Rows > 0 && i >= t.Rows {
			sb.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("     ... %d more", len(t.Ranked)-i)))
			break
		}
		diff := ""
		if i > 0 {
			diff = "+" + tuistyles.FormatCurrency(e.Total.Sub(best))
		}
		line := fmt.Sprintf("%3d  %-46s %10s %10s", i+1, e.Name(), tuistyles.FormatCurrency(e.Total), diff)
		if i == 0 {
			sb.WriteString(tuistyles.TableHighlightStyle.Render(line))
		} else {
			sb.WriteString(tuistyles.TableCellStyle.Render(line))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
