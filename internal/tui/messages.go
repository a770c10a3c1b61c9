package tui

import (
	"github.com/rgehrsitz/medplan/internal/domain"
)

// Message types for the Bubble Tea update cycle

// RankingCompleteMsg carries the ranked options for a scenario
type RankingCompleteMsg struct {
	Scenario domain.Scenario
	Ranked   []domain.Evaluation
	Err      error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
