package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/medplan/internal/domain"
)

// BestOption returns the cheapest evaluation. Ties go to the earliest one.
func BestOption(evals []domain.Evaluation) (domain.Evaluation, error) {
	if len(evals) == 0 {
		return domain.Evaluation{}, fmt.Errorf("no options to select from")
	}
	best := evals[0]
	for _, e := range evals[1:] {
		if e.Total.LessThan(best.Total) {
			best = e
		}
	}
	return best, nil
}

// RankEvaluations returns a copy sorted by total cost, ties in original order
func RankEvaluations(evals []domain.Evaluation) []domain.Evaluation {
	ranked := append([]domain.Evaluation(nil), evals...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.LessThan(ranked[j].Total)
	})
	return ranked
}
