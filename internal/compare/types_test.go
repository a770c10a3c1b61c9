package compare

import (
	"testing"

	"github.com/rgehrsitz/medplan/internal/calculation"
	"github.com/rgehrsitz/medplan/internal/domain"
	"github.com/shopspring/decimal"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()

	ranked, err := calculation.NewDefaultCalculationEngine().Rank(domain.DefaultScenario())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result := calc.CalculateMetrics(1, ranked[0])

	if result.OptionName != "sph:self_only|premera:self_family|dad" {
		t.Errorf("Expected best option name, got %s", result.OptionName)
	}
	if result.Rank != 1 {
		t.Errorf("Expected rank 1, got %d", result.Rank)
	}
	if !result.Total.Equal(decimal.NewFromInt(1240)) {
		t.Errorf("Expected total 1240, got %s", result.Total.String())
	}
	if !result.DiffFromBase.IsZero() {
		t.Errorf("Expected no diff before comparison, got %s", result.DiffFromBase.String())
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	calc := NewMetricsCalculator()

	tests := []struct {
		name string
		base int64
		alt  int64
		diff string
		pct  string
	}{
		{name: "positive base", base: 1240, alt: 5200, diff: "3960.00", pct: "319.35"},
		{name: "negative base", base: -3660, alt: -3000, diff: "660.00", pct: "18.03"},
		{name: "zero base", base: 0, alt: 500, diff: "500.00", pct: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := ComparisonResult{OptionName: "Base", Total: decimal.NewFromInt(tt.base)}
			alt := ComparisonResult{OptionName: "Alternative", Total: decimal.NewFromInt(tt.alt)}

			result := calc.CalculateComparison(alt, base)

			if result.DiffFromBase.StringFixed(2) != tt.diff {
				t.Errorf("Expected diff %s, got %s", tt.diff, result.DiffFromBase.StringFixed(2))
			}
			if result.PctFromBase.StringFixed(2) != tt.pct {
				t.Errorf("Expected pct %s, got %s", tt.pct, result.PctFromBase.StringFixed(2))
			}
		})
	}
}

func TestGenerateRecommendations(t *testing.T) {
	ranked, err := calculation.NewDefaultCalculationEngine().Rank(domain.DefaultScenario())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	base := NewMetricsCalculator().CalculateMetrics(1, ranked[0])
	compSet := &ComparisonSet{BaseOptionName: base.OptionName, BaseResult: &base}

	recommendations := GenerateRecommendations(compSet, ranked)

	if len(recommendations) == 0 {
		t.Fatal("Expected recommendations")
	}
	if recommendations[0] != "Best Option: sph:self_only|premera:self_family|dad costs $1240 per year" {
		t.Errorf("Unexpected first recommendation: %s", recommendations[0])
	}

	// the best option already keeps both adults on their own plans
	for _, rec := range recommendations {
		if contains(rec, "Both On Own Plans") {
			t.Errorf("Did not expect a both-plans recommendation: %s", rec)
		}
	}

	want := "Single Plan: covering everyone on mom's plan (sph:self_family|none|mom) costs $3960 more than the best option"
	if recommendations[len(recommendations)-1] != want {
		t.Errorf("Expected %q, got %q", want, recommendations[len(recommendations)-1])
	}
}

func TestGenerateRecommendations_CloseCall(t *testing.T) {
	options := calculation.NewDefaultCalculationEngine().Options()
	ranked := []domain.Evaluation{
		{Option: options[50], Total: decimal.NewFromInt(1000)},
		{Option: options[0], Total: decimal.NewFromInt(1100)},
		{Option: options[24], Total: decimal.NewFromInt(5000)},
	}
	base := NewMetricsCalculator().CalculateMetrics(1, ranked[0])
	compSet := &ComparisonSet{BaseOptionName: base.OptionName, BaseResult: &base}

	// the best option is itself single-plan, so no single-plan recommendation follows
	recommendations := GenerateRecommendations(compSet, ranked)

	expected := []string{
		"Best Option: cigna:self_family|none|mom costs $1000 per year",
		"Close Call: cigna:self_children|premera:self_only|mom is only $100 more",
		"Both On Own Plans: cigna:self_children|premera:self_only|mom costs $100 more than the best option",
	}
	if len(recommendations) != len(expected) {
		t.Fatalf("Expected %d recommendations, got %d: %v", len(expected), len(recommendations), recommendations)
	}
	for i := range expected {
		if recommendations[i] != expected[i] {
			t.Errorf("Recommendation %d: expected %q, got %q", i, expected[i], recommendations[i])
		}
	}
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	if recs := GenerateRecommendations(&ComparisonSet{}, nil); len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}
