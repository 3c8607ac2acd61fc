package recommender

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/storewise/recommender/agent/contract"
)

func TestProductAgentDecodesModelReply(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{
		"similarProducts": ["P2"],
		"complementaryProducts": ["P3"],
		"targetDemographic": ["gamers"],
		"seasonality": "holiday peak",
		"priceCompetitiveness": "competitive"
	}`}

	agent, err := NewProductAgent(productConfig(true), gen)
	if err != nil {
		t.Fatalf("NewProductAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(),
		contractx.Product{ID: "P1", Name: "Console", Category: "electronics", Price: 499},
		[]contractx.Product{{ID: "P2", Name: "Controller", Category: "electronics"}},
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if insight.Source != contractx.SourceModel {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceModel)
	}
	if insight.Confidence != productModelConfidence {
		t.Fatalf("Confidence = %v, want %v", insight.Confidence, productModelConfidence)
	}
	if insight.Seasonality != "holiday peak" {
		t.Fatalf("Seasonality = %q", insight.Seasonality)
	}
	if len(insight.SimilarProducts) != 1 || insight.SimilarProducts[0] != "P2" {
		t.Fatalf("unexpected similar products: %v", insight.SimilarProducts)
	}
}

func TestProductAgentNullSeasonality(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{
		"similarProducts": [],
		"complementaryProducts": [],
		"targetDemographic": [],
		"seasonality": null,
		"priceCompetitiveness": "budget"
	}`}

	agent, err := NewProductAgent(productConfig(true), gen)
	if err != nil {
		t.Fatalf("NewProductAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(),
		contractx.Product{ID: "P1", Name: "Cable", Category: "electronics", Price: 9},
		nil,
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if insight.Seasonality != "" {
		t.Fatalf("Seasonality = %q, want empty", insight.Seasonality)
	}
}

func TestProductAgentFallbackDerivesFromRelated(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "not json"}

	agent, err := NewProductAgent(productConfig(true), gen)
	if err != nil {
		t.Fatalf("NewProductAgent() error = %v", err)
	}

	related := []contractx.Product{
		{ID: "P2"}, {ID: "P3"}, {ID: "P4"}, {ID: "P5"}, {ID: "P6"},
	}
	insight, err := agent.Analyze(context.Background(),
		contractx.Product{ID: "P1", Name: "Laptop", Category: "electronics", Price: 1200},
		related,
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if insight.Source != contractx.SourceFallback {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceFallback)
	}
	if insight.Confidence != productFallbackConfidence {
		t.Fatalf("Confidence = %v, want %v", insight.Confidence, productFallbackConfidence)
	}
	wantSimilar := []string{"P2", "P3", "P4"}
	if len(insight.SimilarProducts) != len(wantSimilar) {
		t.Fatalf("similar = %v, want %v", insight.SimilarProducts, wantSimilar)
	}
	for i, id := range wantSimilar {
		if insight.SimilarProducts[i] != id {
			t.Fatalf("similar = %v, want %v", insight.SimilarProducts, wantSimilar)
		}
	}
	wantComplementary := []string{"P5", "P6"}
	if len(insight.ComplementaryProducts) != len(wantComplementary) {
		t.Fatalf("complementary = %v, want %v", insight.ComplementaryProducts, wantComplementary)
	}
	if insight.PriceCompetitiveness != "premium" {
		t.Fatalf("PriceCompetitiveness = %q, want premium for price above threshold", insight.PriceCompetitiveness)
	}
	if insight.Seasonality != "high demand in Q4" {
		t.Fatalf("Seasonality = %q", insight.Seasonality)
	}
}

func TestProductAgentFallbackCheapProductIsCompetitive(t *testing.T) {
	t.Parallel()

	agent, err := NewProductAgent(productConfig(true), &fakeGenerator{response: "not json"})
	if err != nil {
		t.Fatalf("NewProductAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(),
		contractx.Product{ID: "P1", Name: "Mousepad", Category: "electronics", Price: 15},
		nil,
	)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if insight.PriceCompetitiveness != "competitive" {
		t.Fatalf("PriceCompetitiveness = %q, want competitive", insight.PriceCompetitiveness)
	}
	if len(insight.SimilarProducts) != 0 || len(insight.ComplementaryProducts) != 0 {
		t.Fatalf("expected empty relationship lists, got %v / %v", insight.SimilarProducts, insight.ComplementaryProducts)
	}
}

func TestProductAgentDisabledSkipsGateway(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{}`}
	agent, err := NewProductAgent(productConfig(false), gen)
	if err != nil {
		t.Fatalf("NewProductAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(), contractx.Product{ID: "P1", Name: "Desk"}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("disabled agent must not call the gateway, got %d calls", gen.calls)
	}
	if insight.Source != contractx.SourceDisabled {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceDisabled)
	}
}

func TestNewProductAgentRejectsWrongType(t *testing.T) {
	t.Parallel()

	_, err := NewProductAgent(engineConfig(true), &fakeGenerator{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
