package recommender

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/storewise/recommender/agent/contract"
)

func TestCustomerAgentDecodesModelReply(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{
		"interests": ["gaming", "audio"],
		"purchasePatterns": {
			"frequency": "high",
			"averageSpend": 250,
			"preferredCategories": ["electronics"]
		},
		"predictions": {
			"likelyToBuy": ["headphones"],
			"priceRange": "200-400",
			"stylePreferences": ["modern"]
		}
	}`}

	agent, err := NewCustomerAgent(customerConfig(true), gen)
	if err != nil {
		t.Fatalf("NewCustomerAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(), contractx.Customer{
		ID:          "C1",
		Name:        "Alice",
		Preferences: []string{"electronics"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if gen.calls != 1 {
		t.Fatalf("expected one generator call, got %d", gen.calls)
	}
	if insight.Source != contractx.SourceModel {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceModel)
	}
	if insight.Confidence != customerModelConfidence {
		t.Fatalf("Confidence = %v, want %v", insight.Confidence, customerModelConfidence)
	}
	if insight.CustomerID != "C1" {
		t.Fatalf("CustomerID = %q, want C1", insight.CustomerID)
	}
	if len(insight.Interests) != 2 || insight.Interests[0] != "gaming" {
		t.Fatalf("unexpected interests: %v", insight.Interests)
	}
	if insight.PurchasePatterns.AverageSpend != 250 {
		t.Fatalf("AverageSpend = %v, want 250", insight.PurchasePatterns.AverageSpend)
	}
	if insight.Predictions.PriceRange != "200-400" {
		t.Fatalf("PriceRange = %q", insight.Predictions.PriceRange)
	}
	if insight.Reasoning == "" {
		t.Fatal("expected raw model reply preserved as reasoning")
	}
}

func TestCustomerAgentFallbackOnUndecodableReply(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: "sorry, I cannot answer in JSON today"}

	agent, err := NewCustomerAgent(customerConfig(true), gen)
	if err != nil {
		t.Fatalf("NewCustomerAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(), contractx.Customer{
		ID:          "C1",
		Name:        "Alice",
		Preferences: []string{"electronics", "books"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if insight.Source != contractx.SourceFallback {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceFallback)
	}
	if insight.Confidence != customerFallbackConfidence {
		t.Fatalf("Confidence = %v, want %v", insight.Confidence, customerFallbackConfidence)
	}
	if len(insight.Interests) != 2 || insight.Interests[0] != "electronics" {
		t.Fatalf("fallback interests should mirror preferences, got %v", insight.Interests)
	}
	if insight.PurchasePatterns.Frequency != "medium" {
		t.Fatalf("Frequency = %q, want medium", insight.PurchasePatterns.Frequency)
	}
	if !strings.Contains(insight.Reasoning, gen.response) {
		t.Fatal("fallback reasoning should carry the raw reply")
	}
}

func TestCustomerAgentDisabledSkipsGateway(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{response: `{}`}

	agent, err := NewCustomerAgent(customerConfig(false), gen)
	if err != nil {
		t.Fatalf("NewCustomerAgent() error = %v", err)
	}

	insight, err := agent.Analyze(context.Background(), contractx.Customer{ID: "C1", Name: "Alice"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if gen.calls != 0 {
		t.Fatalf("disabled agent must not call the gateway, got %d calls", gen.calls)
	}
	if insight.Source != contractx.SourceDisabled {
		t.Fatalf("Source = %q, want %q", insight.Source, contractx.SourceDisabled)
	}
	if insight.Confidence != 0 {
		t.Fatalf("Confidence = %v, want 0", insight.Confidence)
	}
}

func TestCustomerAgentPropagatesGeneratorError(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("backend down")
	agent, err := NewCustomerAgent(customerConfig(true), &fakeGenerator{err: wantErr})
	if err != nil {
		t.Fatalf("NewCustomerAgent() error = %v", err)
	}

	_, err = agent.Analyze(context.Background(), contractx.Customer{ID: "C1", Name: "Alice"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected generator error, got %v", err)
	}
}

func TestNewCustomerAgentRejectsWrongType(t *testing.T) {
	t.Parallel()

	_, err := NewCustomerAgent(productConfig(true), &fakeGenerator{})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
