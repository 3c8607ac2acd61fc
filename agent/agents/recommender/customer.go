// Package recommender holds the model-facing agents of the recommendation
// pipeline: the customer insight agent, the product insight agent, and the
// recommendation engine, plus the registry that assembles them from stored
// agent configs.
package recommender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/storewise/recommender/agent/contract"
	promptx "github.com/storewise/recommender/agent/prompt"
)

// Confidence constants distinguish the decode paths: a clean decode is
// trusted more than a synthesized fallback.
const (
	customerModelConfidence    = 0.85
	customerFallbackConfidence = 0.7
)

type CustomerAgent struct {
	cfg contractx.AgentConfig
	gen contractx.TextGenerator
}

var _ contractx.CustomerAnalyst = (*CustomerAgent)(nil)

func NewCustomerAgent(cfg contractx.AgentConfig, gen contractx.TextGenerator) (*CustomerAgent, error) {
	if cfg.Type != contractx.AgentTypeCustomer {
		return nil, fmt.Errorf("%w: expected agent type %q, got %q", contractx.ErrValidation, contractx.AgentTypeCustomer, cfg.Type)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: text generator is required", contractx.ErrValidation)
	}
	return &CustomerAgent{cfg: cfg, gen: gen}, nil
}

type customerLLMPayload struct {
	Interests        []string                   `json:"interests"`
	PurchasePatterns contractx.PurchasePatterns `json:"purchasePatterns"`
	Predictions      contractx.Predictions      `json:"predictions"`
}

// Analyze builds the customer-analysis prompt, invokes the gateway once, and
// decodes the reply. A disabled agent returns a marker insight without any
// gateway call; an undecodable reply degrades to an insight synthesized from
// the customer's own preference tags.
func (a *CustomerAgent) Analyze(ctx context.Context, customer contractx.Customer) (contractx.CustomerInsight, error) {
	if !a.cfg.Enabled {
		return contractx.CustomerInsight{
			CustomerID: customer.ID,
			Reasoning:  disabledReasoning("customer agent"),
			Source:     contractx.SourceDisabled,
		}, nil
	}

	prompt, err := promptx.RenderCustomer(promptx.CustomerData{
		Customer:          customer,
		PersonalityWeight: floatParam(a.cfg.Parameters, "personalityWeight", 0.7),
		HistoryWeight:     floatParam(a.cfg.Parameters, "historyWeight", 0.8),
		ExplorationRate:   floatParam(a.cfg.Parameters, "explorationRate", 0.2),
		ContextAwareness:  boolParam(a.cfg.Parameters, "contextAwareness", true),
	})
	if err != nil {
		return contractx.CustomerInsight{}, fmt.Errorf("%w: render customer prompt: %v", contractx.ErrValidation, err)
	}

	raw, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return contractx.CustomerInsight{}, err
	}

	var payload customerLLMPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Str("customer_id", customer.ID).Msg("customer insight decode failed, using fallback")
		return a.fallbackInsight(customer, raw), nil
	}

	return contractx.CustomerInsight{
		CustomerID:       customer.ID,
		Interests:        payload.Interests,
		PurchasePatterns: payload.PurchasePatterns,
		Predictions:      payload.Predictions,
		Confidence:       customerModelConfidence,
		Reasoning:        raw,
		Source:           contractx.SourceModel,
	}, nil
}

func (a *CustomerAgent) fallbackInsight(customer contractx.Customer, raw string) contractx.CustomerInsight {
	return contractx.CustomerInsight{
		CustomerID: customer.ID,
		Interests:  append([]string(nil), customer.Preferences...),
		PurchasePatterns: contractx.PurchasePatterns{
			Frequency:           "medium",
			AverageSpend:        120.5,
			PreferredCategories: []string{"electronics", "books"},
		},
		Predictions: contractx.Predictions{
			LikelyToBuy:      []string{"smartphones", "accessories"},
			PriceRange:       "100-500",
			StylePreferences: []string{"modern", "minimalist"},
		},
		Confidence: customerFallbackConfidence,
		Reasoning:  fallbackReasoning("customer agent", raw),
		Source:     contractx.SourceFallback,
	}
}
