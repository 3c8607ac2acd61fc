package recommender

import (
	"context"
	"sync"

	contractx "github.com/storewise/recommender/agent/contract"
)

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func customerConfig(enabled bool) contractx.AgentConfig {
	return contractx.AgentConfig{
		ID:      "agent-customer",
		Name:    "Customer Insight Agent",
		Type:    contractx.AgentTypeCustomer,
		Enabled: enabled,
		Model:   "llama3-8b",
		Parameters: map[string]any{
			"personalityWeight": 0.7,
			"historyWeight":     0.8,
			"explorationRate":   0.2,
			"contextAwareness":  true,
		},
	}
}

func productConfig(enabled bool) contractx.AgentConfig {
	return contractx.AgentConfig{
		ID:      "agent-product",
		Name:    "Product Insight Agent",
		Type:    contractx.AgentTypeProduct,
		Enabled: enabled,
		Model:   "llama3-8b",
		Parameters: map[string]any{
			"similarityWeight": 0.8,
			"popularityWeight": 0.6,
			"categoryWeight":   0.7,
			"seasonalityAware": true,
		},
	}
}

func engineConfig(enabled bool) contractx.AgentConfig {
	return contractx.AgentConfig{
		ID:      "agent-recommendation",
		Name:    "Recommendation Engine Agent",
		Type:    contractx.AgentTypeEngine,
		Enabled: enabled,
		Model:   "llama3-70b",
		Parameters: map[string]any{
			"customerAgentWeight": 0.7,
			"productAgentWeight":  0.7,
			"noveltyFactor":       0.3,
			"diversityFactor":     0.4,
			"confidenceThreshold": 0.6,
		},
	}
}
