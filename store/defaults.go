// Package store persists customers, products, agent configs, and the
// append-only recommendation records.
package store

import (
	contractx "github.com/storewise/recommender/agent/contract"
)

// DefaultAgentConfigs returns the agent configurations seeded into an empty
// store: one per pipeline agent, enabled, with the tuning parameters each
// agent reads when building its prompt.
func DefaultAgentConfigs() []contractx.AgentConfig {
	return []contractx.AgentConfig{
		{
			ID:      "agent-customer",
			Name:    "Customer Agent",
			Type:    contractx.AgentTypeCustomer,
			Enabled: true,
			Model:   "llama3-8b",
			Parameters: map[string]any{
				"personalityWeight": 0.7,
				"historyWeight":     0.8,
				"contextAwareness":  true,
				"explorationRate":   0.2,
			},
		},
		{
			ID:      "agent-product",
			Name:    "Product Agent",
			Type:    contractx.AgentTypeProduct,
			Enabled: true,
			Model:   "llama3-8b",
			Parameters: map[string]any{
				"similarityWeight": 0.8,
				"popularityWeight": 0.6,
				"categoryWeight":   0.7,
				"seasonalityAware": true,
			},
		},
		{
			ID:      "agent-recommendation",
			Name:    "Recommendation Engine",
			Type:    contractx.AgentTypeEngine,
			Enabled: true,
			Model:   "llama3-70b",
			Parameters: map[string]any{
				"customerAgentWeight": 0.7,
				"productAgentWeight":  0.7,
				"noveltyFactor":       0.3,
				"diversityFactor":     0.4,
				"confidenceThreshold": 0.6,
			},
		},
	}
}
