package recommender

import (
	"errors"
	"testing"

	contractx "github.com/storewise/recommender/agent/contract"
	llmx "github.com/storewise/recommender/agent/llm"
)

func testLLMConfig() llmx.Config {
	return llmx.Config{
		Backend:   llmx.BackendOllama,
		Model:     "llama3-8b",
		OllamaURL: "http://localhost:11434",
	}
}

func TestNewRegistryBuildsAllAgents(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(testLLMConfig(), []contractx.AgentConfig{
		customerConfig(true),
		productConfig(true),
		engineConfig(true),
		{ID: "agent-mystery", Type: "planner", Enabled: true},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if registry.Customer() == nil || registry.Product() == nil || registry.Engine() == nil {
		t.Fatal("registry must expose all three agents")
	}
}

func TestNewRegistryMissingAgentType(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(testLLMConfig(), []contractx.AgentConfig{
		customerConfig(true),
		productConfig(true),
	})
	if !errors.Is(err, contractx.ErrAgentUnavailable) {
		t.Fatalf("expected ErrAgentUnavailable, got %v", err)
	}
}

func TestNewRegistryInvalidLLMConfig(t *testing.T) {
	t.Parallel()

	cfg := testLLMConfig()
	cfg.Backend = "unknown"

	_, err := NewRegistry(cfg, []contractx.AgentConfig{
		customerConfig(true),
		productConfig(true),
		engineConfig(true),
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
