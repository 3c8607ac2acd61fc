package contract

import (
	"context"
	"time"
)

// TextGenerator is the single point of contact with the generative-model
// backend. Generate returns an error only for invalid input or context
// cancellation; transport and model failures degrade to a synthetic payload.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type CustomerAnalyst interface {
	Analyze(ctx context.Context, customer Customer) (CustomerInsight, error)
}

type ProductAnalyst interface {
	Analyze(ctx context.Context, product Product, related []Product) (ProductInsight, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, customer CustomerInsight, products []ProductInsight, catalog []Product) (RecommendationResult, error)
}

type Registry interface {
	Customer() CustomerAnalyst
	Product() ProductAnalyst
	Engine() Synthesizer
}

// DataStore provides the read-only collaborator interface consumed by the
// orchestrator during a run.
type DataStore interface {
	GetCustomerByID(ctx context.Context, id string) (Customer, error)
	GetAllProducts(ctx context.Context) ([]Product, error)
	GetAgentConfigs(ctx context.Context) ([]AgentConfig, error)
}

// RecommendationStore holds append-only recommendation records. Conversion is
// the only mutation after append.
type RecommendationStore interface {
	AppendRecommendation(ctx context.Context, rec RecommendationRecord) (string, error)
	MarkConverted(ctx context.Context, id string, at time.Time) error
}
