package contract

import "time"

type AgentType string

const (
	AgentTypeCustomer AgentType = "customer"
	AgentTypeProduct  AgentType = "product"
	AgentTypeEngine   AgentType = "recommendation-engine"
)

// InsightSource tags which path produced an insight or result.
type InsightSource string

const (
	SourceModel    InsightSource = "model"
	SourceFallback InsightSource = "fallback"
	SourceDisabled InsightSource = "disabled"
)

// Customer is immutable for the duration of one orchestration run.
type Customer struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Preferences []string `json:"preferences,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Price    float64  `json:"price"`
	Tags     []string `json:"tags,omitempty"`
}

// AgentConfig parameters are opaque to the orchestrator; each agent reads the
// keys it owns when building its prompt.
type AgentConfig struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       AgentType      `json:"type"`
	Enabled    bool           `json:"enabled"`
	Model      string         `json:"model"`
	Parameters map[string]any `json:"parameters"`
}

type PurchasePatterns struct {
	Frequency           string   `json:"frequency"`
	AverageSpend        float64  `json:"averageSpend"`
	PreferredCategories []string `json:"preferredCategories"`
}

type Predictions struct {
	LikelyToBuy      []string `json:"likelyToBuy"`
	PriceRange       string   `json:"priceRange"`
	StylePreferences []string `json:"stylePreferences"`
}

type CustomerInsight struct {
	CustomerID       string           `json:"customerId"`
	Interests        []string         `json:"interests"`
	PurchasePatterns PurchasePatterns `json:"purchasePatterns"`
	Predictions      Predictions      `json:"predictions"`
	Confidence       float64          `json:"confidence"`
	Reasoning        string           `json:"reasoning"`
	Source           InsightSource    `json:"source"`
}

type ProductInsight struct {
	ProductID             string        `json:"productId"`
	SimilarProducts       []string      `json:"similarProducts"`
	ComplementaryProducts []string      `json:"complementaryProducts"`
	TargetDemographic     []string      `json:"targetDemographic"`
	Seasonality           string        `json:"seasonality,omitempty"`
	PriceCompetitiveness  string        `json:"priceCompetitiveness"`
	Confidence            float64       `json:"confidence"`
	Reasoning             string        `json:"reasoning"`
	Source                InsightSource `json:"source"`
}

// CustomerProfile is the snapshot embedded in a RecommendationResult for
// traceability.
type CustomerProfile struct {
	Interests        []string         `json:"interests"`
	PurchasePatterns PurchasePatterns `json:"purchasePatterns"`
}

type RecommendationResult struct {
	RecommendedProducts []string         `json:"recommendedProducts"`
	Justification       string           `json:"justification"`
	Confidence          float64          `json:"confidence"`
	Reasoning           string           `json:"reasoning"`
	Timestamp           time.Time        `json:"timestamp"`
	CustomerProfile     *CustomerProfile `json:"customerProfile,omitempty"`
	Source              InsightSource    `json:"source"`
}

// RecommendedProduct pairs an id with its catalog display name.
type RecommendedProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecommendationRecord is the persisted, append-only form of a result.
// Conversion is the only post-creation mutation.
type RecommendationRecord struct {
	ID                  string               `json:"id"`
	CustomerID          string               `json:"customerId"`
	RecommendedProducts []RecommendedProduct `json:"recommendedProducts"`
	AgentType           AgentType            `json:"agentType"`
	Reasoning           string               `json:"reasoning"`
	Confidence          float64              `json:"confidence"`
	Timestamp           time.Time            `json:"timestamp"`
	Converted           bool                 `json:"converted"`
	ConversionTimestamp *time.Time           `json:"conversionTimestamp,omitempty"`
}
