package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/storewise/recommender/agent/contract"
	promptx "github.com/storewise/recommender/agent/prompt"
)

const (
	// Success-path confidence is drawn uniformly from [0.8, 1.0).
	engineConfidenceBase = 0.8
	engineConfidenceSpan = 0.2

	engineFallbackConfidence = 0.85

	engineFallbackReasoning = "Recommendation generated using fallback logic based on customer profile analysis"

	// Target recommendation count; never back-filled when catalog validation
	// drops ids below it.
	recommendationTarget = 5
)

type Engine struct {
	cfg contractx.AgentConfig
	gen contractx.TextGenerator
	now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

var _ contractx.Synthesizer = (*Engine)(nil)

type EngineOption func(*Engine)

// WithRandom replaces the confidence/sampling randomness source, mainly for
// deterministic tests.
func WithRandom(rng *rand.Rand) EngineOption {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithNow(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(cfg contractx.AgentConfig, gen contractx.TextGenerator, opts ...EngineOption) (*Engine, error) {
	if cfg.Type != contractx.AgentTypeEngine {
		return nil, fmt.Errorf("%w: expected agent type %q, got %q", contractx.ErrValidation, contractx.AgentTypeEngine, cfg.Type)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: text generator is required", contractx.ErrValidation)
	}

	e := &Engine{
		cfg: cfg,
		gen: gen,
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

type engineLLMPayload struct {
	RecommendedProducts []string `json:"recommendedProducts"`
	Justification       string   `json:"justification"`
}

// Synthesize combines one customer insight, the collected product insights,
// and the full catalog into a final recommendation. Recommended ids not
// present in the catalog snapshot are dropped without back-fill.
func (e *Engine) Synthesize(ctx context.Context, customer contractx.CustomerInsight, products []contractx.ProductInsight, catalog []contractx.Product) (contractx.RecommendationResult, error) {
	if !e.cfg.Enabled {
		return contractx.RecommendationResult{
			Justification: disabledReasoning("recommendation engine"),
			Reasoning:     disabledReasoning("recommendation engine"),
			Timestamp:     e.now().UTC(),
			Source:        contractx.SourceDisabled,
		}, nil
	}

	prompt, err := promptx.RenderEngine(promptx.EngineData{
		Customer:            customer,
		Products:            products,
		Catalog:             catalog,
		CustomerAgentWeight: floatParam(e.cfg.Parameters, "customerAgentWeight", 0.7),
		ProductAgentWeight:  floatParam(e.cfg.Parameters, "productAgentWeight", 0.7),
		NoveltyFactor:       floatParam(e.cfg.Parameters, "noveltyFactor", 0.3),
		DiversityFactor:     floatParam(e.cfg.Parameters, "diversityFactor", 0.4),
		ConfidenceThreshold: floatParam(e.cfg.Parameters, "confidenceThreshold", 0.6),
	})
	if err != nil {
		return contractx.RecommendationResult{}, fmt.Errorf("%w: render engine prompt: %v", contractx.ErrValidation, err)
	}

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return contractx.RecommendationResult{}, err
	}

	var payload engineLLMPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Str("customer_id", customer.CustomerID).Msg("recommendation decode failed, using fallback")
		return e.fallbackResult(customer, catalog), nil
	}

	return contractx.RecommendationResult{
		RecommendedProducts: filterToCatalog(payload.RecommendedProducts, catalog),
		Justification:       payload.Justification,
		Confidence:          e.confidence(),
		Reasoning:           raw,
		Timestamp:           e.now().UTC(),
		CustomerProfile: &contractx.CustomerProfile{
			Interests:        customer.Interests,
			PurchasePatterns: customer.PurchasePatterns,
		},
		Source: contractx.SourceModel,
	}, nil
}

func (e *Engine) confidence() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return engineConfidenceBase + e.rng.Float64()*engineConfidenceSpan
}

func (e *Engine) fallbackResult(customer contractx.CustomerInsight, catalog []contractx.Product) contractx.RecommendationResult {
	return contractx.RecommendationResult{
		RecommendedProducts: e.sampleCatalog(catalog, recommendationTarget),
		Justification:       fallbackJustification(customer.Interests),
		Confidence:          engineFallbackConfidence,
		Reasoning:           engineFallbackReasoning,
		Timestamp:           e.now().UTC(),
		Source:              contractx.SourceFallback,
	}
}

func (e *Engine) sampleCatalog(catalog []contractx.Product, n int) []string {
	e.mu.Lock()
	perm := e.rng.Perm(len(catalog))
	e.mu.Unlock()

	if n > len(catalog) {
		n = len(catalog)
	}
	ids := make([]string, 0, n)
	for _, idx := range perm[:n] {
		ids = append(ids, catalog[idx].ID)
	}
	return ids
}

// filterToCatalog drops recommended ids absent from the catalog snapshot and
// de-duplicates while preserving order.
func filterToCatalog(ids []string, catalog []contractx.Product) []string {
	inCatalog := make(map[string]struct{}, len(catalog))
	for _, p := range catalog {
		inCatalog[p.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ids))
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := inCatalog[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		kept = append(kept, id)
	}
	return kept
}

func fallbackJustification(interests []string) string {
	has := func(wants ...string) bool {
		for _, interest := range interests {
			for _, want := range wants {
				if interest == want {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has("electronics", "technology"):
		return "Recommended based on the customer's interest in technology products and latest electronics trends"
	case has("fashion", "clothing"):
		return "Selected fashion items that match the customer's style preferences and seasonal trends"
	case has("home", "furniture"):
		return "Curated home products that complement the customer's existing purchases and home decor preferences"
	default:
		return "Selected based on customer profile and product relevance"
	}
}
