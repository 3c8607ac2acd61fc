package recommender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/storewise/recommender/agent/contract"
	promptx "github.com/storewise/recommender/agent/prompt"
)

const (
	productModelConfidence    = 0.82
	productFallbackConfidence = 0.75

	// Boundary for the fallback price-competitiveness category.
	premiumPriceThreshold = 100

	maxRelatedProducts = 5
)

type ProductAgent struct {
	cfg contractx.AgentConfig
	gen contractx.TextGenerator
}

var _ contractx.ProductAnalyst = (*ProductAgent)(nil)

func NewProductAgent(cfg contractx.AgentConfig, gen contractx.TextGenerator) (*ProductAgent, error) {
	if cfg.Type != contractx.AgentTypeProduct {
		return nil, fmt.Errorf("%w: expected agent type %q, got %q", contractx.ErrValidation, contractx.AgentTypeProduct, cfg.Type)
	}
	if gen == nil {
		return nil, fmt.Errorf("%w: text generator is required", contractx.ErrValidation)
	}
	return &ProductAgent{cfg: cfg, gen: gen}, nil
}

type productLLMPayload struct {
	SimilarProducts       []string `json:"similarProducts"`
	ComplementaryProducts []string `json:"complementaryProducts"`
	TargetDemographic     []string `json:"targetDemographic"`
	Seasonality           *string  `json:"seasonality"`
	PriceCompetitiveness  string   `json:"priceCompetitiveness"`
}

// Analyze builds the product-relationship prompt over the target product and
// at most five related products, invokes the gateway once, and decodes the
// reply. The fallback derives relationships positionally from the related set.
func (a *ProductAgent) Analyze(ctx context.Context, product contractx.Product, related []contractx.Product) (contractx.ProductInsight, error) {
	if !a.cfg.Enabled {
		return contractx.ProductInsight{
			ProductID: product.ID,
			Reasoning: disabledReasoning("product agent"),
			Source:    contractx.SourceDisabled,
		}, nil
	}

	if len(related) > maxRelatedProducts {
		related = related[:maxRelatedProducts]
	}

	seasonalityAware := boolParam(a.cfg.Parameters, "seasonalityAware", true)

	prompt, err := promptx.RenderProduct(promptx.ProductData{
		Product:          product,
		Related:          related,
		SimilarityWeight: floatParam(a.cfg.Parameters, "similarityWeight", 0.8),
		PopularityWeight: floatParam(a.cfg.Parameters, "popularityWeight", 0.6),
		CategoryWeight:   floatParam(a.cfg.Parameters, "categoryWeight", 0.7),
		SeasonalityAware: seasonalityAware,
	})
	if err != nil {
		return contractx.ProductInsight{}, fmt.Errorf("%w: render product prompt: %v", contractx.ErrValidation, err)
	}

	raw, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return contractx.ProductInsight{}, err
	}

	var payload productLLMPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Warn().Err(err).Str("product_id", product.ID).Msg("product insight decode failed, using fallback")
		return a.fallbackInsight(product, related, seasonalityAware, raw), nil
	}

	seasonality := ""
	if payload.Seasonality != nil {
		seasonality = *payload.Seasonality
	}

	return contractx.ProductInsight{
		ProductID:             product.ID,
		SimilarProducts:       payload.SimilarProducts,
		ComplementaryProducts: payload.ComplementaryProducts,
		TargetDemographic:     payload.TargetDemographic,
		Seasonality:           seasonality,
		PriceCompetitiveness:  payload.PriceCompetitiveness,
		Confidence:            productModelConfidence,
		Reasoning:             raw,
		Source:                contractx.SourceModel,
	}, nil
}

func (a *ProductAgent) fallbackInsight(product contractx.Product, related []contractx.Product, seasonalityAware bool, raw string) contractx.ProductInsight {
	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}

	similar := ids
	if len(similar) > 3 {
		similar = similar[:3]
	}
	var complementary []string
	if len(ids) > 3 {
		complementary = ids[3:]
	}

	seasonality := ""
	if seasonalityAware {
		seasonality = "high demand in Q4"
	}

	competitiveness := "competitive"
	if product.Price > premiumPriceThreshold {
		competitiveness = "premium"
	}

	return contractx.ProductInsight{
		ProductID:             product.ID,
		SimilarProducts:       similar,
		ComplementaryProducts: complementary,
		TargetDemographic:     []string{"tech enthusiasts", "professionals"},
		Seasonality:           seasonality,
		PriceCompetitiveness:  competitiveness,
		Confidence:            productFallbackConfidence,
		Reasoning:             fallbackReasoning("product agent", raw),
		Source:                contractx.SourceFallback,
	}
}
