// Package orchestrator sequences the three recommendation agents into one
// end-to-end run per customer.
package orchestrator

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/storewise/recommender/agent/contract"
	nodex "github.com/storewise/recommender/agent/nodes/orchestrator"
)

type Config struct {
	// CandidateLimit bounds how many catalog products the product agent
	// analyzes per run.
	CandidateLimit int
	// RelatedLimit bounds the related-product context given per candidate.
	RelatedLimit int
	// Concurrency bounds the product-analysis fan-out.
	Concurrency int
}

type Orchestrator struct {
	data   contractx.DataStore
	recs   contractx.RecommendationStore
	models contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	candidateLimit int
	relatedLimit   int
	concurrency    int

	now func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Orchestrator)

// WithRandom replaces the candidate-sampling randomness source, mainly for
// deterministic tests.
func WithRandom(rng *rand.Rand) Option {
	return func(o *Orchestrator) {
		if rng != nil {
			o.rng = rng
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

func New(
	data contractx.DataStore,
	recs contractx.RecommendationStore,
	models contractx.Registry,
	cfg Config,
	opts ...Option,
) (*Orchestrator, error) {
	if data == nil {
		return nil, errors.New("data store is required")
	}
	if recs == nil {
		return nil, errors.New("recommendation store is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}

	candidateLimit := cfg.CandidateLimit
	if candidateLimit <= 0 {
		candidateLimit = 3
	}
	relatedLimit := cfg.RelatedLimit
	if relatedLimit <= 0 {
		relatedLimit = 5
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	o := &Orchestrator{
		data:           data,
		recs:           recs,
		models:         models,
		candidateLimit: candidateLimit,
		relatedLimit:   relatedLimit,
		concurrency:    concurrency,
		now:            time.Now,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	graphRunner, err := o.compileRecommendationGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// GenerateRecommendations runs the full pipeline for one customer and returns
// the synthesized result plus the id of the persisted record. Agent-level
// upstream failures never surface here; only missing input data and
// persistence failures do.
func (o *Orchestrator) GenerateRecommendations(ctx context.Context, customerID string) (nodex.GraphOutput, error) {
	return o.graphRunner.Invoke(ctx, nodex.GraphInput{CustomerID: customerID})
}

func (o *Orchestrator) shuffleProducts(products []contractx.Product) {
	o.rngMu.Lock()
	defer o.rngMu.Unlock()
	o.rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
}
