package orchestrator

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	contractx "github.com/storewise/recommender/agent/contract"
)

// AnalyzeProducts fans the candidate set out to the product agent with
// bounded concurrency. A failed individual analysis is logged and skipped
// rather than aborting the batch; the engine treats the collected insights as
// an unordered evidence set.
func AnalyzeProducts(ctx context.Context, st *GraphState, analyst contractx.ProductAnalyst, concurrency, relatedLimit int) (*GraphState, error) {
	if concurrency <= 0 {
		concurrency = 3
	}

	var mu sync.Mutex
	insights := make([]contractx.ProductInsight, 0, len(st.Candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, candidate := range st.Candidates {
		candidate := candidate
		g.Go(func() error {
			related := relatedProducts(st.Catalog, candidate, relatedLimit)
			insight, err := analyst.Analyze(gctx, candidate, related)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("product_id", candidate.ID).Msg("product analysis failed, skipping candidate")
				return nil
			}
			mu.Lock()
			insights = append(insights, insight)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	st.ProductInsights = insights
	return st, nil
}

// relatedProducts collects catalog entries in the same category or sharing a
// tag with the target, excluding the target itself, bounded by limit.
func relatedProducts(catalog []contractx.Product, target contractx.Product, limit int) []contractx.Product {
	if limit <= 0 {
		limit = 5
	}

	related := make([]contractx.Product, 0, limit)
	for _, p := range catalog {
		if p.ID == target.ID {
			continue
		}
		if p.Category == target.Category || sharesTag(p.Tags, target.Tags) {
			related = append(related, p)
			if len(related) == limit {
				break
			}
		}
	}
	return related
}

func sharesTag(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, tag := range a {
		set[tag] = struct{}{}
	}
	for _, tag := range b {
		if _, ok := set[tag]; ok {
			return true
		}
	}
	return false
}
