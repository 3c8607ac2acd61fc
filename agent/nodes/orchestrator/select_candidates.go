package orchestrator

import (
	"strings"

	contractx "github.com/storewise/recommender/agent/contract"
)

// SelectCandidates picks the products the product agent will analyze:
// catalog entries whose category or tags intersect the customer insight's
// interests, bounded by limit. When nothing matches (including a disabled
// customer agent yielding no interests) it falls back to a random sample so
// the pipeline always has evidence to work with.
func SelectCandidates(st *GraphState, limit int, shuffle func([]contractx.Product)) (*GraphState, error) {
	if limit <= 0 {
		limit = 3
	}

	matched := make([]contractx.Product, 0, limit)
	for _, product := range st.Catalog {
		if matchesInterests(product, st.CustomerInsight.Interests) {
			matched = append(matched, product)
			if len(matched) == limit {
				break
			}
		}
	}

	if len(matched) == 0 {
		sampled := append([]contractx.Product(nil), st.Catalog...)
		shuffle(sampled)
		if len(sampled) > limit {
			sampled = sampled[:limit]
		}
		matched = sampled
	}

	st.Candidates = matched
	return st, nil
}

func matchesInterests(product contractx.Product, interests []string) bool {
	category := strings.ToLower(product.Category)
	for _, interest := range interests {
		lowered := strings.ToLower(interest)
		if lowered == "" {
			continue
		}
		if strings.Contains(category, lowered) {
			return true
		}
		for _, tag := range product.Tags {
			if strings.Contains(lowered, strings.ToLower(tag)) {
				return true
			}
		}
	}
	return false
}
