package orchestrator

import (
	"context"

	contractx "github.com/storewise/recommender/agent/contract"
)

func Synthesize(ctx context.Context, st *GraphState, engine contractx.Synthesizer) (*GraphState, error) {
	result, err := engine.Synthesize(ctx, st.CustomerInsight, st.ProductInsights, st.Catalog)
	if err != nil {
		return nil, err
	}
	st.Result = result
	return st, nil
}
