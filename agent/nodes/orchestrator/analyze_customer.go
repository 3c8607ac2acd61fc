package orchestrator

import (
	"context"

	contractx "github.com/storewise/recommender/agent/contract"
)

func AnalyzeCustomer(ctx context.Context, st *GraphState, analyst contractx.CustomerAnalyst) (*GraphState, error) {
	insight, err := analyst.Analyze(ctx, st.Customer)
	if err != nil {
		return nil, err
	}
	st.CustomerInsight = insight
	return st, nil
}
