package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	contractx "github.com/storewise/recommender/agent/contract"
)

// PersistRecommendation appends the run's record. The record is fully formed
// before the append, and a cancelled context short-circuits so no partial
// record is written mid-cancellation.
func PersistRecommendation(ctx context.Context, st *GraphState, recs contractx.RecommendationStore, now func() time.Time) (*GraphState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(st.Catalog))
	for _, p := range st.Catalog {
		names[p.ID] = p.Name
	}

	recommended := make([]contractx.RecommendedProduct, 0, len(st.Result.RecommendedProducts))
	for _, id := range st.Result.RecommendedProducts {
		recommended = append(recommended, contractx.RecommendedProduct{
			ID:   id,
			Name: names[id],
		})
	}

	reasoning := st.Result.Justification
	if reasoning == "" {
		reasoning = st.Result.Reasoning
	}

	timestamp := st.Result.Timestamp
	if timestamp.IsZero() {
		timestamp = now().UTC()
	}

	record := contractx.RecommendationRecord{
		ID:                  uuid.NewString(),
		CustomerID:          st.CustomerID,
		RecommendedProducts: recommended,
		AgentType:           contractx.AgentTypeEngine,
		Reasoning:           reasoning,
		Confidence:          st.Result.Confidence,
		Timestamp:           timestamp,
		Converted:           false,
	}

	id, err := recs.AppendRecommendation(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrPersistence, err)
	}
	st.RecordID = id
	return st, nil
}

func FinalizeResult(st *GraphState) (GraphOutput, error) {
	return GraphOutput{
		Result:   st.Result,
		RecordID: st.RecordID,
	}, nil
}
