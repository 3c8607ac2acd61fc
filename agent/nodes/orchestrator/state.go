// Package orchestrator holds the node functions of the recommendation
// pipeline graph. Each node takes the accumulated graph state and returns it
// enriched; the orchestrator service wires them into a compiled graph.
package orchestrator

import (
	contractx "github.com/storewise/recommender/agent/contract"
)

type GraphInput struct {
	CustomerID string
}

type GraphOutput struct {
	Result   contractx.RecommendationResult
	RecordID string
}

// GraphState accumulates one orchestration run. The customer record and the
// catalog snapshot are read once and never mutated afterwards.
type GraphState struct {
	CustomerID      string
	Customer        contractx.Customer
	Catalog         []contractx.Product
	CustomerInsight contractx.CustomerInsight
	Candidates      []contractx.Product
	ProductInsights []contractx.ProductInsight
	Result          contractx.RecommendationResult
	RecordID        string
}
