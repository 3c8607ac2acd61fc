package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/storewise/recommender/agent/nodes/orchestrator"
)

func (o *Orchestrator) compileRecommendationGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("fetch_data",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchData(ctx, in, o.data)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node fetch_data: %w", err)
	}

	if err := graph.AddLambdaNode("analyze_customer",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AnalyzeCustomer(ctx, in, o.models.Customer())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analyze_customer: %w", err)
	}

	if err := graph.AddLambdaNode("select_candidates",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SelectCandidates(in, o.candidateLimit, o.shuffleProducts)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node select_candidates: %w", err)
	}

	if err := graph.AddLambdaNode("analyze_products",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.AnalyzeProducts(ctx, in, o.models.Product(), o.concurrency, o.relatedLimit)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node analyze_products: %w", err)
	}

	if err := graph.AddLambdaNode("synthesize",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Synthesize(ctx, in, o.models.Engine())
		}),
	); err != nil {
		return nil, fmt.Errorf("add node synthesize: %w", err)
	}

	if err := graph.AddLambdaNode("persist_recommendation",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.PersistRecommendation(ctx, in, o.recs, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_recommendation: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_result",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeResult(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_result: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "fetch_data"},
		{"fetch_data", "analyze_customer"},
		{"analyze_customer", "select_candidates"},
		{"select_candidates", "analyze_products"},
		{"analyze_products", "synthesize"},
		{"synthesize", "persist_recommendation"},
		{"persist_recommendation", "finalize_result"},
		{"finalize_result", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.generate_recommendations"))
	if err != nil {
		return nil, fmt.Errorf("compile recommendation graph: %w", err)
	}
	return runner, nil
}
