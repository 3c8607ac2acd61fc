package orchestrator

import (
	"strings"

	contractx "github.com/storewise/recommender/agent/contract"
)

func ValidateRequest(in GraphInput) (*GraphState, error) {
	customerID := strings.TrimSpace(in.CustomerID)
	if customerID == "" {
		return nil, contractx.ErrInvalidCustomerID
	}
	return &GraphState{CustomerID: customerID}, nil
}
