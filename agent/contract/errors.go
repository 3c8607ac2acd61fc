package contract

import "errors"

var (
	ErrInvalidCustomerID = errors.New("customer id is empty")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoProductData     = errors.New("product catalog is empty")
	ErrAgentUnavailable  = errors.New("agent is not available")
	ErrPersistence       = errors.New("failed to persist recommendation")
	ErrValidation        = errors.New("validation failed")
)
