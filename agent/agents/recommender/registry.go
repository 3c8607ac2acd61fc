package recommender

import (
	"fmt"

	contractx "github.com/storewise/recommender/agent/contract"
	llmx "github.com/storewise/recommender/agent/llm"
)

type registryImpl struct {
	customer contractx.CustomerAnalyst
	product  contractx.ProductAnalyst
	engine   contractx.Synthesizer
}

func (r *registryImpl) Customer() contractx.CustomerAnalyst {
	return r.customer
}

func (r *registryImpl) Product() contractx.ProductAnalyst {
	return r.product
}

func (r *registryImpl) Engine() contractx.Synthesizer {
	return r.engine
}

// NewRegistry assembles the three pipeline agents from stored agent configs.
// Unknown config types are ignored; a missing type is an error since the
// orchestrator cannot run a partial pipeline.
func NewRegistry(cfg llmx.Config, configs []contractx.AgentConfig, engineOpts ...EngineOption) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	byType := make(map[contractx.AgentType]contractx.AgentConfig, len(configs))
	for _, ac := range configs {
		switch ac.Type {
		case contractx.AgentTypeCustomer, contractx.AgentTypeProduct, contractx.AgentTypeEngine:
			byType[ac.Type] = ac
		}
	}

	for _, required := range []contractx.AgentType{contractx.AgentTypeCustomer, contractx.AgentTypeProduct, contractx.AgentTypeEngine} {
		if _, ok := byType[required]; !ok {
			return nil, fmt.Errorf("%w: no config for agent type %q", contractx.ErrAgentUnavailable, required)
		}
	}

	customerCfg := byType[contractx.AgentTypeCustomer]
	customerGen, err := cfg.GatewayFor(contractx.AgentTypeCustomer, customerCfg.Model)
	if err != nil {
		return nil, fmt.Errorf("create customer gateway: %w", err)
	}
	customer, err := NewCustomerAgent(customerCfg, customerGen)
	if err != nil {
		return nil, err
	}

	productCfg := byType[contractx.AgentTypeProduct]
	productGen, err := cfg.GatewayFor(contractx.AgentTypeProduct, productCfg.Model)
	if err != nil {
		return nil, fmt.Errorf("create product gateway: %w", err)
	}
	product, err := NewProductAgent(productCfg, productGen)
	if err != nil {
		return nil, err
	}

	engineCfg := byType[contractx.AgentTypeEngine]
	engineGen, err := cfg.GatewayFor(contractx.AgentTypeEngine, engineCfg.Model)
	if err != nil {
		return nil, fmt.Errorf("create engine gateway: %w", err)
	}
	engine, err := NewEngine(engineCfg, engineGen, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		customer: customer,
		product:  product,
		engine:   engine,
	}, nil
}
