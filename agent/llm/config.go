// Package llm resolves environment configuration into a text-generation
// gateway per agent type.
package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/storewise/recommender/agent/contract"
	gatewayx "github.com/storewise/recommender/agent/gateway"
	ollamax "github.com/storewise/recommender/pkg/ollama"
	openrouterx "github.com/storewise/recommender/pkg/openrouter"
)

const (
	BackendOpenRouter = "openrouter"
	BackendOllama     = "ollama"
)

type Config struct {
	Backend string `envconfig:"BACKEND" split_words:"true" default:"openrouter"`

	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"llama3-8b"`
	MaxCompletionToken int64         `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	OllamaURL string `envconfig:"OLLAMA_URL" split_words:"true" default:"http://localhost:11434"`

	CustomerModel       string  `envconfig:"CUSTOMER_MODEL" split_words:"true"`
	ProductModel        string  `envconfig:"PRODUCT_MODEL" split_words:"true"`
	EngineModel         string  `envconfig:"ENGINE_MODEL" split_words:"true"`
	CustomerTemperature float64 `envconfig:"CUSTOMER_TEMPERATURE" split_words:"true" default:"-1"`
	ProductTemperature  float64 `envconfig:"PRODUCT_TEMPERATURE" split_words:"true" default:"-1"`
	EngineTemperature   float64 `envconfig:"ENGINE_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	switch strings.TrimSpace(c.Backend) {
	case BackendOpenRouter:
		if strings.TrimSpace(c.APIKey) == "" {
			return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
		}
	case BackendOllama:
		if strings.TrimSpace(c.OllamaURL) == "" {
			return fmt.Errorf("%w: ollama url is required", contractx.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unsupported llm backend %q", contractx.ErrValidation, c.Backend)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// GatewayFor builds a gateway for one agent type. The model stored on the
// agent config wins over the per-agent env override, which wins over the
// default.
func (c Config) GatewayFor(agentType contractx.AgentType, storedModel string) (contractx.TextGenerator, error) {
	model := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contractx.AgentTypeCustomer:
		if v := strings.TrimSpace(c.CustomerModel); v != "" {
			model = v
		}
		if c.CustomerTemperature >= 0 {
			temp = c.CustomerTemperature
		}
	case contractx.AgentTypeProduct:
		if v := strings.TrimSpace(c.ProductModel); v != "" {
			model = v
		}
		if c.ProductTemperature >= 0 {
			temp = c.ProductTemperature
		}
	case contractx.AgentTypeEngine:
		if v := strings.TrimSpace(c.EngineModel); v != "" {
			model = v
		}
		if c.EngineTemperature >= 0 {
			temp = c.EngineTemperature
		}
	}

	if v := strings.TrimSpace(storedModel); v != "" {
		model = v
	}

	backend, err := c.backend(temp)
	if err != nil {
		return nil, err
	}
	return gatewayx.New(backend, model)
}

func (c Config) backend(temperature float64) (gatewayx.Backend, error) {
	switch strings.TrimSpace(c.Backend) {
	case BackendOllama:
		client, err := ollamax.NewClient(ollamax.Config{
			URL:     c.OllamaURL,
			Timeout: c.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create ollama client: %v", contractx.ErrValidation, err)
		}
		return gatewayx.NewOllamaBackend(client)
	default:
		client := openrouterx.NewClient(openrouterx.Config{
			BaseURL:  c.BaseURL,
			APIKey:   c.APIKey,
			Model:    c.Model,
			Timeout:  c.Timeout,
			SiteURL:  c.SiteURL,
			SiteName: c.SiteName,
		})
		if client == nil {
			return nil, fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
		}
		return gatewayx.NewOpenRouterBackend(client, temperature, c.MaxCompletionToken)
	}
}
