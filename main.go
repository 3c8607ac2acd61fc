package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	orchestratorx "github.com/storewise/recommender/agent/agents/orchestrator"
	recommenderx "github.com/storewise/recommender/agent/agents/recommender"
	contractx "github.com/storewise/recommender/agent/contract"
	llmx "github.com/storewise/recommender/agent/llm"
	configx "github.com/storewise/recommender/pkg/config"
	_ "github.com/storewise/recommender/pkg/logger/autoload"
	storex "github.com/storewise/recommender/store"
)

type AppConfig struct {
	// CustomerID, when set, runs one recommendation end-to-end and prints it.
	CustomerID  string `envconfig:"CUSTOMER_ID"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" split_words:"true"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("APP")
	llmCfg := configx.MustNew[llmx.Config]("LLM")

	var (
		data contractx.DataStore
		recs contractx.RecommendationStore
	)
	if strings.TrimSpace(appCfg.PostgresDSN) != "" {
		pg, err := storex.NewPostgresStore(storex.PostgresConfig{DSN: appCfg.PostgresDSN})
		if err != nil {
			log.Fatal().Err(err).Msg("create postgres store")
		}
		if err := pg.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("init postgres store")
		}
		defer pg.Close()
		data, recs = pg, pg
	} else {
		mem := storex.NewMemoryStore()
		data, recs = mem, mem
	}

	configs, err := data.GetAgentConfigs(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load agent configs")
	}

	registry, err := recommenderx.NewRegistry(*llmCfg, configs)
	if err != nil {
		log.Fatal().Err(err).Msg("build agent registry")
	}

	orch, err := orchestratorx.New(data, recs, registry, orchestratorx.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("build orchestrator")
	}

	if strings.TrimSpace(appCfg.CustomerID) == "" {
		log.Info().Msg("recommender ready; set APP_CUSTOMER_ID to run a recommendation")
		return
	}

	out, err := orch.GenerateRecommendations(ctx, appCfg.CustomerID)
	if err != nil {
		log.Fatal().Err(err).Str("customer_id", appCfg.CustomerID).Msg("generate recommendations")
	}

	encoded, err := json.MarshalIndent(out.Result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	fmt.Println(string(encoded))
	log.Info().Str("record_id", out.RecordID).Msg("recommendation persisted")
}
