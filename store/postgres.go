package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/storewise/recommender/agent/contract"
)

type PostgresConfig struct {
	DSN string `envconfig:"DSN" split_words:"true" required:"true"`
}

type customerRow struct {
	bun.BaseModel `bun:"table:customers,alias:c"`

	ID          string `bun:"id,pk"`
	Name        string `bun:"name,notnull"`
	Preferences string `bun:"preferences"`
	Tags        string `bun:"tags"`
}

type productRow struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID       string  `bun:"id,pk"`
	Name     string  `bun:"name,notnull"`
	Category string  `bun:"category,notnull"`
	Price    float64 `bun:"price,notnull"`
	Tags     string  `bun:"tags"`
}

type agentConfigRow struct {
	bun.BaseModel `bun:"table:agent_configs,alias:ac"`

	ID         string `bun:"id,pk"`
	Name       string `bun:"name,notnull"`
	Type       string `bun:"type,notnull"`
	Parameters string `bun:"parameters,notnull"`
	Model      string `bun:"model,notnull"`
	Enabled    bool   `bun:"enabled,notnull"`
}

type recommendationRow struct {
	bun.BaseModel `bun:"table:recommendations,alias:r"`

	ID                  string     `bun:"id,pk"`
	CustomerID          string     `bun:"customer_id,notnull"`
	RecommendedProducts string     `bun:"recommended_products,notnull"`
	AgentType           string     `bun:"agent_type,notnull"`
	Reasoning           string     `bun:"reasoning,notnull"`
	Confidence          float64    `bun:"confidence,notnull"`
	Timestamp           time.Time  `bun:"timestamp,notnull"`
	Converted           bool       `bun:"converted,notnull,default:false"`
	ConversionTimestamp *time.Time `bun:"conversion_timestamp"`
}

// PostgresStore implements the collaborator interfaces on bun/Postgres.
type PostgresStore struct {
	db *bun.DB
}

var (
	_ contractx.DataStore           = (*PostgresStore)(nil)
	_ contractx.RecommendationStore = (*PostgresStore)(nil)
)

func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres dsn is required")
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
	return &PostgresStore{db: bun.NewDB(sqldb, pgdialect.New())}, nil
}

// Init creates the schema when missing and seeds the default agent configs
// into an empty agent_configs table.
func (s *PostgresStore) Init(ctx context.Context) error {
	models := []any{
		(*customerRow)(nil),
		(*productRow)(nil),
		(*agentConfigRow)(nil),
		(*recommendationRow)(nil),
	}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	count, err := s.db.NewSelect().Model((*agentConfigRow)(nil)).Count(ctx)
	if err != nil {
		return fmt.Errorf("count agent configs: %w", err)
	}
	if count > 0 {
		return nil
	}

	rows := make([]agentConfigRow, 0, 3)
	for _, cfg := range DefaultAgentConfigs() {
		params, err := json.Marshal(cfg.Parameters)
		if err != nil {
			return fmt.Errorf("marshal agent parameters: %w", err)
		}
		rows = append(rows, agentConfigRow{
			ID:         cfg.ID,
			Name:       cfg.Name,
			Type:       string(cfg.Type),
			Parameters: string(params),
			Model:      cfg.Model,
			Enabled:    cfg.Enabled,
		})
	}
	if _, err := s.db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		return fmt.Errorf("seed agent configs: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) GetCustomerByID(ctx context.Context, id string) (contractx.Customer, error) {
	var row customerRow
	err := s.db.NewSelect().Model(&row).Where("c.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return contractx.Customer{}, fmt.Errorf("%w: %s", contractx.ErrCustomerNotFound, id)
	}
	if err != nil {
		return contractx.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return contractx.Customer{
		ID:          row.ID,
		Name:        row.Name,
		Preferences: decodeStrings(row.Preferences),
		Tags:        decodeStrings(row.Tags),
	}, nil
}

func (s *PostgresStore) GetAllProducts(ctx context.Context) ([]contractx.Product, error) {
	var rows []productRow
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}

	products := make([]contractx.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, contractx.Product{
			ID:       row.ID,
			Name:     row.Name,
			Category: row.Category,
			Price:    row.Price,
			Tags:     decodeStrings(row.Tags),
		})
	}
	return products, nil
}

func (s *PostgresStore) GetAgentConfigs(ctx context.Context) ([]contractx.AgentConfig, error) {
	var rows []agentConfigRow
	if err := s.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select agent configs: %w", err)
	}

	configs := make([]contractx.AgentConfig, 0, len(rows))
	for _, row := range rows {
		params := map[string]any{}
		if row.Parameters != "" {
			if err := json.Unmarshal([]byte(row.Parameters), &params); err != nil {
				return nil, fmt.Errorf("decode parameters for agent %s: %w", row.ID, err)
			}
		}
		configs = append(configs, contractx.AgentConfig{
			ID:         row.ID,
			Name:       row.Name,
			Type:       contractx.AgentType(row.Type),
			Enabled:    row.Enabled,
			Model:      row.Model,
			Parameters: params,
		})
	}
	return configs, nil
}

func (s *PostgresStore) AppendRecommendation(ctx context.Context, rec contractx.RecommendationRecord) (string, error) {
	if rec.ID == "" {
		return "", fmt.Errorf("%w: recommendation id is empty", contractx.ErrValidation)
	}

	products, err := json.Marshal(rec.RecommendedProducts)
	if err != nil {
		return "", fmt.Errorf("marshal recommended products: %w", err)
	}

	row := recommendationRow{
		ID:                  rec.ID,
		CustomerID:          rec.CustomerID,
		RecommendedProducts: string(products),
		AgentType:           string(rec.AgentType),
		Reasoning:           rec.Reasoning,
		Confidence:          rec.Confidence,
		Timestamp:           rec.Timestamp.UTC(),
		Converted:           rec.Converted,
		ConversionTimestamp: rec.ConversionTimestamp,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return "", fmt.Errorf("insert recommendation: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresStore) MarkConverted(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.NewUpdate().
		Model((*recommendationRow)(nil)).
		Set("converted = ?", true).
		Set("conversion_timestamp = ?", at.UTC()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRecommendationNotFound, id)
	}
	return nil
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}
