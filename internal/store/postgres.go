package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS scoring_configs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_type  TEXT NOT NULL,
	owner_id    TEXT NOT NULL,
	company_id  TEXT NOT NULL DEFAULT '',
	criteria    JSONB NOT NULL,
	max_score   INTEGER NOT NULL,
	version     INTEGER NOT NULL DEFAULT 1,
	updated_by  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (owner_type, owner_id)
);
CREATE INDEX IF NOT EXISTS scoring_configs_company_idx ON scoring_configs (company_id);
`

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const configColumns = `id, owner_type, owner_id, company_id, criteria, max_score,
	version, updated_by, created_at, updated_at`

func (s *PostgresStore) GetScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) (*ScoringConfig, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+configColumns+`
		FROM scoring_configs WHERE owner_type = $1 AND owner_id = $2`,
		string(ownerType), ownerID,
	)
	cfg, err := scanPostgresConfig(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *PostgresStore) SaveScoringConfig(ctx context.Context, cfg *ScoringConfig) error {
	criteriaJSON, err := json.Marshal(cfg.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	cfg.MaxScore = scoring.MaxScore(cfg.Criteria)

	return s.pool.QueryRow(ctx, `
		INSERT INTO scoring_configs (owner_type, owner_id, company_id, criteria, max_score, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (owner_type, owner_id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			criteria   = EXCLUDED.criteria,
			max_score  = EXCLUDED.max_score,
			updated_by = EXCLUDED.updated_by,
			version    = scoring_configs.version + 1,
			updated_at = now()
		RETURNING id, version, created_at, updated_at`,
		string(cfg.OwnerType), cfg.OwnerID, cfg.CompanyID, criteriaJSON, cfg.MaxScore, cfg.UpdatedBy,
	).Scan(&cfg.ID, &cfg.Version, &cfg.CreatedAt, &cfg.UpdatedAt)
}

func (s *PostgresStore) DeleteScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM scoring_configs WHERE owner_type = $1 AND owner_id = $2`,
		string(ownerType), ownerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListScoringConfigs(ctx context.Context, filter ConfigFilter) ([]*ScoringConfig, error) {
	query := `SELECT ` + configColumns + ` FROM scoring_configs WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.OwnerType != nil {
		n++
		query += fmt.Sprintf(" AND owner_type = $%d", n)
		args = append(args, string(*filter.OwnerType))
	}
	if filter.CompanyID != "" {
		n++
		query += fmt.Sprintf(" AND (company_id = $%d OR (owner_type = 'company' AND owner_id = $%d))", n, n)
		args = append(args, filter.CompanyID)
	}

	query += " ORDER BY updated_at DESC"
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, listLimit(filter))
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ScoringConfig
	for rows.Next() {
		cfg, err := scanPostgresConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

func scanPostgresConfig(row pgx.Row) (*ScoringConfig, error) {
	cfg := &ScoringConfig{}
	var ownerType string
	var criteriaJSON []byte
	err := row.Scan(
		&cfg.ID, &ownerType, &cfg.OwnerID, &cfg.CompanyID, &criteriaJSON, &cfg.MaxScore,
		&cfg.Version, &cfg.UpdatedBy, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cfg.OwnerType = OwnerType(ownerType)
	if err := json.Unmarshal(criteriaJSON, &cfg.Criteria); err != nil {
		return nil, fmt.Errorf("decode criteria for %s/%s: %w", ownerType, cfg.OwnerID, err)
	}
	return cfg, nil
}
