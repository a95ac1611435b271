package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scoring_configs (
	id          TEXT PRIMARY KEY,
	owner_type  TEXT NOT NULL,
	owner_id    TEXT NOT NULL,
	company_id  TEXT NOT NULL DEFAULT '',
	criteria    TEXT NOT NULL,
	max_score   INTEGER NOT NULL,
	version     INTEGER NOT NULL DEFAULT 1,
	updated_by  TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (owner_type, owner_id)
);
CREATE INDEX IF NOT EXISTS scoring_configs_company_idx ON scoring_configs (company_id);
`

// sqliteTime keeps stored timestamps fixed-width so they sort as text.
const sqliteTime = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps scoring configurations in an embedded SQLite file.
// Useful for single-node deployments and local development.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and runs migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) GetScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) (*ScoringConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+configColumns+`
		FROM scoring_configs WHERE owner_type = ? AND owner_id = ?`,
		string(ownerType), ownerID,
	)
	cfg, err := scanSQLiteConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *SQLiteStore) SaveScoringConfig(ctx context.Context, cfg *ScoringConfig) error {
	criteriaJSON, err := json.Marshal(cfg.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	cfg.MaxScore = scoring.MaxScore(cfg.Criteria)
	now := time.Now().UTC().Format(sqliteTime)

	var id, createdAt, updatedAt string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO scoring_configs (id, owner_type, owner_id, company_id, criteria, max_score, updated_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_type, owner_id) DO UPDATE SET
			company_id = excluded.company_id,
			criteria   = excluded.criteria,
			max_score  = excluded.max_score,
			updated_by = excluded.updated_by,
			version    = scoring_configs.version + 1,
			updated_at = excluded.updated_at
		RETURNING id, version, created_at, updated_at`,
		uuid.New().String(), string(cfg.OwnerType), cfg.OwnerID, cfg.CompanyID,
		string(criteriaJSON), cfg.MaxScore, cfg.UpdatedBy, now, now,
	).Scan(&id, &cfg.Version, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("upsert scoring config: %w", err)
	}

	if cfg.ID, err = uuid.Parse(id); err != nil {
		return fmt.Errorf("parse id: %w", err)
	}
	if cfg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	if cfg.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return fmt.Errorf("parse updated_at: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM scoring_configs WHERE owner_type = ? AND owner_id = ?`,
		string(ownerType), ownerID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListScoringConfigs(ctx context.Context, filter ConfigFilter) ([]*ScoringConfig, error) {
	query := `SELECT ` + configColumns + ` FROM scoring_configs WHERE 1=1`
	args := []interface{}{}

	if filter.OwnerType != nil {
		query += " AND owner_type = ?"
		args = append(args, string(*filter.OwnerType))
	}
	if filter.CompanyID != "" {
		query += " AND (company_id = ? OR (owner_type = 'company' AND owner_id = ?))"
		args = append(args, filter.CompanyID, filter.CompanyID)
	}
	query += " ORDER BY updated_at DESC LIMIT ? OFFSET ?"
	args = append(args, listLimit(filter), filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ScoringConfig
	for rows.Next() {
		cfg, err := scanSQLiteConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteConfig(row sqlScanner) (*ScoringConfig, error) {
	cfg := &ScoringConfig{}
	var id, ownerType, criteriaJSON, createdAt, updatedAt string
	err := row.Scan(
		&id, &ownerType, &cfg.OwnerID, &cfg.CompanyID, &criteriaJSON, &cfg.MaxScore,
		&cfg.Version, &cfg.UpdatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	cfg.OwnerType = OwnerType(ownerType)
	if cfg.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	if cfg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if cfg.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(criteriaJSON), &cfg.Criteria); err != nil {
		return nil, fmt.Errorf("decode criteria for %s/%s: %w", ownerType, cfg.OwnerID, err)
	}
	return cfg, nil
}
