package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/InteliHire/internal/config"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

type OwnerType string

const (
	OwnerCompany OwnerType = "company"
	OwnerJob     OwnerType = "job"
)

// Valid reports whether t is a known owner type.
func (t OwnerType) Valid() bool {
	return t == OwnerCompany || t == OwnerJob
}

// ErrNotFound is returned by mutations that target a missing configuration.
var ErrNotFound = errors.New("scoring config not found")

// ScoringConfig is a custom scoring configuration saved for a company or a job.
type ScoringConfig struct {
	ID        uuid.UUID        `json:"id"`
	OwnerType OwnerType        `json:"owner_type"`
	OwnerID   string           `json:"owner_id"`
	CompanyID string           `json:"company_id,omitempty"` // jobs only
	Criteria  scoring.Criteria `json:"criteria"`
	MaxScore  int              `json:"max_score"`
	Version   int              `json:"version"`
	UpdatedBy string           `json:"updated_by,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ConfigFilter struct {
	OwnerType *OwnerType
	CompanyID string
	Limit     int
	Offset    int
}

// Store persists scoring configurations. Get returns (nil, nil) when no
// configuration exists for the owner.
type Store interface {
	GetScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) (*ScoringConfig, error)
	// SaveScoringConfig inserts or replaces the configuration for the owner,
	// bumping Version and filling ID, MaxScore and timestamps on cfg.
	SaveScoringConfig(ctx context.Context, cfg *ScoringConfig) error
	DeleteScoringConfig(ctx context.Context, ownerType OwnerType, ownerID string) error
	ListScoringConfigs(ctx context.Context, filter ConfigFilter) ([]*ScoringConfig, error)
	Close() error
}

// NewStore opens the backend selected by cfg.Driver.
func NewStore(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresStore(ctx, cfg.URL)
	case "sqlite":
		return NewSQLiteStore(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

const defaultListLimit = 100

func listLimit(f ConfigFilter) int {
	if f.Limit <= 0 {
		return defaultListLimit
	}
	return f.Limit
}
