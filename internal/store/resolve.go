package store

import (
	"context"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

// Source says where an effective configuration came from.
type Source string

const (
	SourceJob     Source = "job"
	SourceCompany Source = "company"
	SourceDefault Source = "default"
)

// Resolved is the effective configuration for an owner.
// Config is nil when Source is SourceDefault.
type Resolved struct {
	Source   Source           `json:"source"`
	Config   *ScoringConfig   `json:"config,omitempty"`
	Criteria scoring.Criteria `json:"criteria"`
	MaxScore int              `json:"max_score"`
}

// Resolve finds the configuration that applies to an owner: a job's own
// configuration, else its company's, else template. companyID is only consulted
// for jobs and may be empty. template is cloned, never returned directly.
func Resolve(ctx context.Context, s Store, ownerType OwnerType, ownerID, companyID string, template scoring.Criteria) (*Resolved, error) {
	cfg, err := s.GetScoringConfig(ctx, ownerType, ownerID)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		src := SourceCompany
		if ownerType == OwnerJob {
			src = SourceJob
		}
		return resolved(src, cfg), nil
	}

	if ownerType == OwnerJob && companyID != "" {
		cfg, err = s.GetScoringConfig(ctx, OwnerCompany, companyID)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return resolved(SourceCompany, cfg), nil
		}
	}

	c := template.Clone()
	return &Resolved{Source: SourceDefault, Criteria: c, MaxScore: scoring.MaxScore(c)}, nil
}

func resolved(src Source, cfg *ScoringConfig) *Resolved {
	return &Resolved{Source: src, Config: cfg, Criteria: cfg.Criteria, MaxScore: cfg.MaxScore}
}
