package scoring

import (
	"log/slog"
)

// FactorResult captures one criterion's contribution to an applicant's score.
type FactorResult struct {
	Key       CriterionKey `json:"key"`
	Label     string       `json:"label"`
	Enabled   bool         `json:"enabled"`
	Awarded   int          `json:"awarded"`
	MaxPoints int          `json:"max_points"`
	Weight    float64      `json:"weight"`
	Weighted  float64      `json:"weighted"`
	Reason    string       `json:"reason"`
}

// ScoringResult is the scoring output for one applicant.
type ScoringResult struct {
	RawScore      int            `json:"raw_score"`
	MaxScore      int            `json:"max_score"`
	WeightedScore float64        `json:"weighted_score"`
	Factors       []FactorResult `json:"factors"`
}

// Evaluate scores awarded raw points against c. Awards are clamped to
// [0, MaxPoints]; missing awards count as zero. Each enabled criterion adds
// awarded/MaxPoints * Weight to the weighted score, so a perfect applicant
// under a valid configuration scores 100.
func Evaluate(c Criteria, awarded map[CriterionKey]int) ScoringResult {
	var result ScoringResult

	for _, cr := range c.Ordered() {
		f := FactorResult{
			Key:       cr.Key,
			Label:     cr.Label,
			Enabled:   cr.Enabled,
			MaxPoints: cr.MaxPoints,
		}
		if !cr.Enabled {
			f.Reason = "disabled"
			result.Factors = append(result.Factors, f)
			continue
		}

		pts, ok := awarded[cr.Key]
		f.Awarded = clampInt(pts, 0, cr.MaxPoints)
		f.Weight = cr.Weight
		if cr.MaxPoints > 0 {
			f.Weighted = float64(f.Awarded) / float64(cr.MaxPoints) * cr.Weight
		}
		switch {
		case !ok:
			f.Reason = "no points awarded"
		case f.Awarded != pts:
			f.Reason = "clamped to allowed range"
		default:
			f.Reason = "awarded"
		}

		result.RawScore += f.Awarded
		result.MaxScore += cr.MaxPoints
		result.WeightedScore += f.Weighted
		result.Factors = append(result.Factors, f)
	}

	return result
}

// Scorer scores applicants against one fixed configuration.
type Scorer struct {
	criteria Criteria
	logger   *slog.Logger
}

// NewScorer creates a Scorer over a private copy of criteria.
func NewScorer(criteria Criteria, logger *slog.Logger) *Scorer {
	return &Scorer{
		criteria: criteria.Clone(),
		logger:   logger,
	}
}

// ScoreApplicant evaluates one applicant. Scoring still proceeds when the
// configuration fails validation, but the result is logged as unreliable.
func (s *Scorer) ScoreApplicant(applicantID string, awarded map[CriterionKey]int) ScoringResult {
	if v := Validate(s.criteria); !v.Valid {
		s.logger.Warn("scoring with invalid configuration",
			"applicant", applicantID,
			"errors", v.Errors,
		)
	}
	result := Evaluate(s.criteria, awarded)
	s.logger.Debug("applicant scored",
		"applicant", applicantID,
		"raw_score", result.RawScore,
		"weighted_score", result.WeightedScore,
	)
	return result
}
