package scoring

import (
	"fmt"
	"strings"
)

// Blocking validation messages.
const (
	ErrMsgNoneEnabled   = "At least one criterion must be enabled"
	ErrMsgWeightSum     = "Total weight must equal 100%"
	ErrMsgMaxPoints     = "Max points must be between 1 and 100"
	ErrMsgWeightNotZero = "Weight must be greater than 0 for enabled criteria"
)

const (
	MinMaxPoints = 1
	MaxMaxPoints = 100
)

// ValidationResult is the outcome of validating a configuration.
// Errors block saving; Warnings are advisory and never affect Valid.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// InvalidConfigError carries the blocking findings of a failed validation.
type InvalidConfigError struct {
	Errors []string
}

func (e *InvalidConfigError) Error() string {
	return "invalid scoring configuration: " + strings.Join(e.Errors, "; ")
}

// Err returns nil when r is valid and an *InvalidConfigError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &InvalidConfigError{Errors: append([]string(nil), r.Errors...)}
}

// Validate checks c against the structural and numeric invariants of a
// saveable configuration. Each violated invariant is reported once.
func Validate(c Criteria) ValidationResult {
	res := ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
	}

	enabled := c.Enabled()
	if len(enabled) == 0 {
		res.Errors = append(res.Errors, ErrMsgNoneEnabled)
	}
	if !ValidWeights(c) {
		res.Errors = append(res.Errors, ErrMsgWeightSum)
	}

	var badPoints, badWeight bool
	for _, cr := range enabled {
		if cr.MaxPoints < MinMaxPoints || cr.MaxPoints > MaxMaxPoints {
			badPoints = true
		}
		if cr.Weight <= 0 {
			badWeight = true
		}
	}
	if badPoints {
		res.Errors = append(res.Errors, ErrMsgMaxPoints)
	}
	if badWeight {
		res.Errors = append(res.Errors, ErrMsgWeightNotZero)
	}

	for _, cr := range enabled {
		res.Warnings = append(res.Warnings, subCriteriaWarnings(cr)...)
	}

	res.Valid = len(res.Errors) == 0
	return res
}

// SubCriteriaDescending reports whether sub-criteria points never increase in
// listed order.
func SubCriteriaDescending(cr *Criterion) bool {
	for i := 1; i < len(cr.SubCriteria); i++ {
		if cr.SubCriteria[i].Points > cr.SubCriteria[i-1].Points {
			return false
		}
	}
	return true
}

func subCriteriaWarnings(cr *Criterion) []string {
	var out []string
	if !SubCriteriaDescending(cr) {
		out = append(out, fmt.Sprintf("%s: sub-criteria should be listed in descending order of points", cr.Label))
	}
	for _, sc := range cr.SubCriteria {
		if sc.Points < 0 || sc.Points > cr.MaxPoints {
			out = append(out, fmt.Sprintf("%s: %q points must be between 0 and %d", cr.Label, sc.Name, cr.MaxPoints))
		}
	}
	return out
}
