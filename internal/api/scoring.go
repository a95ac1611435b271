package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/InteliHire/internal/export"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

// ScoringHandler exposes the stateless scoring engine: nothing it does
// touches storage.
type ScoringHandler struct {
	template scoring.Criteria
	logger   *slog.Logger
}

func NewScoringHandler(template scoring.Criteria, logger *slog.Logger) *ScoringHandler {
	return &ScoringHandler{template: template, logger: logger}
}

type CriteriaRequest struct {
	Criteria json.RawMessage `json:"criteria"`
}

// CriteriaResponse pairs a configuration with its current validation state.
type CriteriaResponse struct {
	Criteria    scoring.Criteria         `json:"criteria"`
	Validation  scoring.ValidationResult `json:"validation"`
	MaxScore    int                      `json:"max_score"`
	TotalWeight float64                  `json:"total_weight"`
}

func newCriteriaResponse(c scoring.Criteria) CriteriaResponse {
	v := scoring.Validate(c)
	observeValidation(v.Valid)
	return CriteriaResponse{
		Criteria:    c,
		Validation:  v,
		MaxScore:    scoring.MaxScore(c),
		TotalWeight: scoring.EnabledWeightSum(c),
	}
}

func (h *ScoringHandler) criteria(w http.ResponseWriter, raw json.RawMessage) (scoring.Criteria, bool) {
	c, err := decodeCriteria(h.template, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return c, true
}

// Default handles GET /api/v1/scoring/default
func (h *ScoringHandler) Default(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCriteriaResponse(h.template.Clone()))
}

// Validate handles POST /api/v1/scoring/validate
func (h *ScoringHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCriteriaResponse(c))
}

// MaxScore handles POST /api/v1/scoring/max-score
func (h *ScoringHandler) MaxScore(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"max_score": scoring.MaxScore(c)})
}

// Distribute handles POST /api/v1/scoring/distribute
func (h *ScoringHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}
	scoring.AutoDistribute(c)
	distributionsTotal.Inc()
	writeJSON(w, http.StatusOK, newCriteriaResponse(c))
}

// Edit operations accepted by POST /api/v1/scoring/edit.
const (
	OpToggle         = "toggle"
	OpSetWeight      = "set_weight"
	OpSetMaxPoints   = "set_max_points"
	OpSetSubPoints   = "set_sub_points"
	OpAutoDistribute = "auto_distribute"
	OpReset          = "reset"
)

// EditOp is one editing step. Value is left untyped: form fields send
// numbers as strings and the setters parse and clamp.
type EditOp struct {
	Op    string               `json:"op"`
	Key   scoring.CriterionKey `json:"key,omitempty"`
	Index int                  `json:"index,omitempty"`
	Value interface{}          `json:"value,omitempty"`
}

type EditRequest struct {
	Criteria json.RawMessage `json:"criteria"`
	Ops      []EditOp        `json:"ops"`
}

// Edit handles POST /api/v1/scoring/edit. Operations apply in order; the
// request fails as a whole if any operation is malformed.
func (h *ScoringHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}

	for i, op := range req.Ops {
		next, err := h.apply(c, op)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("op %d: %v", i, err))
			return
		}
		c = next
	}
	writeJSON(w, http.StatusOK, newCriteriaResponse(c))
}

func (h *ScoringHandler) apply(c scoring.Criteria, op EditOp) (scoring.Criteria, error) {
	switch op.Op {
	case OpAutoDistribute:
		scoring.AutoDistribute(c)
		distributionsTotal.Inc()
		return c, nil
	case OpReset:
		return h.template.Clone(), nil
	case OpToggle, OpSetWeight, OpSetMaxPoints, OpSetSubPoints:
	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}

	if !scoring.IsKnownKey(op.Key) {
		return nil, fmt.Errorf("unknown criterion %q", op.Key)
	}
	switch op.Op {
	case OpToggle:
		c.Toggle(op.Key)
	case OpSetWeight:
		c.SetWeight(op.Key, op.Value)
	case OpSetMaxPoints:
		c.SetMaxPoints(op.Key, op.Value)
	case OpSetSubPoints:
		if op.Index < 0 || op.Index >= len(c[op.Key].SubCriteria) {
			return nil, fmt.Errorf("sub-criterion index %d out of range for %s", op.Index, op.Key)
		}
		c.SetSubCriterionPoints(op.Key, op.Index, op.Value)
	}
	return c, nil
}

type EvaluateRequest struct {
	Criteria    json.RawMessage              `json:"criteria"`
	ApplicantID string                       `json:"applicant_id,omitempty"`
	Awarded     map[scoring.CriterionKey]int `json:"awarded"`
}

// Evaluate handles POST /api/v1/scoring/evaluate
func (h *ScoringHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}
	for k := range req.Awarded {
		if !scoring.IsKnownKey(k) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown criterion %q", k))
			return
		}
	}

	result := scoring.NewScorer(c, h.logger).ScoreApplicant(req.ApplicantID, req.Awarded)
	evaluationsTotal.Inc()
	writeJSON(w, http.StatusOK, result)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var writeWorkbook = export.WriteCriteria

// Export handles POST /api/v1/scoring/export and returns the configuration
// as an Excel workbook.
func (h *ScoringHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := h.criteria(w, req.Criteria)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := writeWorkbook(c, &buf); err != nil {
		h.logger.Error("export scoring criteria failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export scoring criteria")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="scoring-criteria.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write scoring export failed", "error", err)
	}
}
