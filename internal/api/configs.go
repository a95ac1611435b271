package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/InteliHire/internal/hermes"
	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
	"github.com/MikeSquared-Agency/InteliHire/internal/store"
)

type ConfigsHandler struct {
	store    store.Store
	hermes   hermes.Client
	template scoring.Criteria
	logger   *slog.Logger
}

func NewConfigsHandler(s store.Store, h hermes.Client, template scoring.Criteria, logger *slog.Logger) *ConfigsHandler {
	return &ConfigsHandler{store: s, hermes: h, template: template, logger: logger}
}

func ownerFromPath(w http.ResponseWriter, r *http.Request) (store.OwnerType, string, bool) {
	ownerType := store.OwnerType(chi.URLParam(r, "owner_type"))
	if !ownerType.Valid() {
		writeError(w, http.StatusBadRequest, "owner_type must be company or job")
		return "", "", false
	}
	ownerID := chi.URLParam(r, "owner_id")
	if !hermes.ValidToken(ownerID) {
		writeError(w, http.StatusBadRequest, "owner_id must not be empty or contain '.', '*', '>' or whitespace")
		return "", "", false
	}
	return ownerType, ownerID, true
}

// List handles GET /api/v1/scoring/configs
func (h *ConfigsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ConfigFilter{CompanyID: q.Get("company_id")}
	if s := q.Get("owner_type"); s != "" {
		ot := store.OwnerType(s)
		if !ot.Valid() {
			writeError(w, http.StatusBadRequest, "owner_type must be company or job")
			return
		}
		filter.OwnerType = &ot
	}
	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if s := q.Get("offset"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			filter.Offset = n
		}
	}

	configs, err := h.store.ListScoringConfigs(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if configs == nil {
		configs = []*store.ScoringConfig{}
	}
	writeJSON(w, http.StatusOK, configs)
}

// Get handles GET /api/v1/scoring/configs/{owner_type}/{owner_id}
// Jobs fall back to their company's configuration when ?company_id is given,
// then to the default template.
func (h *ConfigsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerType, ownerID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	res, err := store.Resolve(r.Context(), h.store, ownerType, ownerID, r.URL.Query().Get("company_id"), h.template)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type SaveConfigRequest struct {
	Criteria  json.RawMessage `json:"criteria"`
	CompanyID string          `json:"company_id,omitempty"`
}

// ValidationErrorResponse is returned with 422 when a save is rejected.
type ValidationErrorResponse struct {
	Error    string   `json:"error"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Put handles PUT /api/v1/scoring/configs/{owner_type}/{owner_id}
// The configuration is stored only when validation reports no errors.
func (h *ConfigsHandler) Put(w http.ResponseWriter, r *http.Request) {
	ownerType, ownerID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	var req SaveConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := decodeCriteria(h.template, req.Criteria)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	v := scoring.Validate(c)
	observeValidation(v.Valid)
	if !v.Valid {
		configSavesTotal.WithLabelValues("rejected").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:    "invalid scoring configuration",
			Errors:   v.Errors,
			Warnings: v.Warnings,
		})
		return
	}

	cfg, ok := h.save(w, r, ownerType, ownerID, req.CompanyID, c)
	if !ok {
		return
	}
	h.publish(r.Context(), hermes.SubjectScoringSaved(string(ownerType), ownerID), cfg)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"config":   cfg,
		"warnings": v.Warnings,
	})
}

type ResetConfigRequest struct {
	CompanyID string `json:"company_id,omitempty"`
}

// Reset handles POST /api/v1/scoring/configs/{owner_type}/{owner_id}/reset
// The stored configuration is replaced with the default template.
func (h *ConfigsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ownerType, ownerID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	// The body is optional.
	var req ResetConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, ok := h.save(w, r, ownerType, ownerID, req.CompanyID, h.template.Clone())
	if !ok {
		return
	}
	h.publish(r.Context(), hermes.SubjectScoringReset(string(ownerType), ownerID), cfg)
	writeJSON(w, http.StatusOK, map[string]interface{}{"config": cfg})
}

// Delete handles DELETE /api/v1/scoring/configs/{owner_type}/{owner_id}
func (h *ConfigsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerType, ownerID, ok := ownerFromPath(w, r)
	if !ok {
		return
	}
	err := h.store.DeleteScoringConfig(r.Context(), ownerType, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "scoring config not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.hermes != nil {
		h.publishEvent(r.Context(), hermes.SubjectScoringDeleted(string(ownerType), ownerID), hermes.ScoringConfigEvent{
			EventID:   uuid.NewString(),
			OwnerType: string(ownerType),
			OwnerID:   ownerID,
			ChangedBy: UserIDFromContext(r.Context()),
			Timestamp: time.Now().UTC(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ConfigsHandler) save(w http.ResponseWriter, r *http.Request, ownerType store.OwnerType, ownerID, companyID string, c scoring.Criteria) (*store.ScoringConfig, bool) {
	if ownerType == store.OwnerCompany {
		companyID = ""
	}
	cfg := &store.ScoringConfig{
		OwnerType: ownerType,
		OwnerID:   ownerID,
		CompanyID: companyID,
		Criteria:  c,
		UpdatedBy: UserIDFromContext(r.Context()),
	}
	if err := h.store.SaveScoringConfig(r.Context(), cfg); err != nil {
		configSavesTotal.WithLabelValues("error").Inc()
		h.logger.Error("save scoring config failed",
			"owner_type", ownerType,
			"owner_id", ownerID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "failed to save scoring config")
		return nil, false
	}
	configSavesTotal.WithLabelValues("saved").Inc()
	h.logger.Info("scoring config saved",
		"owner_type", ownerType,
		"owner_id", ownerID,
		"version", cfg.Version,
		"max_score", cfg.MaxScore,
	)
	return cfg, true
}

func (h *ConfigsHandler) publish(ctx context.Context, subject string, cfg *store.ScoringConfig) {
	if h.hermes == nil {
		return
	}
	h.publishEvent(ctx, subject, hermes.ScoringConfigEvent{
		EventID:   uuid.NewString(),
		ConfigID:  cfg.ID.String(),
		OwnerType: string(cfg.OwnerType),
		OwnerID:   cfg.OwnerID,
		CompanyID: cfg.CompanyID,
		Version:   cfg.Version,
		MaxScore:  cfg.MaxScore,
		Criteria:  cfg.Criteria,
		ChangedBy: cfg.UpdatedBy,
		Timestamp: cfg.UpdatedAt,
	})
}

// publishEvent never fails the request: the configuration is already stored.
func (h *ConfigsHandler) publishEvent(ctx context.Context, subject string, evt hermes.ScoringConfigEvent) {
	if err := h.hermes.Publish(ctx, subject, evt); err != nil {
		h.logger.Warn("publish scoring event failed", "subject", subject, "error", err)
	}
}
