package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
	"github.com/MikeSquared-Agency/InteliHire/internal/store"
)

// Mocks
type memStore struct {
	mu      sync.Mutex
	configs map[string]*store.ScoringConfig
}

func newMemStore() *memStore {
	return &memStore{configs: make(map[string]*store.ScoringConfig)}
}

func memKey(ot store.OwnerType, id string) string { return string(ot) + "/" + id }

func (m *memStore) GetScoringConfig(_ context.Context, ot store.OwnerType, id string) (*store.ScoringConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.configs[memKey(ot, id)], nil
}

func (m *memStore) SaveScoringConfig(_ context.Context, cfg *store.ScoringConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if prev, ok := m.configs[memKey(cfg.OwnerType, cfg.OwnerID)]; ok {
		cfg.ID = prev.ID
		cfg.Version = prev.Version + 1
		cfg.CreatedAt = prev.CreatedAt
	} else {
		cfg.ID = uuid.New()
		cfg.Version = 1
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	cfg.MaxScore = scoring.MaxScore(cfg.Criteria)
	m.configs[memKey(cfg.OwnerType, cfg.OwnerID)] = cfg
	return nil
}

func (m *memStore) DeleteScoringConfig(_ context.Context, ot store.OwnerType, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[memKey(ot, id)]; !ok {
		return store.ErrNotFound
	}
	delete(m.configs, memKey(ot, id))
	return nil
}

func (m *memStore) ListScoringConfigs(_ context.Context, f store.ConfigFilter) ([]*store.ScoringConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*store.ScoringConfig
	for _, cfg := range m.configs {
		if f.OwnerType != nil && cfg.OwnerType != *f.OwnerType {
			continue
		}
		out = append(out, cfg)
	}
	return out, nil
}

func (m *memStore) Close() error { return nil }

type recordingHermes struct {
	mu       sync.Mutex
	subjects []string
}

func (h *recordingHermes) Publish(_ context.Context, subject string, _ interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subjects = append(h.subjects, subject)
	return nil
}
func (h *recordingHermes) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (h *recordingHermes) Close()                                           {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestRouter() (http.Handler, *memStore, *recordingHermes) {
	ms := newMemStore()
	hc := &recordingHermes{}
	router := NewRouter(ms, hc, scoring.DefaultCriteria(), RouterOptions{AdminToken: "test-token"}, testLogger())
	return router, ms, hc
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, admin bool) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "recruiter-1")
	if admin {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), w.Body.String())
}

func TestDefaultCriteriaEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "GET", "/api/v1/scoring/default", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CriteriaResponse
	decodeResponse(t, w, &resp)
	assert.True(t, resp.Validation.Valid)
	assert.Equal(t, 195, resp.MaxScore)
	assert.InDelta(t, 100.0, resp.TotalWeight, 0.001)
	assert.Len(t, resp.Criteria, len(scoring.Keys))
}

func TestRequiresUserID(t *testing.T) {
	router, _, _ := setupTestRouter()

	req := httptest.NewRequest("GET", "/api/v1/scoring/default", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "POST", "/api/v1/scoring/validate", `{"criteria":{"awards":{"weight":10}}}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CriteriaResponse
	decodeResponse(t, w, &resp)
	assert.False(t, resp.Validation.Valid)
	assert.Equal(t, []string{scoring.ErrMsgWeightSum}, resp.Validation.Errors)
	assert.InDelta(t, 105.0, resp.TotalWeight, 0.001)
}

func TestValidateEndpoint_Errors(t *testing.T) {
	router, _, _ := setupTestRouter()

	cases := []struct {
		name string
		body string
	}{
		{"malformed body", `{"criteria":`},
		{"missing criteria", `{}`},
		{"unknown criterion", `{"criteria":{"hobbies":{"weight":10}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, "POST", "/api/v1/scoring/validate", tc.body, false)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestDistributeEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{"criteria":{"awards":{"enabled":false},"certifications":{"enabled":false}}}`
	w := doRequest(t, router, "POST", "/api/v1/scoring/distribute", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CriteriaResponse
	decodeResponse(t, w, &resp)
	assert.True(t, resp.Validation.Valid)
	// 100 / 6 = 16 each, remainder 4 on the first enabled criterion.
	assert.Equal(t, 20.0, resp.Criteria[scoring.KeyEducation].Weight)
	assert.Equal(t, 16.0, resp.Criteria[scoring.KeyExperience].Weight)
	// Disabled criteria keep their stored weight.
	assert.Equal(t, 5.0, resp.Criteria[scoring.KeyAwards].Weight)
	assert.InDelta(t, 100.0, resp.TotalWeight, 0.001)
}

func TestMaxScoreEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "POST", "/api/v1/scoring/max-score", `{"criteria":{"education":{"enabled":false}}}`, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int
	decodeResponse(t, w, &resp)
	assert.Equal(t, 155, resp["max_score"])
}

func TestEditEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{
		"criteria": {},
		"ops": [
			{"op": "set_weight", "key": "skills", "value": "150"},
			{"op": "set_max_points", "key": "awards", "value": 0},
			{"op": "set_sub_points", "key": "education", "index": 0, "value": 999},
			{"op": "toggle", "key": "training"}
		]
	}`
	w := doRequest(t, router, "POST", "/api/v1/scoring/edit", body, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CriteriaResponse
	decodeResponse(t, w, &resp)
	assert.Equal(t, 100.0, resp.Criteria[scoring.KeySkills].Weight)
	assert.Equal(t, 1, resp.Criteria[scoring.KeyAwards].MaxPoints)
	assert.Equal(t, 40, resp.Criteria[scoring.KeyEducation].SubCriteria[0].Points)
	assert.False(t, resp.Criteria[scoring.KeyTraining].Enabled)
	assert.False(t, resp.Validation.Valid)
}

func TestEditEndpoint_ResetAndDistribute(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{
		"criteria": {"skills": {"weight": 90}},
		"ops": [{"op": "reset"}, {"op": "toggle", "key": "awards"}, {"op": "auto_distribute"}]
	}`
	w := doRequest(t, router, "POST", "/api/v1/scoring/edit", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CriteriaResponse
	decodeResponse(t, w, &resp)
	assert.True(t, resp.Validation.Valid)
	assert.False(t, resp.Criteria[scoring.KeyAwards].Enabled)
	// 100 / 7 = 14, remainder 2 on education.
	assert.Equal(t, 16.0, resp.Criteria[scoring.KeyEducation].Weight)
	assert.Equal(t, 14.0, resp.Criteria[scoring.KeySkills].Weight)
}

func TestEditEndpoint_BadOps(t *testing.T) {
	router, _, _ := setupTestRouter()

	cases := []struct {
		name string
		op   string
	}{
		{"unknown op", `{"op": "explode", "key": "skills"}`},
		{"unknown key", `{"op": "toggle", "key": "hobbies"}`},
		{"index out of range", `{"op": "set_sub_points", "key": "awards", "index": 7, "value": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"criteria": {}, "ops": [` + tc.op + `]}`
			w := doRequest(t, router, "POST", "/api/v1/scoring/edit", body, false)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	body := `{"criteria": {}, "applicant_id": "app-1", "awarded": {"education": 40, "experience": 15}}`
	w := doRequest(t, router, "POST", "/api/v1/scoring/evaluate", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var res scoring.ScoringResult
	decodeResponse(t, w, &res)
	assert.Equal(t, 55, res.RawScore)
	assert.Equal(t, 195, res.MaxScore)
	// education 40/40*20 + experience 15/30*20
	assert.InDelta(t, 30.0, res.WeightedScore, 0.001)

	w = doRequest(t, router, "POST", "/api/v1/scoring/evaluate", `{"criteria": {}, "awarded": {"hobbies": 1}}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "POST", "/api/v1/scoring/export", `{"criteria":{}}`, false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	// xlsx is a zip archive
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestExportEndpoint_WorkbookFailure(t *testing.T) {
	orig := writeWorkbook
	writeWorkbook = func(scoring.Criteria, io.Writer) error { return errors.New("disk full") }
	t.Cleanup(func() { writeWorkbook = orig })

	router, _, _ := setupTestRouter()
	w := doRequest(t, router, "POST", "/api/v1/scoring/export", `{"criteria":{}}`, false)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	var body map[string]string
	decodeResponse(t, w, &body)
	assert.Equal(t, "failed to export scoring criteria", body["error"])
}

func TestSaveConfigLifecycle(t *testing.T) {
	router, ms, hc := setupTestRouter()

	// No stored config: the default template applies.
	w := doRequest(t, router, "GET", "/api/v1/scoring/configs/company/acme", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var res store.Resolved
	decodeResponse(t, w, &res)
	assert.Equal(t, store.SourceDefault, res.Source)
	assert.Equal(t, 195, res.MaxScore)

	body := `{"criteria":{"awards":{"enabled":false},"skills":{"weight":20}}}`
	w = doRequest(t, router, "PUT", "/api/v1/scoring/configs/company/acme", body, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	saved := ms.configs["company/acme"]
	require.NotNil(t, saved)
	assert.Equal(t, 1, saved.Version)
	assert.Equal(t, 185, saved.MaxScore)
	assert.Equal(t, "recruiter-1", saved.UpdatedBy)

	// A job with no config of its own inherits the company's.
	w = doRequest(t, router, "GET", "/api/v1/scoring/configs/job/job-9?company_id=acme", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	res = store.Resolved{}
	decodeResponse(t, w, &res)
	assert.Equal(t, store.SourceCompany, res.Source)
	assert.False(t, res.Criteria[scoring.KeyAwards].Enabled)

	w = doRequest(t, router, "POST", "/api/v1/scoring/configs/company/acme/reset", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, ms.configs["company/acme"].Version)
	assert.Equal(t, 195, ms.configs["company/acme"].MaxScore)

	w = doRequest(t, router, "DELETE", "/api/v1/scoring/configs/company/acme", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, ms.configs)

	w = doRequest(t, router, "DELETE", "/api/v1/scoring/configs/company/acme", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []string{
		"intelihire.scoring.company.acme.saved",
		"intelihire.scoring.company.acme.reset",
		"intelihire.scoring.company.acme.deleted",
	}, hc.subjects)
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	router, ms, hc := setupTestRouter()

	body := `{"criteria":{"skills":{"weight":0},"awards":{"max_points":0}}}`
	w := doRequest(t, router, "PUT", "/api/v1/scoring/configs/job/job-1", body, true)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ValidationErrorResponse
	decodeResponse(t, w, &resp)
	assert.Equal(t, "invalid scoring configuration", resp.Error)
	assert.Equal(t, []string{
		scoring.ErrMsgWeightSum,
		scoring.ErrMsgMaxPoints,
		scoring.ErrMsgWeightNotZero,
	}, resp.Errors)
	assert.Empty(t, ms.configs)
	assert.Empty(t, hc.subjects)
}

func TestMutatingRoutesRequireAdminToken(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "PUT", "/api/v1/scoring/configs/company/acme", `{"criteria":{}}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, router, "DELETE", "/api/v1/scoring/configs/company/acme", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInvalidOwnerType(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "GET", "/api/v1/scoring/configs/team/t1", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/scoring/configs?owner_type=team", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidOwnerID(t *testing.T) {
	router, ms, hc := setupTestRouter()

	for _, path := range []string{"job/a.b", "company/acme*", "company/%3E", "job/a%20b"} {
		w := doRequest(t, router, "PUT", "/api/v1/scoring/configs/"+path, `{"criteria":{}}`, true)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)

		w = doRequest(t, router, "POST", "/api/v1/scoring/configs/"+path+"/reset", "", true)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	assert.Empty(t, ms.configs)
	assert.Empty(t, hc.subjects)
}

func TestListConfigs(t *testing.T) {
	router, _, _ := setupTestRouter()

	w := doRequest(t, router, "GET", "/api/v1/scoring/configs", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, path := range []string{"company/acme", "job/j1", "job/j2"} {
		w = doRequest(t, router, "PUT", "/api/v1/scoring/configs/"+path, `{"criteria":{}}`, true)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doRequest(t, router, "GET", "/api/v1/scoring/configs?owner_type=job", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var configs []store.ScoringConfig
	decodeResponse(t, w, &configs)
	assert.Len(t, configs, 2)
}

func TestMetricsRouter(t *testing.T) {
	r := NewMetricsRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "intelihire_scoring_distributions_total")
}
