package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/InteliHire/internal/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeCriteria parses a criteria document from a request body field.
// Criteria or fields the client leaves out are taken from template.
func decodeCriteria(template scoring.Criteria, raw json.RawMessage) (scoring.Criteria, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, errors.New("criteria required")
	}
	return scoring.ParseCriteriaOnto(template, raw)
}
