package hermes

import "time"

// ScoringConfigEvent is published whenever a stored scoring configuration
// changes. Criteria is omitted for deletions.
type ScoringConfigEvent struct {
	EventID   string      `json:"event_id"`
	ConfigID  string      `json:"config_id,omitempty"`
	OwnerType string      `json:"owner_type"`
	OwnerID   string      `json:"owner_id"`
	CompanyID string      `json:"company_id,omitempty"`
	Version   int         `json:"version,omitempty"`
	MaxScore  int         `json:"max_score,omitempty"`
	Criteria  interface{} `json:"criteria,omitempty"`
	ChangedBy string      `json:"changed_by,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
