package hermes

import "strings"

const (
	SubjectScoringAll = "intelihire.scoring.>"

	StreamName   = "INTELIHIRE_SCORING"
	StreamMaxAge = "2160h" // 90 days
)

// ValidToken reports whether s can be used as a single subject token.
func ValidToken(s string) bool {
	return s != "" && !strings.ContainsAny(s, ".*> \t\r\n")
}

func subjectScoring(ownerType, ownerID, event string) string {
	return "intelihire.scoring." + ownerType + "." + ownerID + "." + event
}

func SubjectScoringSaved(ownerType, ownerID string) string {
	return subjectScoring(ownerType, ownerID, "saved")
}

func SubjectScoringReset(ownerType, ownerID string) string {
	return subjectScoring(ownerType, ownerID, "reset")
}

func SubjectScoringDeleted(ownerType, ownerID string) string {
	return subjectScoring(ownerType, ownerID, "deleted")
}
