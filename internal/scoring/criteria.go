package scoring

// CriterionKey identifies one scoring dimension.
type CriterionKey string

const (
	KeyEducation          CriterionKey = "education"
	KeyExperience         CriterionKey = "experience"
	KeyEligibility        CriterionKey = "eligibility"
	KeyTraining           CriterionKey = "training"
	KeySkills             CriterionKey = "skills"
	KeyAwards             CriterionKey = "awards"
	KeyRelevantExperience CriterionKey = "relevant_experience"
	KeyCertifications     CriterionKey = "certifications"
)

// Keys is the closed set of criteria in canonical order. Distribution and
// validation walk criteria in this order.
var Keys = []CriterionKey{
	KeyEducation,
	KeyExperience,
	KeyEligibility,
	KeyTraining,
	KeySkills,
	KeyAwards,
	KeyRelevantExperience,
	KeyCertifications,
}

// IsKnownKey reports whether k belongs to the closed criterion set.
func IsKnownKey(k CriterionKey) bool {
	for _, known := range Keys {
		if k == known {
			return true
		}
	}
	return false
}

// SubCriterion is a discrete qualification tier within a criterion.
type SubCriterion struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Points      int    `json:"points" yaml:"points"`
}

// Criterion is one weighted scoring dimension.
type Criterion struct {
	Key         CriterionKey   `json:"key" yaml:"key"`
	Label       string         `json:"label" yaml:"label"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool           `json:"enabled" yaml:"enabled"`
	Weight      float64        `json:"weight" yaml:"weight"`
	MaxPoints   int            `json:"max_points" yaml:"max_points"`
	SubCriteria []SubCriterion `json:"sub_criteria" yaml:"sub_criteria"`
}

func (c *Criterion) clone() *Criterion {
	out := *c
	out.SubCriteria = append([]SubCriterion(nil), c.SubCriteria...)
	return &out
}

// Criteria is a full scoring configuration keyed by criterion.
// Intermediate invalid states are allowed; Validate decides whether it can be saved.
type Criteria map[CriterionKey]*Criterion

// Clone returns a deep copy.
func (c Criteria) Clone() Criteria {
	out := make(Criteria, len(c))
	for k, v := range c {
		if v == nil {
			continue
		}
		out[k] = v.clone()
	}
	return out
}

// Ordered returns the criteria present in c in canonical order.
func (c Criteria) Ordered() []*Criterion {
	out := make([]*Criterion, 0, len(Keys))
	for _, k := range Keys {
		if cr, ok := c[k]; ok && cr != nil {
			out = append(out, cr)
		}
	}
	return out
}

// Enabled returns the enabled criteria in canonical order.
func (c Criteria) Enabled() []*Criterion {
	var out []*Criterion
	for _, cr := range c.Ordered() {
		if cr.Enabled {
			out = append(out, cr)
		}
	}
	return out
}

// MaxScore returns the sum of MaxPoints over enabled criteria, the highest raw
// score achievable under c.
func MaxScore(c Criteria) int {
	total := 0
	for _, cr := range c.Enabled() {
		total += cr.MaxPoints
	}
	return total
}
