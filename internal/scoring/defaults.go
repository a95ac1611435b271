package scoring

// DefaultCriteria returns a fresh copy of the built-in scoring template.
// All eight criteria are enabled and weights sum to 100.
func DefaultCriteria() Criteria {
	return Criteria{
		KeyEducation: {
			Key:         KeyEducation,
			Label:       "Education",
			Description: "Highest completed academic degree",
			Enabled:     true,
			Weight:      20,
			MaxPoints:   40,
			SubCriteria: []SubCriterion{
				{Name: "Doctorate", Description: "PhD or equivalent doctoral degree", Points: 40},
				{Name: "Master's", Description: "Completed master's degree", Points: 30},
				{Name: "Bachelor's", Description: "Completed bachelor's degree", Points: 20},
				{Name: "Associate / Vocational", Description: "Two-year or vocational diploma", Points: 10},
			},
		},
		KeyExperience: {
			Key:         KeyExperience,
			Label:       "Experience",
			Description: "Total years of professional work experience",
			Enabled:     true,
			Weight:      20,
			MaxPoints:   30,
			SubCriteria: []SubCriterion{
				{Name: "10+ years", Points: 30},
				{Name: "5-9 years", Points: 20},
				{Name: "2-4 years", Points: 10},
				{Name: "Under 2 years", Points: 5},
			},
		},
		KeyEligibility: {
			Key:         KeyEligibility,
			Label:       "Eligibility",
			Description: "Professional licenses and civil service eligibility",
			Enabled:     true,
			Weight:      10,
			MaxPoints:   20,
			SubCriteria: []SubCriterion{
				{Name: "Professional license", Description: "Board or bar passer", Points: 20},
				{Name: "Civil service eligibility", Points: 15},
				{Name: "Other eligibility", Points: 5},
			},
		},
		KeyTraining: {
			Key:         KeyTraining,
			Label:       "Training",
			Description: "Relevant training hours completed in the last five years",
			Enabled:     true,
			Weight:      10,
			MaxPoints:   20,
			SubCriteria: []SubCriterion{
				{Name: "40+ hours", Points: 20},
				{Name: "16-39 hours", Points: 12},
				{Name: "8-15 hours", Points: 6},
			},
		},
		KeySkills: {
			Key:         KeySkills,
			Label:       "Skills",
			Description: "Proficiency in the skills listed on the job posting",
			Enabled:     true,
			Weight:      15,
			MaxPoints:   30,
			SubCriteria: []SubCriterion{
				{Name: "Expert", Points: 30},
				{Name: "Advanced", Points: 20},
				{Name: "Intermediate", Points: 10},
				{Name: "Basic", Points: 5},
			},
		},
		KeyAwards: {
			Key:         KeyAwards,
			Label:       "Awards",
			Description: "Recognition received for professional performance",
			Enabled:     true,
			Weight:      5,
			MaxPoints:   10,
			SubCriteria: []SubCriterion{
				{Name: "National or international", Points: 10},
				{Name: "Regional", Points: 6},
				{Name: "Local or organizational", Points: 3},
			},
		},
		KeyRelevantExperience: {
			Key:         KeyRelevantExperience,
			Label:       "Relevant Experience",
			Description: "Years of experience directly related to the position",
			Enabled:     true,
			Weight:      15,
			MaxPoints:   30,
			SubCriteria: []SubCriterion{
				{Name: "5+ years", Points: 30},
				{Name: "2-4 years", Points: 20},
				{Name: "Under 2 years", Points: 10},
			},
		},
		KeyCertifications: {
			Key:         KeyCertifications,
			Label:       "Certifications",
			Description: "Industry certifications relevant to the position",
			Enabled:     true,
			Weight:      5,
			MaxPoints:   15,
			SubCriteria: []SubCriterion{
				{Name: "Professional / expert level", Points: 15},
				{Name: "Associate level", Points: 10},
				{Name: "Foundation level", Points: 5},
			},
		},
	}
}
