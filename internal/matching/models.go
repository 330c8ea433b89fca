// Package matching implements the compatibility-scoring engine that ranks
// adoptable animals against an adopter's stated preferences.
package matching

import (
	"errors"

	"github.com/pawmatch/pawmatch/internal/animal"
)

// Matching errors.
var (
	// ErrPreferencesIncomplete is returned when the adopter's preferences
	// exist but have not been completed. Matching refuses to run on
	// incomplete records.
	ErrPreferencesIncomplete = errors.New("preferences are incomplete")
)

// Default criteria values.
const (
	DefaultLimit    = 20
	DefaultMinScore = 0.3
)

// Scoring weights for the overall score. They sum to 1.0.
const (
	weightPersonality = 0.25
	weightLifestyle   = 0.30
	weightExperience  = 0.25
	weightPractical   = 0.20
)

// Criteria controls a FindMatches call.
type Criteria struct {
	// AdopterID identifies the adopter whose preferences drive the match.
	AdopterID string

	// Limit caps the number of returned results. Zero means DefaultLimit.
	Limit int

	// MinScore filters out results scoring below it. Zero or negative
	// means the configured default.
	MinScore float64

	// IncludeSpecialNeeds includes animals classified as having special
	// needs. Default false: such animals are excluded from ranked results.
	IncludeSpecialNeeds bool
}

// CandidateSummary is a read-only snapshot of the candidate's display
// fields, carried on each result.
type CandidateSummary struct {
	ID         string
	Name       string
	Type       animal.Type
	Breed      string
	AgeYears   float64
	Gender     animal.Gender
	WeightKg   float64
	Vaccinated bool
	Sterilized bool
	PhotoURLs  []string
	ShelterID  string
}

// Breakdown carries the component scores as integer percentages.
type Breakdown struct {
	Personality int
	Lifestyle   int
	Experience  int
	Practical   int
	Overall     int
}

// MatchResult is the scored outcome for one candidate. It is computed per
// request and never persisted.
type MatchResult struct {
	Candidate CandidateSummary

	// Score is the weighted overall score in [0,1], rounded to 2 decimals.
	Score float64

	// Breakdown exposes the sub-scores as percentages.
	Breakdown Breakdown

	// Reasons lists positive match explanations, in emission order.
	Reasons []string

	// Concerns lists potential problem areas, in emission order.
	Concerns []string

	// HasSpecialNeeds reflects the special-needs classification of the
	// candidate's profile.
	HasSpecialNeeds bool
}

// Label is a qualitative compatibility band derived from the overall score.
type Label string

const (
	LabelExcellent Label = "EXCELLENT"
	LabelGood      Label = "GOOD"
	LabelModerate  Label = "MODERATE"
	LabelLow       Label = "LOW"
	LabelVeryLow   Label = "VERY_LOW"
)

// LabelForScore converts an overall score to its qualitative label.
func LabelForScore(score float64) Label {
	switch {
	case score >= 0.8:
		return LabelExcellent
	case score >= 0.6:
		return LabelGood
	case score >= 0.4:
		return LabelModerate
	case score >= 0.2:
		return LabelLow
	default:
		return LabelVeryLow
	}
}

// summaryOf builds a CandidateSummary from an animal record.
func summaryOf(a *animal.Animal) CandidateSummary {
	return CandidateSummary{
		ID:         a.ID,
		Name:       a.Name,
		Type:       a.Type,
		Breed:      a.Breed,
		AgeYears:   a.AgeYears,
		Gender:     a.Gender,
		WeightKg:   a.WeightKg,
		Vaccinated: a.Vaccinated,
		Sterilized: a.Sterilized,
		PhotoURLs:  a.PhotoURLs,
		ShelterID:  a.ShelterID,
	}
}
