package models

// MatchCandidate is the candidate snapshot carried on a match result.
type MatchCandidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Breed      string   `json:"breed,omitempty"`
	AgeYears   float64  `json:"ageYears"`
	Gender     string   `json:"gender"`
	WeightKg   float64  `json:"weightKg"`
	Vaccinated bool     `json:"vaccinated"`
	Sterilized bool     `json:"sterilized"`
	PhotoURLs  []string `json:"photoUrls,omitempty"`
	ShelterID  string   `json:"shelterId,omitempty"`
}

// CompatibilityBreakdown exposes the component scores as percentages.
type CompatibilityBreakdown struct {
	Personality int `json:"personality"`
	Lifestyle   int `json:"lifestyle"`
	Experience  int `json:"experience"`
	Practical   int `json:"practical"`
	Overall     int `json:"overall"`
}

// MatchResult represents one scored candidate in a match listing.
type MatchResult struct {
	Candidate       MatchCandidate         `json:"candidate"`
	Score           float64                `json:"score"`
	Breakdown       CompatibilityBreakdown `json:"breakdown"`
	Reasons         []string               `json:"reasons"`
	Concerns        []string               `json:"concerns"`
	HasSpecialNeeds bool                   `json:"hasSpecialNeeds"`
}

// MatchList represents a ranked list of match results.
type MatchList struct {
	Items []MatchResult     `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// CompatibilityResult represents the scored compatibility between one
// adopter and one animal, with a qualitative label.
type CompatibilityResult struct {
	MatchResult
	Label string `json:"label"`
}
