package models

// Preferences represents an adopter's matching preferences.
type Preferences struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	PreferredTypes   []string `json:"preferredTypes,omitempty"`
	PreferredGenders []string `json:"preferredGenders,omitempty"`
	MinAgeYears      *float64 `json:"minAgeYears,omitempty"`
	MaxAgeYears      *float64 `json:"maxAgeYears,omitempty"`
	MinWeightKg      *float64 `json:"minWeightKg,omitempty"`
	MaxWeightKg      *float64 `json:"maxWeightKg,omitempty"`

	ExperienceLevel   string   `json:"experienceLevel,omitempty"`
	PreviousTypes     []string `json:"previousTypes,omitempty"`
	HousingType       string   `json:"housingType,omitempty"`
	FamilyComposition string   `json:"familyComposition,omitempty"`
	HasOtherPets      bool     `json:"hasOtherPets"`
	OtherPetsDetails  string   `json:"otherPetsDetails,omitempty"`

	TimeAvailability string `json:"timeAvailability,omitempty"`
	ActivityLevel    string `json:"activityLevel,omitempty"`
	WorkSchedule     string `json:"workSchedule,omitempty"`

	PrefersTrained      bool `json:"prefersTrained"`
	AcceptsSpecialNeeds bool `json:"acceptsSpecialNeeds"`
	PrefersVaccinated   bool `json:"prefersVaccinated"`
	PrefersSterilized   bool `json:"prefersSterilized"`

	SearchRadiusKm *float64 `json:"searchRadiusKm,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
	LocationText   string   `json:"locationText,omitempty"`

	MonthlyBudget *float64 `json:"monthlyBudget,omitempty"`
	Motivation    string   `json:"motivation,omitempty"`

	IsComplete  bool       `json:"isComplete"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// PreferencesRequest represents a preferences create/replace request.
type PreferencesRequest struct {
	PreferredTypes   []string `json:"preferredTypes,omitempty"`
	PreferredGenders []string `json:"preferredGenders,omitempty"`
	MinAgeYears      *float64 `json:"minAgeYears,omitempty"`
	MaxAgeYears      *float64 `json:"maxAgeYears,omitempty"`
	MinWeightKg      *float64 `json:"minWeightKg,omitempty"`
	MaxWeightKg      *float64 `json:"maxWeightKg,omitempty"`

	ExperienceLevel   string   `json:"experienceLevel,omitempty"`
	PreviousTypes     []string `json:"previousTypes,omitempty"`
	HousingType       string   `json:"housingType,omitempty"`
	FamilyComposition string   `json:"familyComposition,omitempty"`
	HasOtherPets      bool     `json:"hasOtherPets"`
	OtherPetsDetails  string   `json:"otherPetsDetails,omitempty"`

	TimeAvailability string `json:"timeAvailability,omitempty"`
	ActivityLevel    string `json:"activityLevel,omitempty"`
	WorkSchedule     string `json:"workSchedule,omitempty"`

	PrefersTrained      bool `json:"prefersTrained"`
	AcceptsSpecialNeeds bool `json:"acceptsSpecialNeeds"`
	PrefersVaccinated   bool `json:"prefersVaccinated"`
	PrefersSterilized   bool `json:"prefersSterilized"`

	SearchRadiusKm *float64 `json:"searchRadiusKm,omitempty"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
	LocationText   string   `json:"locationText,omitempty"`

	MonthlyBudget *float64 `json:"monthlyBudget,omitempty"`
	Motivation    string   `json:"motivation,omitempty"`
}
