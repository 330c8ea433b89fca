package models

// Animal represents an animal listed for adoption.
type Animal struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Breed       string   `json:"breed,omitempty"`
	AgeYears    float64  `json:"ageYears"`
	Gender      string   `json:"gender"`
	WeightKg    float64  `json:"weightKg"`
	Vaccinated  bool     `json:"vaccinated"`
	Sterilized  bool     `json:"sterilized"`
	HealthNotes string   `json:"healthNotes,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`

	Status               string `json:"status"`
	AvailableForAdoption bool   `json:"availableForAdoption"`
	ShelterID            string `json:"shelterId,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// AnimalList represents a list of animals.
type AnimalList struct {
	Items []Animal `json:"items"`
}

// AnimalCreateRequest represents a request to register an animal.
type AnimalCreateRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Breed       string   `json:"breed,omitempty"`
	AgeYears    float64  `json:"ageYears"`
	Gender      string   `json:"gender"`
	WeightKg    float64  `json:"weightKg"`
	Vaccinated  bool     `json:"vaccinated"`
	Sterilized  bool     `json:"sterilized"`
	HealthNotes string   `json:"healthNotes,omitempty"`
	PhotoURLs   []string `json:"photoUrls,omitempty"`
}

// AnimalUpdateRequest represents a partial update to an animal. Absent
// fields are left unchanged.
type AnimalUpdateRequest struct {
	Name                 *string  `json:"name,omitempty"`
	Breed                *string  `json:"breed,omitempty"`
	AgeYears             *float64 `json:"ageYears,omitempty"`
	WeightKg             *float64 `json:"weightKg,omitempty"`
	Vaccinated           *bool    `json:"vaccinated,omitempty"`
	Sterilized           *bool    `json:"sterilized,omitempty"`
	HealthNotes          *string  `json:"healthNotes,omitempty"`
	PhotoURLs            []string `json:"photoUrls,omitempty"`
	Status               *string  `json:"status,omitempty"`
	AvailableForAdoption *bool    `json:"availableForAdoption,omitempty"`
}

// AnimalProfile represents the extended behavioral and health record of an
// animal. Tri-state behavioral attributes are nullable: null means
// unobserved, never false.
type AnimalProfile struct {
	ID       string `json:"id"`
	AnimalID string `json:"animalId"`

	EnergyLevel       string `json:"energyLevel"`
	SocialLevel       string `json:"socialLevel,omitempty"`
	GoodWithKids      *bool  `json:"goodWithKids"`
	GoodWithOtherPets *bool  `json:"goodWithOtherPets"`
	GoodWithStrangers *bool  `json:"goodWithStrangers"`

	TrainingLevel string   `json:"trainingLevel"`
	HouseTrained  bool     `json:"houseTrained"`
	LeashTrained  *bool    `json:"leashTrained"`
	KnownCommands []string `json:"knownCommands,omitempty"`

	CareLevel         string   `json:"careLevel"`
	ExerciseNeeds     string   `json:"exerciseNeeds,omitempty"`
	GroomingNeeds     string   `json:"groomingNeeds,omitempty"`
	SpecialDiet       bool     `json:"specialDiet"`
	ChronicConditions []string `json:"chronicConditions,omitempty"`
	Medications       []string `json:"medications,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`

	DestructiveBehavior bool `json:"destructiveBehavior"`
	SeparationAnxiety   bool `json:"separationAnxiety"`
	NoiseSensitivity    bool `json:"noiseSensitivity"`
	EscapeTendency      bool `json:"escapeTendency"`

	ApartmentSuitable bool `json:"apartmentSuitable"`
	BeginnerFriendly  bool `json:"beginnerFriendly"`
	FamilyFriendly    bool `json:"familyFriendly"`

	CreatedAt Timestamp `json:"createdAt"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// AnimalProfileRequest represents a profile create/replace request.
type AnimalProfileRequest struct {
	EnergyLevel       string `json:"energyLevel"`
	SocialLevel       string `json:"socialLevel,omitempty"`
	GoodWithKids      *bool  `json:"goodWithKids,omitempty"`
	GoodWithOtherPets *bool  `json:"goodWithOtherPets,omitempty"`
	GoodWithStrangers *bool  `json:"goodWithStrangers,omitempty"`

	TrainingLevel string   `json:"trainingLevel"`
	HouseTrained  bool     `json:"houseTrained"`
	LeashTrained  *bool    `json:"leashTrained,omitempty"`
	KnownCommands []string `json:"knownCommands,omitempty"`

	CareLevel         string   `json:"careLevel"`
	ExerciseNeeds     string   `json:"exerciseNeeds,omitempty"`
	GroomingNeeds     string   `json:"groomingNeeds,omitempty"`
	SpecialDiet       bool     `json:"specialDiet"`
	ChronicConditions []string `json:"chronicConditions,omitempty"`
	Medications       []string `json:"medications,omitempty"`
	Allergies         []string `json:"allergies,omitempty"`

	DestructiveBehavior bool `json:"destructiveBehavior"`
	SeparationAnxiety   bool `json:"separationAnxiety"`
	NoiseSensitivity    bool `json:"noiseSensitivity"`
	EscapeTendency      bool `json:"escapeTendency"`

	ApartmentSuitable *bool `json:"apartmentSuitable,omitempty"`
	BeginnerFriendly  *bool `json:"beginnerFriendly,omitempty"`
	FamilyFriendly    *bool `json:"familyFriendly,omitempty"`
}
