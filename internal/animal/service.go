package animal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/internal/api/models"
)

// Validation constants.
const (
	MaxNameLength        = 80
	MaxBreedLength       = 80
	MaxHealthNotesLength = 2000
	MaxPhotoURLs         = 10
	MaxAgeYears          = 40
	MaxWeightKg          = 500
)

// Service provides animal catalog operations.
type Service struct {
	repo        Repository
	profileRepo ProfileRepository
}

// NewService creates a new animal service.
func NewService(repo Repository, profileRepo ProfileRepository) *Service {
	return &Service{repo: repo, profileRepo: profileRepo}
}

// Get retrieves an animal by ID.
func (s *Service) Get(ctx context.Context, animalID string) (*models.Animal, error) {
	a, err := s.repo.Get(ctx, animalID)
	if err != nil {
		return nil, err
	}

	result := s.toAPIAnimal(a)
	return &result, nil
}

// List retrieves animals, optionally restricted to adoptable ones.
func (s *Service) List(ctx context.Context, adoptableOnly bool, limit int) (*models.AnimalList, error) {
	animals, err := s.repo.List(ctx, ListOptions{
		AdoptableOnly: adoptableOnly,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]models.Animal, 0, len(animals))
	for _, a := range animals {
		items = append(items, s.toAPIAnimal(a))
	}

	return &models.AnimalList{Items: items}, nil
}

// Create registers a new animal.
func (s *Service) Create(ctx context.Context, shelterID string, input *models.AnimalCreateRequest) (*models.Animal, error) {
	if fieldErrors := s.validateCreateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	a := &Animal{
		ID:                   "anm_" + uuid.New().String()[:22],
		Name:                 input.Name,
		Type:                 Type(input.Type),
		Breed:                input.Breed,
		AgeYears:             input.AgeYears,
		Gender:               Gender(input.Gender),
		WeightKg:             input.WeightKg,
		Vaccinated:           input.Vaccinated,
		Sterilized:           input.Sterilized,
		HealthNotes:          input.HealthNotes,
		PhotoURLs:            input.PhotoURLs,
		Status:               StatusAvailable,
		AvailableForAdoption: true,
		ShelterID:            shelterID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	result := s.toAPIAnimal(a)
	return &result, nil
}

// Update updates an existing animal.
func (s *Service) Update(ctx context.Context, animalID string, input *models.AnimalUpdateRequest) (*models.Animal, error) {
	a, err := s.repo.Get(ctx, animalID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := s.validateUpdateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	if input.Name != nil {
		a.Name = *input.Name
	}
	if input.Breed != nil {
		a.Breed = *input.Breed
	}
	if input.AgeYears != nil {
		a.AgeYears = *input.AgeYears
	}
	if input.WeightKg != nil {
		a.WeightKg = *input.WeightKg
	}
	if input.Vaccinated != nil {
		a.Vaccinated = *input.Vaccinated
	}
	if input.Sterilized != nil {
		a.Sterilized = *input.Sterilized
	}
	if input.HealthNotes != nil {
		a.HealthNotes = *input.HealthNotes
	}
	if input.PhotoURLs != nil {
		a.PhotoURLs = input.PhotoURLs
	}
	if input.Status != nil {
		a.Status = Status(*input.Status)
	}
	if input.AvailableForAdoption != nil {
		a.AvailableForAdoption = *input.AvailableForAdoption
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	result := s.toAPIAnimal(a)
	return &result, nil
}

// Delete removes an animal and its profile.
func (s *Service) Delete(ctx context.Context, animalID string) error {
	if _, err := s.repo.Get(ctx, animalID); err != nil {
		return err
	}

	if err := s.profileRepo.Delete(ctx, animalID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, animalID)
}

// GetProfile retrieves the behavioral profile for an animal.
func (s *Service) GetProfile(ctx context.Context, animalID string) (*models.AnimalProfile, error) {
	if _, err := s.repo.Get(ctx, animalID); err != nil {
		return nil, err
	}

	p, err := s.profileRepo.GetByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	result := s.toAPIProfile(p)
	return &result, nil
}

// UpsertProfile creates or replaces the behavioral profile for an animal.
func (s *Service) UpsertProfile(ctx context.Context, animalID string, input *models.AnimalProfileRequest) (*models.AnimalProfile, error) {
	if _, err := s.repo.Get(ctx, animalID); err != nil {
		return nil, err
	}

	if fieldErrors := s.validateProfileInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	p := &Profile{
		ID:       "prf_" + uuid.New().String()[:22],
		AnimalID: animalID,

		EnergyLevel:       EnergyLevel(input.EnergyLevel),
		SocialLevel:       SocialLevel(input.SocialLevel),
		GoodWithKids:      triStateFromInput(input.GoodWithKids),
		GoodWithOtherPets: triStateFromInput(input.GoodWithOtherPets),
		GoodWithStrangers: triStateFromInput(input.GoodWithStrangers),

		TrainingLevel: TrainingLevel(input.TrainingLevel),
		HouseTrained:  input.HouseTrained,
		LeashTrained:  triStateFromInput(input.LeashTrained),
		KnownCommands: input.KnownCommands,

		CareLevel:         CareLevel(input.CareLevel),
		ExerciseNeeds:     input.ExerciseNeeds,
		GroomingNeeds:     input.GroomingNeeds,
		SpecialDiet:       input.SpecialDiet,
		ChronicConditions: input.ChronicConditions,
		Medications:       input.Medications,
		Allergies:         input.Allergies,

		DestructiveBehavior: input.DestructiveBehavior,
		SeparationAnxiety:   input.SeparationAnxiety,
		NoiseSensitivity:    input.NoiseSensitivity,
		EscapeTendency:      input.EscapeTendency,

		ApartmentSuitable: boolOrDefault(input.ApartmentSuitable, true),
		BeginnerFriendly:  boolOrDefault(input.BeginnerFriendly, true),
		FamilyFriendly:    boolOrDefault(input.FamilyFriendly, true),

		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := s.profileRepo.GetByAnimal(ctx, animalID); err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	result := s.toAPIProfile(p)
	return &result, nil
}

// validateCreateInput validates the create animal input.
func (s *Service) validateCreateInput(input *models.AnimalCreateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "is required"})
	} else if len(input.Name) > MaxNameLength {
		errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
	}

	if !validAnimalType(input.Type) {
		errs = append(errs, models.FieldError{Field: "type", Message: "must be one of DOG, CAT, BIRD, RABBIT, OTHER"})
	}

	if input.Gender != string(GenderMale) && input.Gender != string(GenderFemale) {
		errs = append(errs, models.FieldError{Field: "gender", Message: "must be MALE or FEMALE"})
	}

	if input.AgeYears < 0 || input.AgeYears > MaxAgeYears {
		errs = append(errs, models.FieldError{Field: "ageYears", Message: "must be between 0 and 40"})
	}

	if input.WeightKg <= 0 || input.WeightKg > MaxWeightKg {
		errs = append(errs, models.FieldError{Field: "weightKg", Message: "must be between 0 and 500"})
	}

	if len(input.Breed) > MaxBreedLength {
		errs = append(errs, models.FieldError{Field: "breed", Message: "must be at most 80 characters"})
	}

	if len(input.HealthNotes) > MaxHealthNotesLength {
		errs = append(errs, models.FieldError{Field: "healthNotes", Message: "must be at most 2000 characters"})
	}

	if len(input.PhotoURLs) > MaxPhotoURLs {
		errs = append(errs, models.FieldError{Field: "photoUrls", Message: "must contain at most 10 entries"})
	}

	return errs
}

// validateUpdateInput validates the update animal input.
func (s *Service) validateUpdateInput(input *models.AnimalUpdateRequest) []models.FieldError {
	var errs []models.FieldError

	if input.Name != nil {
		if *input.Name == "" {
			errs = append(errs, models.FieldError{Field: "name", Message: "cannot be empty"})
		} else if len(*input.Name) > MaxNameLength {
			errs = append(errs, models.FieldError{Field: "name", Message: "must be at most 80 characters"})
		}
	}

	if input.AgeYears != nil && (*input.AgeYears < 0 || *input.AgeYears > MaxAgeYears) {
		errs = append(errs, models.FieldError{Field: "ageYears", Message: "must be between 0 and 40"})
	}

	if input.WeightKg != nil && (*input.WeightKg <= 0 || *input.WeightKg > MaxWeightKg) {
		errs = append(errs, models.FieldError{Field: "weightKg", Message: "must be between 0 and 500"})
	}

	if input.Status != nil && !validStatus(*input.Status) {
		errs = append(errs, models.FieldError{Field: "status", Message: "must be one of AVAILABLE, PENDING, ADOPTED"})
	}

	if input.PhotoURLs != nil && len(input.PhotoURLs) > MaxPhotoURLs {
		errs = append(errs, models.FieldError{Field: "photoUrls", Message: "must contain at most 10 entries"})
	}

	return errs
}

// validateProfileInput validates the profile upsert input.
func (s *Service) validateProfileInput(input *models.AnimalProfileRequest) []models.FieldError {
	var errs []models.FieldError

	switch EnergyLevel(input.EnergyLevel) {
	case EnergyVeryLow, EnergyLow, EnergyModerate, EnergyHigh, EnergyVeryHigh:
	default:
		errs = append(errs, models.FieldError{Field: "energyLevel", Message: "must be a valid energy level"})
	}

	switch TrainingLevel(input.TrainingLevel) {
	case TrainingUntrained, TrainingBasic, TrainingIntermediate, TrainingAdvanced, TrainingProfessional:
	default:
		errs = append(errs, models.FieldError{Field: "trainingLevel", Message: "must be a valid training level"})
	}

	switch CareLevel(input.CareLevel) {
	case CareLow, CareModerate, CareHigh, CareSpecialNeeds:
	default:
		errs = append(errs, models.FieldError{Field: "careLevel", Message: "must be one of LOW, MODERATE, HIGH, SPECIAL_NEEDS"})
	}

	return errs
}

func validAnimalType(v string) bool {
	switch Type(v) {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	default:
		return false
	}
}

func validStatus(v string) bool {
	switch Status(v) {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// triStateFromInput maps an optional JSON boolean to a TriState.
func triStateFromInput(v *bool) TriState {
	if v == nil {
		return TriUnknown
	}
	return TriStateOf(*v)
}

// boolOrDefault returns the pointed-to value, or def when absent.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// toAPIAnimal converts a domain Animal to an API Animal.
func (s *Service) toAPIAnimal(a *Animal) models.Animal {
	return models.Animal{
		ID:                   a.ID,
		Name:                 a.Name,
		Type:                 string(a.Type),
		Breed:                a.Breed,
		AgeYears:             a.AgeYears,
		Gender:               string(a.Gender),
		WeightKg:             a.WeightKg,
		Vaccinated:           a.Vaccinated,
		Sterilized:           a.Sterilized,
		HealthNotes:          a.HealthNotes,
		PhotoURLs:            a.PhotoURLs,
		Status:               string(a.Status),
		AvailableForAdoption: a.AvailableForAdoption,
		ShelterID:            a.ShelterID,
		CreatedAt:            models.Timestamp(a.CreatedAt),
		UpdatedAt:            models.Timestamp(a.UpdatedAt),
	}
}

// toAPIProfile converts a domain Profile to an API AnimalProfile.
func (s *Service) toAPIProfile(p *Profile) models.AnimalProfile {
	return models.AnimalProfile{
		ID:                p.ID,
		AnimalID:          p.AnimalID,
		EnergyLevel:       string(p.EnergyLevel),
		SocialLevel:       string(p.SocialLevel),
		GoodWithKids:      nullableFromTriState(p.GoodWithKids),
		GoodWithOtherPets: nullableFromTriState(p.GoodWithOtherPets),
		GoodWithStrangers: nullableFromTriState(p.GoodWithStrangers),
		TrainingLevel:     string(p.TrainingLevel),
		HouseTrained:      p.HouseTrained,
		LeashTrained:      nullableFromTriState(p.LeashTrained),
		KnownCommands:     p.KnownCommands,
		CareLevel:         string(p.CareLevel),
		ExerciseNeeds:     p.ExerciseNeeds,
		GroomingNeeds:     p.GroomingNeeds,
		SpecialDiet:       p.SpecialDiet,
		ChronicConditions: p.ChronicConditions,
		Medications:       p.Medications,
		Allergies:         p.Allergies,

		DestructiveBehavior: p.DestructiveBehavior,
		SeparationAnxiety:   p.SeparationAnxiety,
		NoiseSensitivity:    p.NoiseSensitivity,
		EscapeTendency:      p.EscapeTendency,

		ApartmentSuitable: p.ApartmentSuitable,
		BeginnerFriendly:  p.BeginnerFriendly,
		FamilyFriendly:    p.FamilyFriendly,

		CreatedAt: models.Timestamp(p.CreatedAt),
		UpdatedAt: models.Timestamp(p.UpdatedAt),
	}
}

// ValidationError represents validation errors.
type ValidationError struct {
	Errors []models.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
