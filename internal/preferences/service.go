package preferences

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api/models"
)

// Validation constants.
const (
	MaxFreeTextLength  = 1000
	MaxSearchRadiusKm  = 500
	MaxLocationTextLen = 200
)

// Geocoder resolves a free-text location into coordinates. The preferences
// service uses it to fill in missing coordinates; geocoding failures are
// logged and the record is saved without coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// ServiceConfig holds configuration for the preferences service.
type ServiceConfig struct {
	Repository Repository
	Logger     zerolog.Logger

	// Geocoder is optional. When nil, free-text locations are stored
	// without coordinate resolution.
	Geocoder Geocoder
}

// Service provides preference operations.
type Service struct {
	repo     Repository
	logger   zerolog.Logger
	geocoder Geocoder
}

// NewService creates a new preferences service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:     cfg.Repository,
		logger:   cfg.Logger,
		geocoder: cfg.Geocoder,
	}
}

// Get retrieves the preferences for a user.
func (s *Service) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.toAPIPreferences(p)
	return &result, nil
}

// Upsert creates or replaces the preferences for a user. Completeness is
// recomputed on every write; the completion date is set the first time a
// record becomes complete.
func (s *Service) Upsert(ctx context.Context, userID string, input *models.PreferencesRequest) (*models.Preferences, error) {
	if fieldErrors := s.validateInput(input); len(fieldErrors) > 0 {
		return nil, &ValidationError{Errors: fieldErrors}
	}

	now := time.Now()
	p := &Preferences{
		ID:     "prefs_" + uuid.New().String()[:22],
		UserID: userID,

		PreferredTypes:   stringsToTypes(input.PreferredTypes),
		PreferredGenders: stringsToGenders(input.PreferredGenders),
		MinAgeYears:      input.MinAgeYears,
		MaxAgeYears:      input.MaxAgeYears,
		MinWeightKg:      input.MinWeightKg,
		MaxWeightKg:      input.MaxWeightKg,

		ExperienceLevel:   ExperienceLevel(input.ExperienceLevel),
		PreviousTypes:     stringsToTypes(input.PreviousTypes),
		HousingType:       HousingType(input.HousingType),
		FamilyComposition: FamilyComposition(input.FamilyComposition),
		HasOtherPets:      input.HasOtherPets,
		OtherPetsDetails:  input.OtherPetsDetails,

		TimeAvailability: TimeAvailability(input.TimeAvailability),
		ActivityLevel:    ActivityLevel(input.ActivityLevel),
		WorkSchedule:     input.WorkSchedule,

		PrefersTrained:      input.PrefersTrained,
		AcceptsSpecialNeeds: input.AcceptsSpecialNeeds,
		PrefersVaccinated:   input.PrefersVaccinated,
		PrefersSterilized:   input.PrefersSterilized,

		SearchRadiusKm: input.SearchRadiusKm,
		Lat:            input.Lat,
		Lon:            input.Lon,
		LocationText:   input.LocationText,

		MonthlyBudget: input.MonthlyBudget,
		Motivation:    input.Motivation,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if existing, err := s.repo.GetByUser(ctx, userID); err == nil {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
		p.CompletedAt = existing.CompletedAt
	} else if !errors.Is(err, ErrPreferencesNotFound) {
		return nil, err
	}

	s.resolveCoordinates(ctx, p)

	p.IsComplete = s.isComplete(p)
	if p.IsComplete && p.CompletedAt == nil {
		p.CompletedAt = &now
	}

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	result := s.toAPIPreferences(p)
	return &result, nil
}

// Delete removes the preferences for a user.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.GetByUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}

// resolveCoordinates geocodes the free-text location when coordinates are
// absent. Failure is non-fatal.
func (s *Service) resolveCoordinates(ctx context.Context, p *Preferences) {
	if s.geocoder == nil || p.LocationText == "" {
		return
	}
	if p.Lat != nil && p.Lon != nil {
		return
	}

	lat, lon, err := s.geocoder.Geocode(ctx, p.LocationText)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", p.UserID).
			Str("location", p.LocationText).
			Msg("failed to geocode preferences location")
		return
	}

	p.Lat = &lat
	p.Lon = &lon
}

// isComplete reports whether the record carries everything the matching
// engine needs. Matching refuses to run on incomplete records.
func (s *Service) isComplete(p *Preferences) bool {
	return len(p.PreferredTypes) > 0 &&
		p.ExperienceLevel != "" &&
		p.HousingType != "" &&
		p.FamilyComposition != "" &&
		p.TimeAvailability != "" &&
		p.ActivityLevel != ""
}

// validateInput validates a preferences write.
func (s *Service) validateInput(input *models.PreferencesRequest) []models.FieldError {
	var errs []models.FieldError

	for _, t := range input.PreferredTypes {
		if !validType(t) {
			errs = append(errs, models.FieldError{Field: "preferredTypes", Message: "contains an unknown animal type"})
			break
		}
	}
	for _, t := range input.PreviousTypes {
		if !validType(t) {
			errs = append(errs, models.FieldError{Field: "previousTypes", Message: "contains an unknown animal type"})
			break
		}
	}
	for _, g := range input.PreferredGenders {
		if g != string(animal.GenderMale) && g != string(animal.GenderFemale) {
			errs = append(errs, models.FieldError{Field: "preferredGenders", Message: "must contain only MALE or FEMALE"})
			break
		}
	}

	if input.ExperienceLevel != "" && !validExperience(input.ExperienceLevel) {
		errs = append(errs, models.FieldError{Field: "experienceLevel", Message: "must be a valid experience level"})
	}
	if input.HousingType != "" && !validHousing(input.HousingType) {
		errs = append(errs, models.FieldError{Field: "housingType", Message: "must be a valid housing type"})
	}
	if input.FamilyComposition != "" && !validFamily(input.FamilyComposition) {
		errs = append(errs, models.FieldError{Field: "familyComposition", Message: "must be a valid family composition"})
	}
	if input.TimeAvailability != "" && !validTime(input.TimeAvailability) {
		errs = append(errs, models.FieldError{Field: "timeAvailability", Message: "must be a valid time availability"})
	}
	if input.ActivityLevel != "" && !validActivity(input.ActivityLevel) {
		errs = append(errs, models.FieldError{Field: "activityLevel", Message: "must be a valid activity level"})
	}

	if input.MinAgeYears != nil && input.MaxAgeYears != nil && *input.MinAgeYears > *input.MaxAgeYears {
		errs = append(errs, models.FieldError{Field: "minAgeYears", Message: "must not exceed maxAgeYears"})
	}
	if input.MinWeightKg != nil && input.MaxWeightKg != nil && *input.MinWeightKg > *input.MaxWeightKg {
		errs = append(errs, models.FieldError{Field: "minWeightKg", Message: "must not exceed maxWeightKg"})
	}
	if input.MinAgeYears != nil && *input.MinAgeYears < 0 {
		errs = append(errs, models.FieldError{Field: "minAgeYears", Message: "must not be negative"})
	}
	if input.MinWeightKg != nil && *input.MinWeightKg < 0 {
		errs = append(errs, models.FieldError{Field: "minWeightKg", Message: "must not be negative"})
	}

	if input.SearchRadiusKm != nil && (*input.SearchRadiusKm <= 0 || *input.SearchRadiusKm > MaxSearchRadiusKm) {
		errs = append(errs, models.FieldError{Field: "searchRadiusKm", Message: "must be between 0 and 500"})
	}
	if input.Lat != nil && (*input.Lat < -90 || *input.Lat > 90) {
		errs = append(errs, models.FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if input.Lon != nil && (*input.Lon < -180 || *input.Lon > 180) {
		errs = append(errs, models.FieldError{Field: "lon", Message: "must be between -180 and 180"})
	}
	if input.MonthlyBudget != nil && *input.MonthlyBudget < 0 {
		errs = append(errs, models.FieldError{Field: "monthlyBudget", Message: "must not be negative"})
	}

	if len(input.LocationText) > MaxLocationTextLen {
		errs = append(errs, models.FieldError{Field: "locationText", Message: "must be at most 200 characters"})
	}
	if len(input.Motivation) > MaxFreeTextLength {
		errs = append(errs, models.FieldError{Field: "motivation", Message: "must be at most 1000 characters"})
	}
	if len(input.WorkSchedule) > MaxFreeTextLength {
		errs = append(errs, models.FieldError{Field: "workSchedule", Message: "must be at most 1000 characters"})
	}
	if len(input.OtherPetsDetails) > MaxFreeTextLength {
		errs = append(errs, models.FieldError{Field: "otherPetsDetails", Message: "must be at most 1000 characters"})
	}

	return errs
}

func validType(v string) bool {
	switch animal.Type(v) {
	case animal.TypeDog, animal.TypeCat, animal.TypeBird, animal.TypeRabbit, animal.TypeOther:
		return true
	default:
		return false
	}
}

func validExperience(v string) bool {
	switch ExperienceLevel(v) {
	case ExperienceFirstTime, ExperienceSome, ExperienceSeasoned, ExperienceExpert:
		return true
	default:
		return false
	}
}

func validHousing(v string) bool {
	switch HousingType(v) {
	case HousingApartment, HousingHouseNoYard, HousingHouseSmallYard, HousingHouseLargeYard, HousingFarm:
		return true
	default:
		return false
	}
}

func validFamily(v string) bool {
	switch FamilyComposition(v) {
	case FamilySingle, FamilyCouple, FamilyYoungKids, FamilyOlderKids, FamilyShared:
		return true
	default:
		return false
	}
}

func validTime(v string) bool {
	switch TimeAvailability(v) {
	case TimeMinimal, TimeLimited, TimeModerate, TimeExtensive:
		return true
	default:
		return false
	}
}

func validActivity(v string) bool {
	switch ActivityLevel(v) {
	case ActivityLow, ActivityModerate, ActivityHigh, ActivityVeryHigh:
		return true
	default:
		return false
	}
}

// toAPIPreferences converts a domain Preferences to an API Preferences.
func (s *Service) toAPIPreferences(p *Preferences) models.Preferences {
	var completedAt *models.Timestamp
	if p.CompletedAt != nil {
		ts := models.Timestamp(*p.CompletedAt)
		completedAt = &ts
	}

	return models.Preferences{
		ID:     p.ID,
		UserID: p.UserID,

		PreferredTypes:   typesToStrings(p.PreferredTypes),
		PreferredGenders: gendersToStrings(p.PreferredGenders),
		MinAgeYears:      p.MinAgeYears,
		MaxAgeYears:      p.MaxAgeYears,
		MinWeightKg:      p.MinWeightKg,
		MaxWeightKg:      p.MaxWeightKg,

		ExperienceLevel:   string(p.ExperienceLevel),
		PreviousTypes:     typesToStrings(p.PreviousTypes),
		HousingType:       string(p.HousingType),
		FamilyComposition: string(p.FamilyComposition),
		HasOtherPets:      p.HasOtherPets,
		OtherPetsDetails:  p.OtherPetsDetails,

		TimeAvailability: string(p.TimeAvailability),
		ActivityLevel:    string(p.ActivityLevel),
		WorkSchedule:     p.WorkSchedule,

		PrefersTrained:      p.PrefersTrained,
		AcceptsSpecialNeeds: p.AcceptsSpecialNeeds,
		PrefersVaccinated:   p.PrefersVaccinated,
		PrefersSterilized:   p.PrefersSterilized,

		SearchRadiusKm: p.SearchRadiusKm,
		Lat:            p.Lat,
		Lon:            p.Lon,
		LocationText:   p.LocationText,

		MonthlyBudget: p.MonthlyBudget,
		Motivation:    p.Motivation,

		IsComplete:  p.IsComplete,
		CompletedAt: completedAt,

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
