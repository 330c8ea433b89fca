// Package preferences provides adopter matching preferences.
package preferences

import (
	"errors"
	"strings"
	"time"

	"github.com/pawmatch/pawmatch/internal/animal"
)

// Preferences errors.
var (
	ErrPreferencesNotFound = errors.New("preferences not found")
)

// ExperienceLevel is a 4-level ordered scale of adopter skill.
type ExperienceLevel string

const (
	ExperienceFirstTime ExperienceLevel = "FIRST_TIME"
	ExperienceSome      ExperienceLevel = "SOME_EXPERIENCE"
	ExperienceSeasoned  ExperienceLevel = "EXPERIENCED"
	ExperienceExpert    ExperienceLevel = "EXPERT"
)

// Score maps the experience level onto a 0-1 skill scale.
func (e ExperienceLevel) Score() float64 {
	switch e {
	case ExperienceFirstTime:
		return 0.2
	case ExperienceSome:
		return 0.5
	case ExperienceSeasoned:
		return 0.8
	case ExperienceExpert:
		return 1.0
	default:
		return 0.5
	}
}

// HousingType describes the adopter's home situation.
type HousingType string

const (
	HousingApartment      HousingType = "APARTMENT"
	HousingHouseNoYard    HousingType = "HOUSE_NO_YARD"
	HousingHouseSmallYard HousingType = "HOUSE_SMALL_YARD"
	HousingHouseLargeYard HousingType = "HOUSE_LARGE_YARD"
	HousingFarm           HousingType = "FARM"
)

// FamilyComposition describes who lives in the adopter's household.
type FamilyComposition string

const (
	FamilySingle    FamilyComposition = "SINGLE"
	FamilyCouple    FamilyComposition = "COUPLE"
	FamilyYoungKids FamilyComposition = "FAMILY_YOUNG_KIDS"
	FamilyOlderKids FamilyComposition = "FAMILY_OLDER_KIDS"
	FamilyShared    FamilyComposition = "SHARED_HOUSEHOLD"
)

// IsFamily reports whether the composition describes a family household.
// Deliberately a substring check: any composition value containing "family"
// qualifies, which covers both the young-kids and older-kids variants.
func (f FamilyComposition) IsFamily() bool {
	return strings.Contains(strings.ToLower(string(f)), "family")
}

// TimeAvailability is a 4-band scale of time the adopter can spend.
type TimeAvailability string

const (
	TimeMinimal   TimeAvailability = "MINIMAL"
	TimeLimited   TimeAvailability = "LIMITED"
	TimeModerate  TimeAvailability = "MODERATE"
	TimeExtensive TimeAvailability = "EXTENSIVE"
)

// ActivityLevel is a 4-band scale of the adopter's preferred activity.
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "LOW"
	ActivityModerate ActivityLevel = "MODERATE"
	ActivityHigh     ActivityLevel = "HIGH"
	ActivityVeryHigh ActivityLevel = "VERY_HIGH"
)

// Rank returns the numeric position of the activity level on a 1-4 scale.
// Unknown values rank as moderate.
func (a ActivityLevel) Rank() int {
	switch a {
	case ActivityLow:
		return 1
	case ActivityModerate:
		return 2
	case ActivityHigh:
		return 3
	case ActivityVeryHigh:
		return 4
	default:
		return 2
	}
}

// Preferences is an adopter's stated matching preferences. Each adopter has
// at most one active record, keyed by user ID.
type Preferences struct {
	ID     string
	UserID string

	PreferredTypes   []animal.Type
	PreferredGenders []animal.Gender
	MinAgeYears      *float64
	MaxAgeYears      *float64
	MinWeightKg      *float64
	MaxWeightKg      *float64

	ExperienceLevel   ExperienceLevel
	PreviousTypes     []animal.Type
	HousingType       HousingType
	FamilyComposition FamilyComposition
	HasOtherPets      bool
	OtherPetsDetails  string

	TimeAvailability TimeAvailability
	ActivityLevel    ActivityLevel
	WorkSchedule     string

	PrefersTrained      bool
	AcceptsSpecialNeeds bool
	PrefersVaccinated   bool
	PrefersSterilized   bool

	SearchRadiusKm *float64
	Lat            *float64
	Lon            *float64
	LocationText   string

	MonthlyBudget *float64
	Motivation    string

	IsComplete  bool
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WantsType reports whether the adopter listed the given animal type.
// An empty preferred-types set means no type restriction was stated.
func (p *Preferences) WantsType(t animal.Type) bool {
	for _, pt := range p.PreferredTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// WantsGender reports whether the candidate gender is among the preferred
// genders. True when no genders were specified.
func (p *Preferences) WantsGender(g animal.Gender) bool {
	if len(p.PreferredGenders) == 0 {
		return true
	}
	for _, pg := range p.PreferredGenders {
		if pg == g {
			return true
		}
	}
	return false
}

// HasExperienceWith reports whether the adopter has previously kept an
// animal of the given type.
func (p *Preferences) HasExperienceWith(t animal.Type) bool {
	for _, pt := range p.PreviousTypes {
		if pt == t {
			return true
		}
	}
	return false
}
