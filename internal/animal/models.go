// Package animal provides the animal catalog and behavioral profiles.
package animal

import (
	"errors"
	"time"
)

// Animal errors.
var (
	ErrAnimalNotFound  = errors.New("animal not found")
	ErrProfileNotFound = errors.New("animal profile not found")
)

// Type represents the species category of an animal.
type Type string

const (
	TypeDog    Type = "DOG"
	TypeCat    Type = "CAT"
	TypeBird   Type = "BIRD"
	TypeRabbit Type = "RABBIT"
	TypeOther  Type = "OTHER"
)

// AllTypes returns all supported animal types.
func AllTypes() []Type {
	return []Type{TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther}
}

// Gender represents an animal's gender.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Status represents an animal's adoption lifecycle state.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusAdopted   Status = "ADOPTED"
)

// EnergyLevel is a 5-point ordered scale of an animal's energy.
type EnergyLevel string

const (
	EnergyVeryLow  EnergyLevel = "VERY_LOW"
	EnergyLow      EnergyLevel = "LOW"
	EnergyModerate EnergyLevel = "MODERATE"
	EnergyHigh     EnergyLevel = "HIGH"
	EnergyVeryHigh EnergyLevel = "VERY_HIGH"
)

// Rank returns the numeric position of the energy level on a 1-5 scale.
// Unknown values rank as moderate.
func (e EnergyLevel) Rank() int {
	switch e {
	case EnergyVeryLow:
		return 1
	case EnergyLow:
		return 2
	case EnergyModerate:
		return 3
	case EnergyHigh:
		return 4
	case EnergyVeryHigh:
		return 5
	default:
		return 3
	}
}

// SocialLevel is an ordered scale of how social an animal is.
type SocialLevel string

const (
	SocialSolitary SocialLevel = "SOLITARY"
	SocialReserved SocialLevel = "RESERVED"
	SocialFriendly SocialLevel = "FRIENDLY"
	SocialOutgoing SocialLevel = "OUTGOING"
	SocialVery     SocialLevel = "VERY_SOCIAL"
)

// TrainingLevel is a 5-point ordered scale of an animal's training.
type TrainingLevel string

const (
	TrainingUntrained    TrainingLevel = "UNTRAINED"
	TrainingBasic        TrainingLevel = "BASIC"
	TrainingIntermediate TrainingLevel = "INTERMEDIATE"
	TrainingAdvanced     TrainingLevel = "ADVANCED"
	TrainingProfessional TrainingLevel = "PROFESSIONAL"
)

// CareLevel is a 4-point ordered scale of how much care an animal requires.
type CareLevel string

const (
	CareLow          CareLevel = "LOW"
	CareModerate     CareLevel = "MODERATE"
	CareHigh         CareLevel = "HIGH"
	CareSpecialNeeds CareLevel = "SPECIAL_NEEDS"
)

// TriState is an explicit three-valued boolean for behavioral attributes
// that may be unobserved. The zero value is unknown; unknown is never
// treated as false by scoring code.
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

// IsTrue reports whether the value is explicitly true.
func (t TriState) IsTrue() bool { return t == TriTrue }

// IsFalse reports whether the value is explicitly false.
func (t TriState) IsFalse() bool { return t == TriFalse }

// Known reports whether the value was explicitly observed.
func (t TriState) Known() bool { return t != TriUnknown }

// TriStateOf converts an observed boolean to a TriState.
func TriStateOf(v bool) TriState {
	if v {
		return TriTrue
	}
	return TriFalse
}

// Animal is a candidate animal listed for adoption.
type Animal struct {
	ID          string
	Name        string
	Type        Type
	Breed       string
	AgeYears    float64
	Gender      Gender
	WeightKg    float64
	Vaccinated  bool
	Sterilized  bool
	HealthNotes string
	PhotoURLs   []string

	Status               Status
	AvailableForAdoption bool
	ShelterID            string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Adoptable reports whether the animal is eligible for matching.
func (a *Animal) Adoptable() bool {
	return a.Status == StatusAvailable && a.AvailableForAdoption
}

// Profile is the optional extended behavioral and health record for an
// animal. An animal may legitimately have no profile; scoring code falls
// back to neutral defaults in that case.
type Profile struct {
	ID       string
	AnimalID string

	// Behavioral attributes.
	EnergyLevel       EnergyLevel
	SocialLevel       SocialLevel
	GoodWithKids      TriState
	GoodWithOtherPets TriState
	GoodWithStrangers TriState

	// Training attributes.
	TrainingLevel TrainingLevel
	HouseTrained  bool
	LeashTrained  TriState
	KnownCommands []string

	// Care attributes.
	CareLevel         CareLevel
	ExerciseNeeds     string
	GroomingNeeds     string
	SpecialDiet       bool
	ChronicConditions []string
	Medications       []string
	Allergies         []string

	// Problem-behavior flags. Absent means false.
	DestructiveBehavior bool
	SeparationAnxiety   bool
	NoiseSensitivity    bool
	EscapeTendency      bool

	// Environment-fit flags. Absent means true: lack of overriding
	// evidence reads as suitable, not as a penalty.
	ApartmentSuitable bool
	BeginnerFriendly  bool
	FamilyFriendly    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
