package matching

import (
	"math"

	"github.com/pawmatch/pawmatch/internal/animal"
)

// difficultyScore estimates how much owner skill a candidate requires, on a
// [0.1, 1.0] scale. The floor is never zero: every animal carries baseline
// difficulty.
func difficultyScore(prof *animal.Profile) float64 {
	if prof == nil {
		return 0.5
	}

	difficulty := 0.3

	if prof.DestructiveBehavior {
		difficulty += 0.2
	}
	if prof.SeparationAnxiety {
		difficulty += 0.2
	}
	if prof.EscapeTendency {
		difficulty += 0.15
	}
	if prof.NoiseSensitivity {
		difficulty += 0.1
	}

	// Care-level terms are additive and deliberately not mutually exclusive.
	if prof.CareLevel == animal.CareHigh {
		difficulty += 0.2
	}
	if prof.CareLevel == animal.CareSpecialNeeds {
		difficulty += 0.4
	}

	if prof.TrainingLevel == animal.TrainingAdvanced {
		difficulty -= 0.1
	}
	if prof.TrainingLevel == animal.TrainingProfessional {
		difficulty -= 0.2
	}
	if prof.HouseTrained {
		difficulty -= 0.1
	}

	return math.Min(1.0, math.Max(0.1, difficulty))
}

// hasSpecialNeeds reports whether a candidate requires above-baseline care or
// medical attention. A missing profile always classifies as false.
func hasSpecialNeeds(prof *animal.Profile) bool {
	if prof == nil {
		return false
	}
	return prof.CareLevel == animal.CareSpecialNeeds ||
		prof.SpecialDiet ||
		len(prof.ChronicConditions) > 0 ||
		len(prof.Medications) > 0 ||
		prof.DestructiveBehavior ||
		prof.SeparationAnxiety
}
