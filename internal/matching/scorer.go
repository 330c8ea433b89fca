package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

// evaluation collects the human-readable explanations emitted while scoring
// a single candidate. Order of emission is preserved.
type evaluation struct {
	reasons  []string
	concerns []string
}

func (e *evaluation) reason(msg string)  { e.reasons = append(e.reasons, msg) }
func (e *evaluation) concern(msg string) { e.concerns = append(e.concerns, msg) }

// scorePersonality rates behavioral fit between the adopter's household and
// the candidate. A missing profile is neutral, never a penalty.
func scorePersonality(p *preferences.Preferences, prof *animal.Profile, ev *evaluation) float64 {
	if prof == nil {
		return 0.5
	}

	score := 0.5

	// Energy vs. preferred activity, both on ordered rank scales.
	energyCompat := math.Max(0, 1-0.25*math.Abs(float64(p.ActivityLevel.Rank()-prof.EnergyLevel.Rank())))
	score += energyCompat * 0.3
	if energyCompat > 0.7 {
		ev.reason("Energy level is a great fit for your activity level")
	} else if energyCompat < 0.3 {
		ev.concern("Energy level may not match your activity level")
	}

	// Family fit. Only explicit observations trigger this rule.
	if p.FamilyComposition == preferences.FamilyYoungKids && prof.GoodWithKids.IsFalse() {
		score -= 0.4
		ev.concern("Not recommended for homes with young children")
	} else if prof.GoodWithKids.IsTrue() && p.FamilyComposition.IsFamily() {
		score += 0.2
		ev.reason("Great with kids and family life")
	}

	// Other-pets fit.
	if p.HasOtherPets {
		if prof.GoodWithOtherPets.IsFalse() {
			score -= 0.3
			ev.concern("May not get along with your other pets")
		} else if prof.GoodWithOtherPets.IsTrue() {
			score += 0.2
			ev.reason("Gets along well with other pets")
		}
	}

	return clamp01(score)
}

// scoreLifestyle rates how well the candidate fits the adopter's housing,
// available time, and stated size and age ranges.
func scoreLifestyle(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile, ev *evaluation) float64 {
	score := 0.5

	housing := housingCompat(p.HousingType, prof)
	score += housing * 0.4
	if housing > 0.8 {
		ev.reason("Well suited to your housing situation")
	} else if housing < 0.4 {
		ev.concern("Your housing situation may be a poor fit")
	}

	score += timeCompat(p.TimeAvailability, prof) * 0.3

	// Size fit. Only an oversized candidate is worth flagging.
	if a.WeightKg > 0 {
		if p.MinWeightKg != nil && a.WeightKg < *p.MinWeightKg {
			score -= 0.1
		}
		if p.MaxWeightKg != nil && a.WeightKg > *p.MaxWeightKg {
			score -= 0.2
			ev.concern("Larger than your preferred size range")
		}
	}

	// Age fit.
	if a.AgeYears > 0 {
		if p.MinAgeYears != nil && a.AgeYears < *p.MinAgeYears {
			score -= 0.1
		}
		if p.MaxAgeYears != nil && a.AgeYears > *p.MaxAgeYears {
			score -= 0.1
		}
	}

	return clamp01(score)
}

func housingCompat(h preferences.HousingType, prof *animal.Profile) float64 {
	if prof == nil {
		return 0.5
	}
	switch h {
	case preferences.HousingApartment:
		if prof.ApartmentSuitable {
			return 1.0
		}
		return 0.3
	case preferences.HousingHouseNoYard:
		return 0.7
	case preferences.HousingHouseSmallYard:
		return 0.8
	case preferences.HousingHouseLargeYard:
		return 1.0
	case preferences.HousingFarm:
		return 1.0
	default:
		return 0.5
	}
}

func timeCompat(t preferences.TimeAvailability, prof *animal.Profile) float64 {
	if prof == nil {
		return 0.5
	}
	switch t {
	case preferences.TimeMinimal:
		if prof.CareLevel == animal.CareLow {
			return 0.8
		}
		return 0.2
	case preferences.TimeLimited:
		if prof.CareLevel == animal.CareModerate {
			return 0.8
		}
		return 0.6
	case preferences.TimeModerate:
		return 0.8
	case preferences.TimeExtensive:
		return 1.0
	default:
		return 0.5
	}
}

// scoreExperience rates the adopter's skill against the candidate's
// estimated difficulty. A missing profile is neutral.
func scoreExperience(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile, ev *evaluation) float64 {
	if prof == nil {
		return 0.5
	}

	score := 0.5
	expScore := p.ExperienceLevel.Score()
	difficulty := difficultyScore(prof)

	if expScore >= difficulty {
		score += 0.4
		if expScore-difficulty > 0.3 {
			ev.reason("Your experience level is more than enough for this animal")
		}
	} else {
		gap := difficulty - expScore
		score -= gap * 0.6
		if gap > 0.4 {
			ev.concern("This animal needs a more experienced owner")
		}
	}

	if p.PrefersTrained {
		if prof.TrainingLevel != animal.TrainingUntrained {
			score += 0.2
			ev.reason("Comes with prior training")
		} else {
			score -= 0.1
		}
	}

	if p.HasExperienceWith(a.Type) {
		score += 0.2
		ev.reason(fmt.Sprintf("You have prior experience with %s animals", strings.ToLower(string(a.Type))))
	}

	return clamp01(score)
}

// scorePractical rates the hard constraints: type, gender, medical state and
// special-needs acceptance.
func scorePractical(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile, ev *evaluation) float64 {
	score := 0.5

	if p.WantsType(a.Type) {
		score += 0.3
		ev.reason(fmt.Sprintf("Matches your preferred animal type (%s)", strings.ToLower(string(a.Type))))
	}

	if len(p.PreferredGenders) > 0 && p.WantsGender(a.Gender) {
		score += 0.1
	}

	if p.PrefersVaccinated {
		if a.Vaccinated {
			score += 0.1
			ev.reason("Fully vaccinated")
		} else {
			score -= 0.1
			ev.concern("Not yet vaccinated")
		}
	}

	if p.PrefersSterilized {
		if a.Sterilized {
			score += 0.1
			ev.reason("Already sterilized")
		} else {
			score -= 0.1
			ev.concern("Not sterilized")
		}
	}

	if !p.AcceptsSpecialNeeds && hasSpecialNeeds(prof) {
		score -= 0.3
		ev.concern("Requires special-needs care you indicated you cannot provide")
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}
