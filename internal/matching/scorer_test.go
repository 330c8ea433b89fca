package matching_test

import (
	"strings"
	"testing"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

func f64(v float64) *float64 { return &v }

// scoreOne evaluates a single candidate. ScoreCandidate is pure, so a
// service without stores is enough.
func scoreOne(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile) *matching.MatchResult {
	return matching.NewService(matching.ServiceConfig{}).ScoreCandidate(p, a, prof)
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestScoreCandidate_PersonalityNoProfileIsNeutral(t *testing.T) {
	p := &preferences.Preferences{ActivityLevel: preferences.ActivityHigh}

	res := scoreOne(p, &animal.Animal{}, nil)
	if res.Breakdown.Personality != 50 {
		t.Fatalf("expected neutral 50%% without profile, got %d", res.Breakdown.Personality)
	}
	if len(res.Reasons) != 0 || len(res.Concerns) != 0 {
		t.Error("expected no explanations without profile")
	}
}

func TestScoreCandidate_EnergyCompatibility(t *testing.T) {
	tests := []struct {
		name        string
		activity    preferences.ActivityLevel
		energy      animal.EnergyLevel
		want        int
		wantReason  bool
		wantConcern bool
	}{
		{
			name:       "matching ranks",
			activity:   preferences.ActivityModerate,
			energy:     animal.EnergyLow,
			want:       80,
			wantReason: true,
		},
		{
			name:       "one rank apart",
			activity:   preferences.ActivityModerate,
			energy:     animal.EnergyModerate,
			want:       73,
			wantReason: true,
		},
		{
			name:        "maximum mismatch",
			activity:    preferences.ActivityLow,
			energy:      animal.EnergyVeryHigh,
			want:        50,
			wantConcern: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &preferences.Preferences{ActivityLevel: tt.activity}
			prof := &animal.Profile{EnergyLevel: tt.energy}

			res := scoreOne(p, &animal.Animal{}, prof)
			if res.Breakdown.Personality != tt.want {
				t.Errorf("personality = %d%%, want %d%%", res.Breakdown.Personality, tt.want)
			}
			if tt.wantReason != hasMessage(res.Reasons, "Energy level") {
				t.Errorf("energy reason emitted = %v, want %v", !tt.wantReason, tt.wantReason)
			}
			if tt.wantConcern != hasMessage(res.Concerns, "Energy level") {
				t.Errorf("energy concern emitted = %v, want %v", !tt.wantConcern, tt.wantConcern)
			}
		})
	}
}

func TestScoreCandidate_FamilyFit(t *testing.T) {
	base := func() (*preferences.Preferences, *animal.Profile) {
		// Equal ranks keep the energy term at its +0.3 maximum.
		return &preferences.Preferences{ActivityLevel: preferences.ActivityModerate},
			&animal.Profile{EnergyLevel: animal.EnergyLow}
	}

	t.Run("young kids with explicit bad-with-kids", func(t *testing.T) {
		p, prof := base()
		p.FamilyComposition = preferences.FamilyYoungKids
		prof.GoodWithKids = animal.TriFalse

		res := scoreOne(p, &animal.Animal{}, prof)
		if res.Breakdown.Personality != 40 {
			t.Errorf("personality = %d%%, want 40%%", res.Breakdown.Personality)
		}
		if !hasMessage(res.Concerns, "young children") {
			t.Error("expected a concern about young children")
		}
	})

	t.Run("family with explicit good-with-kids", func(t *testing.T) {
		p, prof := base()
		p.FamilyComposition = preferences.FamilyOlderKids
		prof.GoodWithKids = animal.TriTrue

		res := scoreOne(p, &animal.Animal{}, prof)
		if res.Breakdown.Personality != 100 {
			t.Errorf("personality = %d%%, want 100%%", res.Breakdown.Personality)
		}
		if !hasMessage(res.Reasons, "kids") {
			t.Error("expected a reason about family fit")
		}
	})

	t.Run("unknown tri-state never triggers", func(t *testing.T) {
		p, prof := base()
		p.FamilyComposition = preferences.FamilyYoungKids

		res := scoreOne(p, &animal.Animal{}, prof)
		if res.Breakdown.Personality != 80 {
			t.Errorf("personality = %d%%, want 80%%", res.Breakdown.Personality)
		}
		if len(res.Concerns) != 0 {
			t.Error("unknown good-with-kids must not raise a concern")
		}
	})
}

func TestScoreCandidate_OtherPets(t *testing.T) {
	tests := []struct {
		name      string
		otherPets bool
		goodWith  animal.TriState
		want      int
	}{
		{"bad with other pets", true, animal.TriFalse, 50},
		{"good with other pets", true, animal.TriTrue, 100},
		{"unknown with other pets", true, animal.TriUnknown, 80},
		{"no other pets ignores flag", false, animal.TriFalse, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &preferences.Preferences{
				ActivityLevel: preferences.ActivityModerate,
				HasOtherPets:  tt.otherPets,
			}
			prof := &animal.Profile{
				EnergyLevel:       animal.EnergyLow,
				GoodWithOtherPets: tt.goodWith,
			}

			res := scoreOne(p, &animal.Animal{}, prof)
			if res.Breakdown.Personality != tt.want {
				t.Errorf("personality = %d%%, want %d%%", res.Breakdown.Personality, tt.want)
			}
		})
	}
}

func TestScoreCandidate_HousingFit(t *testing.T) {
	// Lifestyle = 0.5 base + housing*0.4 + neutral time*0.3.
	tests := []struct {
		name     string
		housing  preferences.HousingType
		suitable bool
		want     int
	}{
		{"apartment suitable", preferences.HousingApartment, true, 100},
		{"apartment unsuitable", preferences.HousingApartment, false, 77},
		{"house no yard", preferences.HousingHouseNoYard, true, 93},
		{"house small yard", preferences.HousingHouseSmallYard, true, 97},
		{"house large yard", preferences.HousingHouseLargeYard, true, 100},
		{"farm", preferences.HousingFarm, true, 100},
		{"unknown housing", preferences.HousingType(""), true, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &preferences.Preferences{HousingType: tt.housing}
			prof := &animal.Profile{ApartmentSuitable: tt.suitable}

			res := scoreOne(p, &animal.Animal{}, prof)
			if res.Breakdown.Lifestyle != tt.want {
				t.Errorf("lifestyle = %d%%, want %d%%", res.Breakdown.Lifestyle, tt.want)
			}
		})
	}

	t.Run("missing profile is neutral", func(t *testing.T) {
		p := &preferences.Preferences{HousingType: preferences.HousingApartment}

		res := scoreOne(p, &animal.Animal{}, nil)
		if res.Breakdown.Lifestyle != 85 {
			t.Errorf("lifestyle = %d%%, want 85%%", res.Breakdown.Lifestyle)
		}
	})

	t.Run("unsuitable apartment raises a concern", func(t *testing.T) {
		p := &preferences.Preferences{HousingType: preferences.HousingApartment}
		prof := &animal.Profile{ApartmentSuitable: false}

		res := scoreOne(p, &animal.Animal{}, prof)
		if !hasMessage(res.Concerns, "housing situation") {
			t.Error("expected a housing concern")
		}
	})
}

func TestScoreCandidate_TimeFit(t *testing.T) {
	// Lifestyle = 0.5 base + neutral housing*0.4 + time*0.3.
	tests := []struct {
		name  string
		avail preferences.TimeAvailability
		care  animal.CareLevel
		want  int
	}{
		{"minimal with low care", preferences.TimeMinimal, animal.CareLow, 94},
		{"minimal with high care", preferences.TimeMinimal, animal.CareHigh, 76},
		{"limited with moderate care", preferences.TimeLimited, animal.CareModerate, 94},
		{"limited with special needs", preferences.TimeLimited, animal.CareSpecialNeeds, 88},
		{"moderate", preferences.TimeModerate, animal.CareHigh, 94},
		{"extensive", preferences.TimeExtensive, animal.CareSpecialNeeds, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &preferences.Preferences{TimeAvailability: tt.avail}
			prof := &animal.Profile{CareLevel: tt.care}

			res := scoreOne(p, &animal.Animal{}, prof)
			if res.Breakdown.Lifestyle != tt.want {
				t.Errorf("lifestyle = %d%%, want %d%%", res.Breakdown.Lifestyle, tt.want)
			}
		})
	}
}

func TestScoreCandidate_SizeAndAge(t *testing.T) {
	p := &preferences.Preferences{
		HousingType:      preferences.HousingHouseSmallYard,
		TimeAvailability: preferences.TimeMinimal,
		MinWeightKg:      f64(10),
		MaxWeightKg:      f64(30),
		MinAgeYears:      f64(1),
		MaxAgeYears:      f64(8),
	}
	// Base 0.5 + housing 0.32 + time 0.06 = 88% before penalties.
	const inRange = 88

	tests := []struct {
		name        string
		weight      float64
		age         float64
		want        int
		wantConcern bool
	}{
		{"within ranges", 20, 4, inRange, false},
		{"under minimum weight", 5, 4, inRange - 10, false},
		{"over maximum weight", 40, 4, inRange - 20, true},
		{"under minimum age", 20, 0.5, inRange - 10, false},
		{"over maximum age", 20, 12, inRange - 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &animal.Animal{WeightKg: tt.weight, AgeYears: tt.age}
			prof := &animal.Profile{CareLevel: animal.CareHigh}

			res := scoreOne(p, a, prof)
			if res.Breakdown.Lifestyle != tt.want {
				t.Errorf("lifestyle = %d%%, want %d%%", res.Breakdown.Lifestyle, tt.want)
			}
			if tt.wantConcern != hasMessage(res.Concerns, "size range") {
				t.Errorf("size concern emitted = %v, want %v", !tt.wantConcern, tt.wantConcern)
			}
		})
	}
}

func TestScoreCandidate_ExperienceNoProfileIsNeutral(t *testing.T) {
	p := &preferences.Preferences{ExperienceLevel: preferences.ExperienceExpert}
	a := &animal.Animal{Type: animal.TypeDog}

	res := scoreOne(p, a, nil)
	if res.Breakdown.Experience != 50 {
		t.Fatalf("expected neutral 50%% without profile, got %d", res.Breakdown.Experience)
	}
}

func TestScoreCandidate_SkillVersusDifficulty(t *testing.T) {
	easy := &animal.Profile{HouseTrained: true}
	hard := &animal.Profile{
		DestructiveBehavior: true,
		SeparationAnxiety:   true,
		CareLevel:           animal.CareHigh,
	}
	a := &animal.Animal{Type: animal.TypeDog}

	t.Run("expert with easy animal", func(t *testing.T) {
		p := &preferences.Preferences{ExperienceLevel: preferences.ExperienceExpert}

		res := scoreOne(p, a, easy)
		if res.Breakdown.Experience != 90 {
			t.Errorf("experience = %d%%, want 90%%", res.Breakdown.Experience)
		}
		if !hasMessage(res.Reasons, "more than enough") {
			t.Error("expected a strong positive reason for a wide skill margin")
		}
	})

	t.Run("first-timer with hard animal", func(t *testing.T) {
		p := &preferences.Preferences{ExperienceLevel: preferences.ExperienceFirstTime}

		res := scoreOne(p, a, hard)
		if res.Breakdown.Experience != 8 {
			t.Errorf("experience = %d%%, want 8%%", res.Breakdown.Experience)
		}
		if !hasMessage(res.Concerns, "more experienced owner") {
			t.Error("expected a concern about required experience")
		}
	})

	t.Run("narrow margin emits no reason", func(t *testing.T) {
		p := &preferences.Preferences{ExperienceLevel: preferences.ExperienceSome}

		res := scoreOne(p, a, &animal.Profile{})
		if res.Breakdown.Experience != 90 {
			t.Errorf("experience = %d%%, want 90%%", res.Breakdown.Experience)
		}
		if hasMessage(res.Reasons, "more than enough") {
			t.Error("a narrow skill margin must not emit the strong reason")
		}
	})
}

func TestScoreCandidate_TrainingAndPriorTypes(t *testing.T) {
	a := &animal.Animal{Type: animal.TypeCat}
	trained := &animal.Profile{TrainingLevel: animal.TrainingBasic, HouseTrained: true}
	untrained := &animal.Profile{TrainingLevel: animal.TrainingUntrained, HouseTrained: true}

	t.Run("prefers trained and trained", func(t *testing.T) {
		p := &preferences.Preferences{
			ExperienceLevel: preferences.ExperienceSeasoned,
			PrefersTrained:  true,
		}
		res := scoreOne(p, a, trained)
		if res.Breakdown.Experience != 100 {
			t.Errorf("experience = %d%%, want 100%%", res.Breakdown.Experience)
		}
	})

	t.Run("prefers trained and untrained", func(t *testing.T) {
		p := &preferences.Preferences{
			ExperienceLevel: preferences.ExperienceSeasoned,
			PrefersTrained:  true,
		}
		res := scoreOne(p, a, untrained)
		if res.Breakdown.Experience != 80 {
			t.Errorf("experience = %d%%, want 80%%", res.Breakdown.Experience)
		}
	})

	t.Run("prior experience with type", func(t *testing.T) {
		p := &preferences.Preferences{
			ExperienceLevel: preferences.ExperienceSeasoned,
			PreviousTypes:   []animal.Type{animal.TypeCat},
		}

		res := scoreOne(p, a, trained)
		if res.Breakdown.Experience != 100 {
			t.Errorf("experience = %d%%, want 100%%", res.Breakdown.Experience)
		}
		if !hasMessage(res.Reasons, "cat") {
			t.Error("expected a reason naming the animal type")
		}
	})
}

func TestScoreCandidate_Practical(t *testing.T) {
	tests := []struct {
		name  string
		prefs preferences.Preferences
		a     animal.Animal
		prof  *animal.Profile
		want  int
	}{
		{
			name:  "type match",
			prefs: preferences.Preferences{PreferredTypes: []animal.Type{animal.TypeDog}},
			a:     animal.Animal{Type: animal.TypeDog},
			want:  80,
		},
		{
			name:  "type mismatch",
			prefs: preferences.Preferences{PreferredTypes: []animal.Type{animal.TypeCat}},
			a:     animal.Animal{Type: animal.TypeDog},
			want:  50,
		},
		{
			name:  "gender match",
			prefs: preferences.Preferences{PreferredGenders: []animal.Gender{animal.GenderFemale}},
			a:     animal.Animal{Gender: animal.GenderFemale},
			want:  60,
		},
		{
			name: "no gender preference adds nothing",
			a:    animal.Animal{Gender: animal.GenderMale},
			want: 50,
		},
		{
			name:  "vaccinated as preferred",
			prefs: preferences.Preferences{PrefersVaccinated: true},
			a:     animal.Animal{Vaccinated: true},
			want:  60,
		},
		{
			name:  "not vaccinated against preference",
			prefs: preferences.Preferences{PrefersVaccinated: true},
			want:  40,
		},
		{
			name:  "sterilized as preferred",
			prefs: preferences.Preferences{PrefersSterilized: true},
			a:     animal.Animal{Sterilized: true},
			want:  60,
		},
		{
			name: "special needs not accepted",
			prof: &animal.Profile{CareLevel: animal.CareSpecialNeeds},
			want: 20,
		},
		{
			name:  "special needs accepted",
			prefs: preferences.Preferences{AcceptsSpecialNeeds: true},
			prof:  &animal.Profile{CareLevel: animal.CareSpecialNeeds},
			want:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := scoreOne(&tt.prefs, &tt.a, tt.prof)
			if res.Breakdown.Practical != tt.want {
				t.Errorf("practical = %d%%, want %d%%", res.Breakdown.Practical, tt.want)
			}
		})
	}
}

func TestScoreCandidate_SubScoresAlwaysInRange(t *testing.T) {
	// Stack every bonus and every penalty to push past the clamps.
	maxed := &preferences.Preferences{
		ActivityLevel:     preferences.ActivityModerate,
		FamilyComposition: preferences.FamilyOlderKids,
		HasOtherPets:      true,
		ExperienceLevel:   preferences.ExperienceExpert,
		PrefersTrained:    true,
		PreviousTypes:     []animal.Type{animal.TypeDog},
		PreferredTypes:    []animal.Type{animal.TypeDog},
		PreferredGenders:  []animal.Gender{animal.GenderMale},
		PrefersVaccinated: true,
		PrefersSterilized: true,
		HousingType:       preferences.HousingFarm,
		TimeAvailability:  preferences.TimeExtensive,
	}
	friendly := &animal.Profile{
		EnergyLevel:       animal.EnergyLow,
		GoodWithKids:      animal.TriTrue,
		GoodWithOtherPets: animal.TriTrue,
		TrainingLevel:     animal.TrainingProfessional,
		HouseTrained:      true,
	}
	good := &animal.Animal{
		Type: animal.TypeDog, Gender: animal.GenderMale,
		Vaccinated: true, Sterilized: true, WeightKg: 20, AgeYears: 3,
	}

	hostile := &preferences.Preferences{
		ActivityLevel:     preferences.ActivityLow,
		FamilyComposition: preferences.FamilyYoungKids,
		HasOtherPets:      true,
		ExperienceLevel:   preferences.ExperienceFirstTime,
		PrefersTrained:    true,
		PrefersVaccinated: true,
		PrefersSterilized: true,
		HousingType:       preferences.HousingApartment,
		TimeAvailability:  preferences.TimeMinimal,
		MaxWeightKg:       f64(5),
		MaxAgeYears:       f64(1),
	}
	difficult := &animal.Profile{
		EnergyLevel:         animal.EnergyVeryHigh,
		GoodWithKids:        animal.TriFalse,
		GoodWithOtherPets:   animal.TriFalse,
		TrainingLevel:       animal.TrainingUntrained,
		CareLevel:           animal.CareSpecialNeeds,
		DestructiveBehavior: true,
		SeparationAnxiety:   true,
		EscapeTendency:      true,
		NoiseSensitivity:    true,
		ApartmentSuitable:   false,
	}
	bad := &animal.Animal{Type: animal.TypeOther, WeightKg: 50, AgeYears: 14}

	cases := []struct {
		name string
		p    *preferences.Preferences
		a    *animal.Animal
		prof *animal.Profile
	}{
		{"all bonuses", maxed, good, friendly},
		{"all penalties", hostile, bad, difficult},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := scoreOne(tc.p, tc.a, tc.prof)
			components := []int{
				res.Breakdown.Personality,
				res.Breakdown.Lifestyle,
				res.Breakdown.Experience,
				res.Breakdown.Practical,
				res.Breakdown.Overall,
			}
			for i, c := range components {
				if c < 0 || c > 100 {
					t.Errorf("component %d out of range: %d", i, c)
				}
			}
			if res.Score < 0 || res.Score > 1 {
				t.Errorf("overall score out of range: %v", res.Score)
			}
		})
	}
}

func TestLabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  matching.Label
	}{
		{0.95, matching.LabelExcellent},
		{0.8, matching.LabelExcellent},
		{0.79, matching.LabelGood},
		{0.6, matching.LabelGood},
		{0.59, matching.LabelModerate},
		{0.4, matching.LabelModerate},
		{0.39, matching.LabelLow},
		{0.2, matching.LabelLow},
		{0.19, matching.LabelVeryLow},
		{0, matching.LabelVeryLow},
	}

	for _, tt := range tests {
		if got := matching.LabelForScore(tt.score); got != tt.want {
			t.Errorf("LabelForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
