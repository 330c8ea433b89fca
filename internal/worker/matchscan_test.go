package worker_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
	"github.com/pawmatch/pawmatch/internal/worker"
)

// recordingNotifier records dispatched notifications.
type recordingNotifier struct {
	mu       sync.Mutex
	notified []string
	failWith error
}

func (n *recordingNotifier) NotifyMatch(_ context.Context, userID string, _ *matching.MatchResult) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.notified = append(n.notified, userID)
	return nil
}

func (n *recordingNotifier) users() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.notified...)
}

// staticFlags returns fixed flag values.
type staticFlags struct {
	values map[string]bool
}

func (f *staticFlags) Bool(_ context.Context, key string, fallback bool) bool {
	if v, ok := f.values[key]; ok {
		return v
	}
	return fallback
}

type scanFixture struct {
	animals  *animal.InMemoryRepository
	profiles *animal.InMemoryProfileRepository
	prefs    *preferences.InMemoryRepository
	notifier *recordingNotifier
	flags    *staticFlags
}

func newScanFixture() *scanFixture {
	return &scanFixture{
		animals:  animal.NewInMemoryRepository(),
		profiles: animal.NewInMemoryProfileRepository(),
		prefs:    preferences.NewInMemoryRepository(),
		notifier: &recordingNotifier{},
		flags:    &staticFlags{values: map[string]bool{}},
	}
}

func (f *scanFixture) job() *worker.MatchScanJob {
	logger := zerolog.New(io.Discard)
	scorer := matching.NewService(matching.ServiceConfig{
		Preferences: f.prefs,
		Animals:     f.animals,
		Profiles:    f.profiles,
		Logger:      logger,
	})

	return worker.NewMatchScanJob(worker.ScanJobConfig{
		Logger:      logger,
		Preferences: f.prefs,
		Animals:     f.animals,
		Profiles:    f.profiles,
		Scorer:      scorer,
		Flags:       f.flags,
		Notifier:    f.notifier,
	})
}

func (f *scanFixture) addDog(id string) {
	now := time.Now()
	_ = f.animals.Create(context.Background(), &animal.Animal{
		ID:                   id,
		Name:                 "Rex",
		Type:                 animal.TypeDog,
		AgeYears:             3,
		Gender:               animal.GenderMale,
		WeightKg:             25,
		Vaccinated:           true,
		Sterilized:           true,
		Status:               animal.StatusAvailable,
		AvailableForAdoption: true,
		CreatedAt:            now,
		UpdatedAt:            now,
	})
}

func (f *scanFixture) addProfile(animalID string) {
	now := time.Now()
	_ = f.profiles.Upsert(context.Background(), &animal.Profile{
		ID:               "prf_" + animalID,
		AnimalID:         animalID,
		EnergyLevel:      animal.EnergyModerate,
		TrainingLevel:    animal.TrainingBasic,
		CareLevel:        animal.CareModerate,
		HouseTrained:     false,
		BeginnerFriendly: true,
		FamilyFriendly:   true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

// addAdopter registers a complete preference record that fits the fixture
// dog well.
func (f *scanFixture) addAdopter(userID string) {
	now := time.Now()
	_ = f.prefs.Upsert(context.Background(), &preferences.Preferences{
		ID:                "prf_" + userID,
		UserID:            userID,
		PreferredTypes:    []animal.Type{animal.TypeDog},
		ExperienceLevel:   preferences.ExperienceSome,
		HousingType:       preferences.HousingHouseSmallYard,
		FamilyComposition: preferences.FamilySingle,
		TimeAvailability:  preferences.TimeModerate,
		ActivityLevel:     preferences.ActivityModerate,
		PrefersVaccinated: true,
		IsComplete:        true,
		CompletedAt:       &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// addPickyAdopter registers a complete record that fits the fixture dog
// poorly: wrong species, small-animal apartment household with minimal time
// and no experience.
func (f *scanFixture) addPickyAdopter(userID string) {
	now := time.Now()
	maxWeight := 10.0
	_ = f.prefs.Upsert(context.Background(), &preferences.Preferences{
		ID:                "prf_" + userID,
		UserID:            userID,
		PreferredTypes:    []animal.Type{animal.TypeBird},
		MaxWeightKg:       &maxWeight,
		ExperienceLevel:   preferences.ExperienceFirstTime,
		HousingType:       preferences.HousingApartment,
		FamilyComposition: preferences.FamilyYoungKids,
		TimeAvailability:  preferences.TimeMinimal,
		ActivityLevel:     preferences.ActivityLow,
		IsComplete:        true,
		CompletedAt:       &now,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

func TestMatchScanJob_NotifiesGoodMatches(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")
	f.addProfile("anm_rex")
	f.addAdopter("usr_dogperson")
	f.addPickyAdopter("usr_birdperson")

	result, err := f.job().ScanAnimal(context.Background(), "anm_rex")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Evaluated)
	assert.Equal(t, 1, result.Notified)
	assert.False(t, result.Skipped)

	// Only the adopter above the notify threshold hears about the match.
	assert.Equal(t, []string{"usr_dogperson"}, f.notifier.users())
}

func TestMatchScanJob_SkipsUnavailableAnimal(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")
	f.addAdopter("usr_dogperson")

	ctx := context.Background()
	a, err := f.animals.Get(ctx, "anm_rex")
	require.NoError(t, err)
	a.Status = animal.StatusAdopted
	require.NoError(t, f.animals.Update(ctx, a))

	result, err := f.job().ScanAnimal(ctx, "anm_rex")
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, "not adoptable", result.SkipReason)
	assert.Empty(t, f.notifier.users())
}

func TestMatchScanJob_UnknownAnimal(t *testing.T) {
	f := newScanFixture()

	_, err := f.job().ScanAnimal(context.Background(), "anm_missing")
	assert.ErrorIs(t, err, animal.ErrAnimalNotFound)
}

func TestMatchScanJob_NotificationsDisabledFlag(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")
	f.addAdopter("usr_dogperson")
	f.flags.values["notifications_disabled"] = true

	result, err := f.job().ScanAnimal(context.Background(), "anm_rex")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Evaluated)
	assert.Zero(t, result.Notified)
	assert.Empty(t, f.notifier.users())
}

func TestMatchScanJob_NotifyFailureIsCounted(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")
	f.addAdopter("usr_dogperson")
	f.notifier.failWith = errors.New("push gateway unavailable")

	result, err := f.job().ScanAnimal(context.Background(), "anm_rex")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Zero(t, result.Notified)
}

func TestMatchScanJob_NoCompleteAdopters(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")

	result, err := f.job().ScanAnimal(context.Background(), "anm_rex")
	require.NoError(t, err)

	assert.Zero(t, result.Evaluated)
	assert.Zero(t, result.Notified)
}

func TestMatchScanJob_Metrics(t *testing.T) {
	f := newScanFixture()
	f.addDog("anm_rex")
	f.addAdopter("usr_dogperson")

	job := f.job()
	_, err := job.ScanAnimal(context.Background(), "anm_rex")
	require.NoError(t, err)

	metrics := job.GetMetrics()
	assert.Equal(t, int64(1), metrics.TotalScans)
	assert.Equal(t, int64(1), metrics.AdoptersEvaluated)
	assert.Equal(t, int64(1), metrics.NotificationsSent)
	assert.False(t, metrics.LastScanAt.IsZero())

	snapshot := job.MetricsSnapshot()
	assert.Equal(t, int64(1), snapshot["total_scans"])
}

func TestDefaultScanConfig(t *testing.T) {
	cfg := worker.DefaultScanConfig()

	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.InDelta(t, 0.6, cfg.NotifyThreshold, 0.0001)
}
