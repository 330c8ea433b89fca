package matching

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/featureflags"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

// ErrMatchingDisabled is returned while the matching kill switch is on.
var ErrMatchingDisabled = errors.New("matching is temporarily disabled")

// PreferenceStore loads adopter preferences.
type PreferenceStore interface {
	GetByUser(ctx context.Context, userID string) (*preferences.Preferences, error)
}

// CandidateStore loads candidate animals.
type CandidateStore interface {
	Get(ctx context.Context, id string) (*animal.Animal, error)
	List(ctx context.Context, opts animal.ListOptions) ([]*animal.Animal, error)
}

// ProfileStore loads optional behavioral profiles.
type ProfileStore interface {
	GetByAnimal(ctx context.Context, animalID string) (*animal.Profile, error)
}

// FlagReader reads runtime feature flags. May be absent.
type FlagReader interface {
	Bool(ctx context.Context, key string, fallback bool) bool
	Float(ctx context.Context, key string, fallback float64) float64
}

// ServiceConfig holds the matching service dependencies.
type ServiceConfig struct {
	Preferences PreferenceStore
	Animals     CandidateStore
	Profiles    ProfileStore

	// Flags is optional. Without it the compile-time defaults apply.
	Flags FlagReader

	Logger zerolog.Logger

	// Concurrency bounds the scoring worker pool when concurrent scoring
	// is enabled. Zero means 4.
	Concurrency int
}

// Service ranks adoptable animals against adopter preferences. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	prefs       PreferenceStore
	animals     CandidateStore
	profiles    ProfileStore
	flags       FlagReader
	logger      zerolog.Logger
	concurrency int
}

// NewService creates a new matching service.
func NewService(cfg ServiceConfig) *Service {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Service{
		prefs:       cfg.Preferences,
		animals:     cfg.Animals,
		profiles:    cfg.Profiles,
		flags:       cfg.Flags,
		logger:      cfg.Logger.With().Str("component", "matching").Logger(),
		concurrency: concurrency,
	}
}

// ScoreCandidate computes the full compatibility result for one candidate.
// It is pure: no lookups, no persistence.
func (s *Service) ScoreCandidate(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile) *MatchResult {
	ev := &evaluation{}

	personality := scorePersonality(p, prof, ev)
	lifestyle := scoreLifestyle(p, a, prof, ev)
	experience := scoreExperience(p, a, prof, ev)
	practical := scorePractical(p, a, prof, ev)

	overall := round2(personality*weightPersonality +
		lifestyle*weightLifestyle +
		experience*weightExperience +
		practical*weightPractical)

	return &MatchResult{
		Candidate: summaryOf(a),
		Score:     overall,
		Breakdown: Breakdown{
			Personality: percent(personality),
			Lifestyle:   percent(lifestyle),
			Experience:  percent(experience),
			Practical:   percent(practical),
			Overall:     percent(overall),
		},
		Reasons:         ev.reasons,
		Concerns:        ev.concerns,
		HasSpecialNeeds: hasSpecialNeeds(prof),
	}
}

// FindMatches scores all adoptable candidates against the adopter's
// preferences and returns the ranked top results.
//
// Preconditions fail the whole call: absent preferences surface
// preferences.ErrPreferencesNotFound, incomplete ones ErrPreferencesIncomplete.
// Once past the gate, any lookup failure aborts the batch with no partial
// results.
func (s *Service) FindMatches(ctx context.Context, criteria Criteria) ([]*MatchResult, error) {
	if s.flagBool(ctx, featureflags.FlagMatchingDisabled, false) {
		return nil, ErrMatchingDisabled
	}

	p, err := s.prefs.GetByUser(ctx, criteria.AdopterID)
	if err != nil {
		return nil, err
	}
	if !p.IsComplete {
		return nil, ErrPreferencesIncomplete
	}

	candidates, err := s.animals.List(ctx, animal.ListOptions{AdoptableOnly: true})
	if err != nil {
		return nil, err
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	minScore := criteria.MinScore
	if minScore <= 0 {
		minScore = s.flagFloat(ctx, featureflags.FlagDefaultMinScore, DefaultMinScore)
	}

	scored, err := s.scoreAll(ctx, p, candidates)
	if err != nil {
		return nil, err
	}

	var results []*MatchResult
	for _, r := range scored {
		if r.Score < minScore {
			continue
		}
		if r.HasSpecialNeeds && !criteria.IncludeSpecialNeeds {
			continue
		}
		results = append(results, r)
	}

	// Stable sort keeps candidate insertion order as the tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug().
		Str("user_id", criteria.AdopterID).
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Float64("min_score", minScore).
		Msg("matches computed")

	return results, nil
}

// Compatibility is the single-candidate result, extended with a qualitative
// label for presentation.
type Compatibility struct {
	MatchResult
	Label Label
}

// CompatibilityFor scores one specific candidate for an adopter, regardless
// of score thresholds or special-needs filtering.
func (s *Service) CompatibilityFor(ctx context.Context, adopterID, animalID string) (*Compatibility, error) {
	p, err := s.prefs.GetByUser(ctx, adopterID)
	if err != nil {
		return nil, err
	}
	if !p.IsComplete {
		return nil, ErrPreferencesIncomplete
	}

	a, err := s.animals.Get(ctx, animalID)
	if err != nil {
		return nil, err
	}

	prof, err := s.loadProfile(ctx, animalID)
	if err != nil {
		return nil, err
	}

	result := s.ScoreCandidate(p, a, prof)
	return &Compatibility{
		MatchResult: *result,
		Label:       LabelForScore(result.Score),
	}, nil
}

// scoreAll evaluates every candidate, preserving input order. The profile
// lookup is the only blocking step, so a worker pool is used when the
// concurrent-scoring flag is on.
func (s *Service) scoreAll(ctx context.Context, p *preferences.Preferences, candidates []*animal.Animal) ([]*MatchResult, error) {
	if !s.flagBool(ctx, featureflags.FlagConcurrentScoring, false) || len(candidates) < 2 {
		results := make([]*MatchResult, 0, len(candidates))
		for _, a := range candidates {
			prof, err := s.loadProfile(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			results = append(results, s.ScoreCandidate(p, a, prof))
		}
		return results, nil
	}

	results := make([]*MatchResult, len(candidates))
	errs := make([]error, len(candidates))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, a := range candidates {
		wg.Add(1)
		go func(i int, a *animal.Animal) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			prof, err := s.loadProfile(ctx, a.ID)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = s.ScoreCandidate(p, a, prof)
		}(i, a)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// loadProfile treats profile absence as nil, not as an error.
func (s *Service) loadProfile(ctx context.Context, animalID string) (*animal.Profile, error) {
	prof, err := s.profiles.GetByAnimal(ctx, animalID)
	if err != nil {
		if errors.Is(err, animal.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return prof, nil
}

func (s *Service) flagBool(ctx context.Context, key string, fallback bool) bool {
	if s.flags == nil {
		return fallback
	}
	return s.flags.Bool(ctx, key, fallback)
}

func (s *Service) flagFloat(ctx context.Context, key string, fallback float64) float64 {
	if s.flags == nil {
		return fallback
	}
	return s.flags.Float(ctx, key, fallback)
}
