package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/featureflags"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

// PreferenceLister lists the complete preference records to fan out over.
type PreferenceLister interface {
	ListComplete(ctx context.Context) ([]*preferences.Preferences, error)
}

// AnimalStore loads animal records.
type AnimalStore interface {
	Get(ctx context.Context, id string) (*animal.Animal, error)
}

// ProfileStore loads optional behavioral profiles.
type ProfileStore interface {
	GetByAnimal(ctx context.Context, animalID string) (*animal.Profile, error)
}

// Scorer evaluates one adopter against one candidate.
type Scorer interface {
	ScoreCandidate(p *preferences.Preferences, a *animal.Animal, prof *animal.Profile) *matching.MatchResult
}

// FlagReader reads runtime feature flags. May be absent.
type FlagReader interface {
	Bool(ctx context.Context, key string, fallback bool) bool
}

// Notifier dispatches a new-match notification to an adopter.
type Notifier interface {
	NotifyMatch(ctx context.Context, userID string, result *matching.MatchResult) error
}

// MatchScanJob scores a newly registered animal against every adopter with
// complete preferences and notifies the good matches.
type MatchScanJob struct {
	config   ScanConfig
	logger   zerolog.Logger
	prefs    PreferenceLister
	animals  AnimalStore
	profiles ProfileStore
	scorer   Scorer
	flags    FlagReader
	notifier Notifier

	metrics *ScanMetrics
}

// ScanMetrics tracks match scan statistics.
type ScanMetrics struct {
	mu sync.RWMutex

	TotalScans        int64
	AdoptersEvaluated int64
	NotificationsSent int64
	NotifyFailures    int64
	SkippedAnimals    int64

	LastScanAt       time.Time
	LastScanDuration time.Duration
	TotalDuration    time.Duration
}

// ScanJobConfig holds configuration for creating a MatchScanJob.
type ScanJobConfig struct {
	Config      ScanConfig
	Logger      zerolog.Logger
	Preferences PreferenceLister
	Animals     AnimalStore
	Profiles    ProfileStore
	Scorer      Scorer
	Flags       FlagReader
	Notifier    Notifier
}

// NewMatchScanJob creates a new match scan job processor.
func NewMatchScanJob(cfg ScanJobConfig) *MatchScanJob {
	job := &MatchScanJob{
		config:   cfg.Config.withDefaults(),
		logger:   cfg.Logger.With().Str("component", "matchscan").Logger(),
		prefs:    cfg.Preferences,
		animals:  cfg.Animals,
		profiles: cfg.Profiles,
		scorer:   cfg.Scorer,
		flags:    cfg.Flags,
		notifier: cfg.Notifier,
		metrics:  &ScanMetrics{},
	}
	if job.notifier == nil {
		job.notifier = &LogNotifier{Logger: job.logger}
	}
	return job
}

// ScanResult contains the result of scanning one animal.
type ScanResult struct {
	AnimalID   string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Evaluated  int
	Notified   int
	Failed     int
	Skipped    bool
	SkipReason string
}

// ScanAnimal scores the given animal against all complete preference
// records. Returns a result describing what happened; the only error cases
// are failures to load the animal or the preference fan-out.
func (j *MatchScanJob) ScanAnimal(ctx context.Context, animalID string) (*ScanResult, error) {
	startTime := time.Now()
	result := &ScanResult{
		AnimalID:  animalID,
		StartTime: startTime,
	}

	scanCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	a, err := j.animals.Get(scanCtx, animalID)
	if err != nil {
		return nil, err
	}

	if !a.Adoptable() {
		result.Skipped = true
		result.SkipReason = "not adoptable"
		atomic.AddInt64(&j.metrics.SkippedAnimals, 1)
		j.finish(result)
		return result, nil
	}

	notificationsDisabled := false
	if j.flags != nil {
		notificationsDisabled = j.flags.Bool(scanCtx, featureflags.FlagNotificationsDisabled, false)
	}

	prof := j.loadProfile(scanCtx, animalID)

	adopters, err := j.prefs.ListComplete(scanCtx)
	if err != nil {
		return nil, err
	}

	j.logger.Info().
		Str("animal_id", animalID).
		Int("adopters", len(adopters)).
		Int("concurrency", j.config.Concurrency).
		Bool("notifications_disabled", notificationsDisabled).
		Msg("starting match scan")

	type adopterOutcome struct {
		notified bool
		failed   bool
	}

	adoptersChan := make(chan *preferences.Preferences, len(adopters))
	resultsChan := make(chan adopterOutcome, len(adopters))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range adoptersChan {
				select {
				case <-scanCtx.Done():
					return
				default:
				}

				match := j.scorer.ScoreCandidate(p, a, prof)
				outcome := adopterOutcome{}
				if match.Score >= j.config.NotifyThreshold && !notificationsDisabled {
					if err := j.notifier.NotifyMatch(scanCtx, p.UserID, match); err != nil {
						j.logger.Warn().Err(err).
							Str("user_id", p.UserID).
							Str("animal_id", animalID).
							Msg("failed to dispatch match notification")
						outcome.failed = true
					} else {
						outcome.notified = true
					}
				}
				resultsChan <- outcome
			}
		}()
	}

	for _, p := range adopters {
		adoptersChan <- p
	}
	close(adoptersChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for outcome := range resultsChan {
		result.Evaluated++
		if outcome.notified {
			result.Notified++
		}
		if outcome.failed {
			result.Failed++
		}
	}

	j.finish(result)

	j.logger.Info().
		Str("animal_id", animalID).
		Dur("duration", result.Duration).
		Int("evaluated", result.Evaluated).
		Int("notified", result.Notified).
		Int("failed", result.Failed).
		Msg("match scan completed")

	return result, nil
}

// loadProfile resolves the optional profile. Absence scores neutrally.
func (j *MatchScanJob) loadProfile(ctx context.Context, animalID string) *animal.Profile {
	if j.profiles == nil {
		return nil
	}
	prof, err := j.profiles.GetByAnimal(ctx, animalID)
	if err != nil {
		return nil
	}
	return prof
}

func (j *MatchScanJob) finish(result *ScanResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()
	j.metrics.TotalScans++
	j.metrics.AdoptersEvaluated += int64(result.Evaluated)
	j.metrics.NotificationsSent += int64(result.Notified)
	j.metrics.NotifyFailures += int64(result.Failed)
	j.metrics.LastScanAt = result.EndTime
	j.metrics.LastScanDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *MatchScanJob) GetMetrics() ScanMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return ScanMetrics{
		TotalScans:        j.metrics.TotalScans,
		AdoptersEvaluated: j.metrics.AdoptersEvaluated,
		NotificationsSent: j.metrics.NotificationsSent,
		NotifyFailures:    j.metrics.NotifyFailures,
		SkippedAnimals:    j.metrics.SkippedAnimals,
		LastScanAt:        j.metrics.LastScanAt,
		LastScanDuration:  j.metrics.LastScanDuration,
		TotalDuration:     j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *MatchScanJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_scans":        m.TotalScans,
		"adopters_evaluated": m.AdoptersEvaluated,
		"notifications_sent": m.NotificationsSent,
		"notify_failures":    m.NotifyFailures,
		"skipped_animals":    m.SkippedAnimals,
		"last_scan_at":       m.LastScanAt,
		"last_scan_duration": m.LastScanDuration.String(),
		"total_duration":     m.TotalDuration.String(),
	}
}

// LogNotifier writes match notifications to the log. Used when no push
// transport is configured.
type LogNotifier struct {
	Logger zerolog.Logger
}

// NotifyMatch logs the match instead of dispatching it.
func (n *LogNotifier) NotifyMatch(_ context.Context, userID string, result *matching.MatchResult) error {
	n.Logger.Info().
		Str("user_id", userID).
		Str("animal_id", result.Candidate.ID).
		Float64("score", result.Score).
		Msg("new match found")
	return nil
}
