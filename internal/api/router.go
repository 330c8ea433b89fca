// Package api provides the HTTP API for PawMatch.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api/handler"
	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/auth"
	"github.com/pawmatch/pawmatch/internal/featureflags"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
	"github.com/pawmatch/pawmatch/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	Database           handler.Pinger
	ProviderRegistry   *resilience.Registry
	JWTService         *auth.JWTService
	FeatureFlagService *featureflags.Service
	AnimalService      *animal.Service
	PreferencesService *preferences.Service
	MatchingService    *matching.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "pawmatch-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Database, cfg.ProviderRegistry)
	animalHandler := handler.NewAnimalHandler(cfg.AnimalService)
	preferencesHandler := handler.NewPreferencesHandler(cfg.PreferencesService)
	matchHandler := handler.NewMatchHandler(cfg.MatchingService)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Animal catalog. Listing and detail are public; mutations require
		// an authenticated shelter account.
		r.Route("/animals", func(r chi.Router) {
			r.With(standardRateLimit).Get("/", animalHandler.ListAnimals)
			r.With(authMiddleware, standardRateLimit).Post("/", animalHandler.CreateAnimal)

			r.Route("/{animalId}", func(r chi.Router) {
				r.With(standardRateLimit).Get("/", animalHandler.GetAnimal)
				r.With(authMiddleware, standardRateLimit).Put("/", animalHandler.UpdateAnimal)
				r.With(authMiddleware, standardRateLimit).Delete("/", animalHandler.DeleteAnimal)

				// Behavioral profile
				r.With(standardRateLimit).Get("/profile", animalHandler.GetAnimalProfile)
				r.With(authMiddleware, standardRateLimit).Put("/profile", animalHandler.UpsertAnimalProfile)

				// Single-animal compatibility - scoring compute, strict rate limiting
				r.With(authMiddleware, expensiveRateLimit).Get("/compatibility", matchHandler.GetCompatibility)
			})
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user

			// Adoption preferences
			r.Get("/preferences", preferencesHandler.GetPreferences)
			r.Put("/preferences", preferencesHandler.UpsertPreferences)
			r.Delete("/preferences", preferencesHandler.DeletePreferences)

			// Ranked matches - expensive compute, strict rate limiting
			r.With(middleware.RateLimitByUser(middleware.ExpensiveRateLimit)).
				Get("/matches", matchHandler.ListMatches)
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
