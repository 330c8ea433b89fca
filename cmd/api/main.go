// Package main provides the entrypoint for the PawMatch API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api"
	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/auth"
	"github.com/pawmatch/pawmatch/internal/database"
	"github.com/pawmatch/pawmatch/internal/featureflags"
	"github.com/pawmatch/pawmatch/internal/geocode"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
	"github.com/pawmatch/pawmatch/internal/provider/resilience"
	"github.com/pawmatch/pawmatch/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "pawmatch-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting PawMatch API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.pawmatch.io",
		Audience:   "pawmatch-api",
	})
	log.Info().Msg("JWT service initialized")

	// Initialize feature flags repository and service
	ffRepo := featureflags.NewPostgresRepository(pool)
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: ffRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Initialize animal repositories and service
	animalRepo := animal.NewPostgresRepository(pool)
	profileRepo := animal.NewPostgresProfileRepository(pool)
	animalService := animal.NewService(animalRepo, profileRepo)
	log.Info().Msg("animal service initialized")

	// Provider registry backs the ops status endpoint with per-provider health
	providerRegistry := resilience.NewRegistry()

	// Initialize geocoder (optional, used to resolve free-text locations)
	var geocoder preferences.Geocoder
	if os.Getenv("GEOCODING_ENABLED") == "true" {
		geocoder = geocode.NewClient(geocode.ClientConfig{
			BaseURL:   os.Getenv("NOMINATIM_BASE_URL"),
			UserAgent: serviceName + "/" + Version,
			Registry:  providerRegistry,
		})
		log.Info().Msg("geocoder initialized")
	}

	// Initialize preferences repository and service
	prefsRepo := preferences.NewPostgresRepository(pool)
	prefsService := preferences.NewService(preferences.ServiceConfig{
		Repository: prefsRepo,
		Logger:     log,
		Geocoder:   geocoder,
	})
	log.Info().Msg("preferences service initialized")

	// Initialize matching service
	matchingService := matching.NewService(matching.ServiceConfig{
		Preferences: prefsRepo,
		Animals:     animalRepo,
		Profiles:    profileRepo,
		Flags:       ffService,
		Logger:      log,
	})
	log.Info().Msg("matching service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		Database:           pool,
		ProviderRegistry:   providerRegistry,
		JWTService:         jwtService,
		FeatureFlagService: ffService,
		AnimalService:      animalService,
		PreferencesService: prefsService,
		MatchingService:    matchingService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
