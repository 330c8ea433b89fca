// Package handler provides HTTP handlers for the PawMatch API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/pawmatch/pawmatch/internal/api/models"
	"github.com/pawmatch/pawmatch/internal/api/response"
	"github.com/pawmatch/pawmatch/internal/provider/resilience"
)

// Pinger checks the liveness of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	providers *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler. db and providers may be nil when
// the service runs without a database or external providers (tests, local
// development).
func NewOpsHandler(version, buildTime string, db Pinger, providers *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		providers: providers,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Reports DEGRADED with a 503 when the database is unreachable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusDegraded
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	dbStatus := models.HealthStatusOK
	var dbDetail *string
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = models.HealthStatusFail
			msg := err.Error()
			dbDetail = &msg
		}
	}

	providers := h.providerStatuses()

	overall := models.HealthStatusOK
	if dbStatus != models.HealthStatusOK {
		overall = models.HealthStatusDegraded
	}
	for _, p := range providers {
		if p.Status != models.HealthStatusOK {
			overall = models.HealthStatusDegraded
		}
	}

	status := models.SystemStatus{
		Status: overall,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "cloud-sql", Status: dbStatus, Detail: dbDetail},
			{Name: "feature-flags", Status: models.HealthStatusOK},
		},
		Providers: providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

// providerStatuses maps registered provider health into the status payload.
// Circuit state decides the status: closed is OK, half-open DEGRADED,
// open FAIL.
func (h *OpsHandler) providerStatuses() []models.ProviderStatus {
	if h.providers == nil {
		return []models.ProviderStatus{}
	}

	healthList := h.providers.GetAllHealth()
	statuses := make([]models.ProviderStatus, 0, len(healthList))
	for _, health := range healthList {
		status := models.HealthStatusOK
		switch {
		case health.IsUnhealthy():
			status = models.HealthStatusFail
		case health.IsDegraded():
			status = models.HealthStatusDegraded
		}

		p := models.ProviderStatus{
			Provider: health.Name,
			Status:   status,
		}
		if health.LastSuccessAt != nil {
			ts := models.Timestamp(*health.LastSuccessAt)
			p.LastSuccessAt = &ts
		}
		if health.LastFailureAt != nil {
			ts := models.Timestamp(*health.LastFailureAt)
			p.LastFailureAt = &ts
		}
		if health.LastError != "" {
			msg := health.LastError
			p.Message = &msg
		}
		statuses = append(statuses, p)
	}
	return statuses
}
