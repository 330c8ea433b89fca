package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/api/models"
	"github.com/pawmatch/pawmatch/internal/api/response"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

// PreferencesHandler handles adopter preference endpoints.
type PreferencesHandler struct {
	service *preferences.Service
}

// NewPreferencesHandler creates a new PreferencesHandler.
func NewPreferencesHandler(service *preferences.Service) *PreferencesHandler {
	return &PreferencesHandler{service: service}
}

// GetPreferences handles GET /v1/me/preferences.
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	prefs, err := h.service.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, preferences.ErrPreferencesNotFound) {
			response.NotFound(w, r, "preferences")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, prefs)
}

// UpsertPreferences handles PUT /v1/me/preferences - create or replace.
func (h *PreferencesHandler) UpsertPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	var input models.PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	prefs, err := h.service.Upsert(r.Context(), userID, &input)
	if err != nil {
		var validationErr *preferences.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, prefs)
}

// DeletePreferences handles DELETE /v1/me/preferences.
func (h *PreferencesHandler) DeletePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, preferences.ErrPreferencesNotFound) {
			response.NotFound(w, r, "preferences")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.NoContent(w, r)
}
