package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/api/models"
	"github.com/pawmatch/pawmatch/internal/api/response"
)

// AnimalHandler handles the animal catalog endpoints.
type AnimalHandler struct {
	service *animal.Service
}

// NewAnimalHandler creates a new AnimalHandler.
func NewAnimalHandler(service *animal.Service) *AnimalHandler {
	return &AnimalHandler{service: service}
}

// ListAnimals handles GET /v1/animals - list animals in the catalog.
func (h *AnimalHandler) ListAnimals(w http.ResponseWriter, r *http.Request) {
	adoptableOnly := r.URL.Query().Get("adoptableOnly") == "true"

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			response.BadRequest(w, r, "invalid limit parameter", nil)
			return
		}
		limit = parsed
	}

	list, err := h.service.List(r.Context(), adoptableOnly, limit)
	if err != nil {
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, list)
}

// GetAnimal handles GET /v1/animals/{animalId} - fetch one animal.
func (h *AnimalHandler) GetAnimal(w http.ResponseWriter, r *http.Request) {
	animalID := chi.URLParam(r, "animalId")

	a, err := h.service.Get(r.Context(), animalID)
	if err != nil {
		if errors.Is(err, animal.ErrAnimalNotFound) {
			response.NotFound(w, r, "animal")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.JSON(w, r, http.StatusOK, a)
}

// CreateAnimal handles POST /v1/animals - register a new animal.
func (h *AnimalHandler) CreateAnimal(w http.ResponseWriter, r *http.Request) {
	shelterID := middleware.GetUserID(r.Context())

	var input models.AnimalCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	a, err := h.service.Create(r.Context(), shelterID, &input)
	if err != nil {
		var validationErr *animal.ValidationError
		if errors.As(err, &validationErr) {
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.Created(w, r, "/v1/animals/"+a.ID, a)
}

// UpdateAnimal handles PUT /v1/animals/{animalId} - partial update.
func (h *AnimalHandler) UpdateAnimal(w http.ResponseWriter, r *http.Request) {
	animalID := chi.URLParam(r, "animalId")

	var input models.AnimalUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	a, err := h.service.Update(r.Context(), animalID, &input)
	if err != nil {
		var validationErr *animal.ValidationError
		switch {
		case errors.Is(err, animal.ErrAnimalNotFound):
			response.NotFound(w, r, "animal")
		case errors.As(err, &validationErr):
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
		default:
			response.InternalError(w, r, "internal server error")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, a)
}

// DeleteAnimal handles DELETE /v1/animals/{animalId} - remove an animal.
func (h *AnimalHandler) DeleteAnimal(w http.ResponseWriter, r *http.Request) {
	animalID := chi.URLParam(r, "animalId")

	if err := h.service.Delete(r.Context(), animalID); err != nil {
		if errors.Is(err, animal.ErrAnimalNotFound) {
			response.NotFound(w, r, "animal")
			return
		}
		response.InternalError(w, r, "internal server error")
		return
	}

	response.NoContent(w, r)
}

// GetAnimalProfile handles GET /v1/animals/{animalId}/profile.
func (h *AnimalHandler) GetAnimalProfile(w http.ResponseWriter, r *http.Request) {
	animalID := chi.URLParam(r, "animalId")

	p, err := h.service.GetProfile(r.Context(), animalID)
	if err != nil {
		switch {
		case errors.Is(err, animal.ErrAnimalNotFound):
			response.NotFound(w, r, "animal")
		case errors.Is(err, animal.ErrProfileNotFound):
			response.NotFound(w, r, "animal profile")
		default:
			response.InternalError(w, r, "internal server error")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}

// UpsertAnimalProfile handles PUT /v1/animals/{animalId}/profile.
func (h *AnimalHandler) UpsertAnimalProfile(w http.ResponseWriter, r *http.Request) {
	animalID := chi.URLParam(r, "animalId")

	var input models.AnimalProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	p, err := h.service.UpsertProfile(r.Context(), animalID, &input)
	if err != nil {
		var validationErr *animal.ValidationError
		switch {
		case errors.Is(err, animal.ErrAnimalNotFound):
			response.NotFound(w, r, "animal")
		case errors.As(err, &validationErr):
			response.BadRequest(w, r, "validation failed", validationErr.Errors)
		default:
			response.InternalError(w, r, "internal server error")
		}
		return
	}

	response.JSON(w, r, http.StatusOK, p)
}
