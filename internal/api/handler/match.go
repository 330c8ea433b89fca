package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawmatch/pawmatch/internal/animal"
	"github.com/pawmatch/pawmatch/internal/api/middleware"
	"github.com/pawmatch/pawmatch/internal/api/models"
	"github.com/pawmatch/pawmatch/internal/api/response"
	"github.com/pawmatch/pawmatch/internal/matching"
	"github.com/pawmatch/pawmatch/internal/preferences"
)

// MatchHandler handles the compatibility matching endpoints.
type MatchHandler struct {
	service *matching.Service
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(service *matching.Service) *MatchHandler {
	return &MatchHandler{service: service}
}

// ListMatches handles GET /v1/me/matches - ranked matches for the caller.
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	criteria := matching.Criteria{AdopterID: userID}

	query := r.URL.Query()
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			response.BadRequest(w, r, "invalid limit parameter", nil)
			return
		}
		criteria.Limit = limit
	}
	if v := query.Get("minScore"); v != "" {
		minScore, err := strconv.ParseFloat(v, 64)
		if err != nil || minScore < 0 || minScore > 1 {
			response.BadRequest(w, r, "invalid minScore parameter", nil)
			return
		}
		criteria.MinScore = minScore
	}
	criteria.IncludeSpecialNeeds = query.Get("includeSpecialNeeds") == "true"

	results, err := h.service.FindMatches(r.Context(), criteria)
	if err != nil {
		h.writeMatchError(w, r, err)
		return
	}

	items := make([]models.MatchResult, 0, len(results))
	for _, result := range results {
		items = append(items, toAPIMatchResult(result))
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = matching.DefaultLimit
	}

	response.JSON(w, r, http.StatusOK, models.MatchList{
		Items: items,
		Meta:  models.PagedResponseMeta{Limit: limit},
	})
}

// GetCompatibility handles GET /v1/animals/{animalId}/compatibility - the
// caller's compatibility with one specific animal.
func (h *MatchHandler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		response.Unauthorized(w, r, "user not authenticated")
		return
	}

	animalID := chi.URLParam(r, "animalId")

	compat, err := h.service.CompatibilityFor(r.Context(), userID, animalID)
	if err != nil {
		h.writeMatchError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.CompatibilityResult{
		MatchResult: toAPIMatchResult(&compat.MatchResult),
		Label:       string(compat.Label),
	})
}

// writeMatchError maps matching errors to problem responses.
func (h *MatchHandler) writeMatchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, preferences.ErrPreferencesNotFound):
		response.PreconditionFailed(w, r, "complete your adoption preferences before requesting matches")
	case errors.Is(err, matching.ErrPreferencesIncomplete):
		response.PreconditionFailed(w, r, "complete your adoption preferences before requesting matches")
	case errors.Is(err, animal.ErrAnimalNotFound):
		response.NotFound(w, r, "animal")
	case errors.Is(err, matching.ErrMatchingDisabled):
		response.ServiceUnavailable(w, r, "matching is temporarily disabled")
	default:
		response.InternalError(w, r, "internal server error")
	}
}

// toAPIMatchResult converts a domain match result to its API representation.
func toAPIMatchResult(m *matching.MatchResult) models.MatchResult {
	return models.MatchResult{
		Candidate: models.MatchCandidate{
			ID:         m.Candidate.ID,
			Name:       m.Candidate.Name,
			Type:       string(m.Candidate.Type),
			Breed:      m.Candidate.Breed,
			AgeYears:   m.Candidate.AgeYears,
			Gender:     string(m.Candidate.Gender),
			WeightKg:   m.Candidate.WeightKg,
			Vaccinated: m.Candidate.Vaccinated,
			Sterilized: m.Candidate.Sterilized,
			PhotoURLs:  m.Candidate.PhotoURLs,
			ShelterID:  m.Candidate.ShelterID,
		},
		Score: m.Score,
		Breakdown: models.CompatibilityBreakdown{
			Personality: m.Breakdown.Personality,
			Lifestyle:   m.Breakdown.Lifestyle,
			Experience:  m.Breakdown.Experience,
			Practical:   m.Breakdown.Practical,
			Overall:     m.Breakdown.Overall,
		},
		Reasons:         m.Reasons,
		Concerns:        m.Concerns,
		HasSpecialNeeds: m.HasSpecialNeeds,
	}
}
