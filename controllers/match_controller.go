package controllers

import (
	"net/http"
	"strconv"

	"skillswap_server/services"
)

// Default discovery radius when the client doesn't pass one.
const defaultRadiusMiles = 25.0

// MatchController struct
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController initializes the controller
func NewMatchController(service *services.MatchService) *MatchController {
	return &MatchController{MatchService: service}
}

// HandleFindMatches - Ranked complementary matches for a person within a radius
func (c *MatchController) HandleFindMatches(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get("personId")
	if personID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "personId is required"})
		return
	}

	radius := defaultRadiusMiles
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		parsed, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius must be a number"})
			return
		}
		radius = parsed
	}

	matches, err := c.MatchService.FindMatches(r.Context(), personID, radius)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matches)
}
