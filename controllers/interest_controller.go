package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"skillswap_server/services"
)

// InterestController struct
type InterestController struct {
	InterestService *services.InterestService
}

// NewInterestController initializes the controller
func NewInterestController(service *services.InterestService) *InterestController {
	return &InterestController{InterestService: service}
}

// HandleExpressInterest - Record a directional interest edge
func (c *InterestController) HandleExpressInterest(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromID string `json:"fromId"`
		ToID   string `json:"toId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	log.Printf("💖 %s is interested in %s", request.FromID, request.ToID)

	result, err := c.InterestService.ExpressInterest(r.Context(), request.FromID, request.ToID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDecline - Remove the caller's interest edge toward another person
func (c *InterestController) HandleDecline(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromID string `json:"fromId"`
		ToID   string `json:"toId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := c.InterestService.Decline(r.Context(), request.FromID, request.ToID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Interest declined"})
}

// HandleMutualStatus - Report whether two persons have mutual interest
func (c *InterestController) HandleMutualStatus(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a and b are required"})
		return
	}

	mutual, err := c.InterestService.HasMutualInterest(r.Context(), a, b)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"mutual": mutual})
}

// HandleListInterests - All interest edges leaving a person
func (c *InterestController) HandleListInterests(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get("personId")
	if personID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "personId is required"})
		return
	}

	edges, err := c.InterestService.ListInterests(r.Context(), personID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, edges)
}
