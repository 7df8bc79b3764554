package controllers

import (
	"encoding/json"
	"net/http"

	"skillswap_server/models"
	"skillswap_server/services"

	"github.com/gorilla/mux"
)

// PersonController struct
type PersonController struct {
	PersonService *services.PersonService
}

// NewPersonController initializes the controller
func NewPersonController(service *services.PersonService) *PersonController {
	return &PersonController{PersonService: service}
}

// HandleSaveProfile - Create or update a profile
func (c *PersonController) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	saved, err := c.PersonService.SaveProfile(r.Context(), &person)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// HandleGetProfile - Fetch a profile by id
func (c *PersonController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	personID := mux.Vars(r)["personId"]

	person, err := c.PersonService.GetProfile(r.Context(), personID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// HandleSetLocation - Update a person's coordinates
func (c *PersonController) HandleSetLocation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		PersonID  string  `json:"personId"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	person, err := c.PersonService.SetLocation(r.Context(), request.PersonID, request.Latitude, request.Longitude)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, person)
}

// HandleCreateSyntheticPartners - Generate a private pool of simulated counterparts
func (c *PersonController) HandleCreateSyntheticPartners(w http.ResponseWriter, r *http.Request) {
	var request struct {
		OwnerID string `json:"ownerId"`
		Count   int    `json:"count"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	partners, err := c.PersonService.CreateSyntheticPartners(r.Context(), request.OwnerID, request.Count)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"partners": partners,
	})
}
