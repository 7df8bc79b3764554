package controllers

import (
	"encoding/json"
	"net/http"

	"skillswap_server/services"
)

// MeetingController struct
type MeetingController struct {
	MeetingService *services.MeetingService
}

// NewMeetingController initializes the controller
func NewMeetingController(service *services.MeetingService) *MeetingController {
	return &MeetingController{MeetingService: service}
}

// HandlePropose - Propose (or re-propose) the pair's meeting
func (c *MeetingController) HandlePropose(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ProposerID     string `json:"proposerId"`
		RelationshipID string `json:"relationshipId"`
		Location       string `json:"location"`
		Date           string `json:"date"`
		Time           string `json:"time"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	meeting, err := c.MeetingService.Propose(r.Context(), request.ProposerID, request.RelationshipID, request.Location, request.Date, request.Time)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meeting)
}

// HandleAccept - Non-proposing party accepts the proposal
func (c *MeetingController) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var request struct {
		AccepterID string `json:"accepterId"`
		MeetingID  string `json:"meetingId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	meeting, err := c.MeetingService.Accept(r.Context(), request.AccepterID, request.MeetingID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meeting)
}

// HandleConfirm - A party confirms the meeting happened
func (c *MeetingController) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConfirmerID string `json:"confirmerId"`
		MeetingID   string `json:"meetingId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	bothConfirmed, err := c.MeetingService.Confirm(r.Context(), request.ConfirmerID, request.MeetingID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":        "success",
		"bothConfirmed": bothConfirmed,
	})
}

// HandleStatus - The pair's meeting and swap-unlocked flag
func (c *MeetingController) HandleStatus(w http.ResponseWriter, r *http.Request) {
	relationshipID := r.URL.Query().Get("relationshipId")
	if relationshipID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "relationshipId is required"})
		return
	}

	meeting, err := c.MeetingService.GetMeeting(r.Context(), relationshipID)
	if err != nil {
		respondError(w, err)
		return
	}

	unlocked, err := c.MeetingService.IsSwapUnlocked(r.Context(), relationshipID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"meeting":      meeting,
		"swapUnlocked": unlocked,
	})
}
