package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"skillswap_server/services"
)

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the service error taxonomy to transport status codes in one
// place, so every route reports failures the same way.
func respondError(w http.ResponseWriter, err error) {
	var (
		notFound   *services.NotFoundError
		forbidden  *services.ForbiddenError
		validation *services.ValidationError
		notEnabled *services.ChatNotEnabledError
		conflict   *services.ConflictError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &forbidden):
		status = http.StatusForbidden
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notEnabled):
		status = http.StatusForbidden
	case errors.As(err, &conflict):
		status = http.StatusConflict
	default:
		log.Printf("❌ Internal error: %v", err)
		writeJSON(w, status, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
