package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"skillswap_server/services"

	gosocketio "github.com/erock530/gosf-socketio"
)

// ChatController struct. Socket is optional: when set, stored messages are also
// broadcast to the relationship's room for connected clients. Polling remains
// the contract either way.
type ChatController struct {
	ChatService *services.ChatService
	Socket      *gosocketio.Server
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService, socket *gosocketio.Server) *ChatController {
	return &ChatController{ChatService: service, Socket: socket}
}

// HandleSendMessage - Store a new message in a relationship's chat
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SenderID       string `json:"senderId"`
		RelationshipID string `json:"relationshipId"`
		Content        string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	message, err := c.ChatService.SendMessage(r.Context(), request.SenderID, request.RelationshipID, request.Content, false)
	if err != nil {
		respondError(w, err)
		return
	}

	if c.Socket != nil {
		c.Socket.BroadcastTo(message.RelationshipID, "newMessage", message)
	}

	writeJSON(w, http.StatusOK, message)
}

// HandleGetMessages - Messages for a relationship in chronological order
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	relationshipID := r.URL.Query().Get("relationshipId")
	requesterID := r.URL.Query().Get("requesterId")
	if relationshipID == "" || requesterID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "relationshipId and requesterId are required"})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := c.ChatService.GetMessages(r.Context(), requesterID, relationshipID, limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleGetMessagesSince - Messages newer than a timestamp, for polling clients
func (c *ChatController) HandleGetMessagesSince(w http.ResponseWriter, r *http.Request) {
	relationshipID := r.URL.Query().Get("relationshipId")
	requesterID := r.URL.Query().Get("requesterId")
	since := r.URL.Query().Get("since")
	if relationshipID == "" || requesterID == "" || since == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "relationshipId, requesterId and since are required"})
		return
	}

	messages, err := c.ChatService.GetMessagesSince(r.Context(), requesterID, relationshipID, since)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleMarkRead - Flip the reader's unread messages and zero their counter
func (c *ChatController) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ReaderID       string `json:"readerId"`
		RelationshipID string `json:"relationshipId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := c.ChatService.MarkRead(r.Context(), request.ReaderID, request.RelationshipID); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Messages marked as read"})
}

// HandleUnreadCounts - Non-zero unread counters per relationship for a person
func (c *ChatController) HandleUnreadCounts(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get("personId")
	if personID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "personId is required"})
		return
	}

	counts, err := c.ChatService.AllUnreadCounts(r.Context(), personID)
	if err != nil {
		respondError(w, err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"counts": counts,
		"total":  total,
	})
}

// HandleConversationStage - The pair's current stage
func (c *ChatController) HandleConversationStage(w http.ResponseWriter, r *http.Request) {
	relationshipID := r.URL.Query().Get("relationshipId")
	if relationshipID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "relationshipId is required"})
		return
	}

	stage, err := c.ChatService.ConversationStage(r.Context(), relationshipID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"stage": stage})
}
