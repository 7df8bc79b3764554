package routes

import (
	"skillswap_server/controllers"
	"skillswap_server/services"

	gosocketio "github.com/erock530/gosf-socketio"
	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, socket *gosocketio.Server) {
	controller := controllers.NewChatController(chatService, socket)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/since", controller.HandleGetMessagesSince).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.HandleMarkRead).Methods("POST")
	chatRouter.HandleFunc("/unread", controller.HandleUnreadCounts).Methods("GET")
	chatRouter.HandleFunc("/stage", controller.HandleConversationStage).Methods("GET")
}
