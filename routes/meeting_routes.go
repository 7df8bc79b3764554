package routes

import (
	"skillswap_server/controllers"
	"skillswap_server/services"

	"github.com/gorilla/mux"
)

// RegisterMeetingRoutes sets up routes for meetings under /api/meetings
func RegisterMeetingRoutes(r *mux.Router, meetingService *services.MeetingService) {
	controller := controllers.NewMeetingController(meetingService)

	meetingRouter := r.PathPrefix("/api/meetings").Subrouter()

	meetingRouter.HandleFunc("/propose", controller.HandlePropose).Methods("POST")
	meetingRouter.HandleFunc("/accept", controller.HandleAccept).Methods("POST")
	meetingRouter.HandleFunc("/confirm", controller.HandleConfirm).Methods("POST")
	meetingRouter.HandleFunc("/status", controller.HandleStatus).Methods("GET")
}
