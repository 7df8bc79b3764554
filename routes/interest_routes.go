package routes

import (
	"skillswap_server/controllers"
	"skillswap_server/services"

	"github.com/gorilla/mux"
)

// RegisterInterestRoutes sets up routes for interest edges under /api/interests
func RegisterInterestRoutes(r *mux.Router, interestService *services.InterestService) {
	controller := controllers.NewInterestController(interestService)

	interestRouter := r.PathPrefix("/api/interests").Subrouter()

	interestRouter.HandleFunc("/express", controller.HandleExpressInterest).Methods("POST")
	interestRouter.HandleFunc("/decline", controller.HandleDecline).Methods("POST")
	interestRouter.HandleFunc("/mutual", controller.HandleMutualStatus).Methods("GET")
	interestRouter.HandleFunc("", controller.HandleListInterests).Methods("GET")
}
