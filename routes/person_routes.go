package routes

import (
	"skillswap_server/controllers"
	"skillswap_server/services"

	"github.com/gorilla/mux"
)

// RegisterPersonRoutes sets up routes for profile operations under /api/profiles
func RegisterPersonRoutes(r *mux.Router, personService *services.PersonService) {
	controller := controllers.NewPersonController(personService)

	personRouter := r.PathPrefix("/api/profiles").Subrouter()

	personRouter.HandleFunc("", controller.HandleSaveProfile).Methods("POST")
	personRouter.HandleFunc("/location", controller.HandleSetLocation).Methods("POST")
	personRouter.HandleFunc("/synthetic", controller.HandleCreateSyntheticPartners).Methods("POST")
	personRouter.HandleFunc("/{personId}", controller.HandleGetProfile).Methods("GET")
}
