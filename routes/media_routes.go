package routes

import (
	"github.com/gorilla/mux"

	"spill/controllers"
)

// RegisterMediaRoutes serves stored photos under /media/{key}.
func RegisterMediaRoutes(r *mux.Router, source controllers.MediaSource) {
	controller := controllers.NewMediaController(source)
	r.HandleFunc("/media/{key:.+}", controller.GetMedia).Methods("GET")
}
