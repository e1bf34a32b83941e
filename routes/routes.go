package routes

import (
	"github.com/gorilla/mux"

	"spill/controllers"
)

// RegisterRoutes sets up the routes for the application
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")
	r.HandleFunc("/welcome", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/privacy-policy", PrivacyPolicyHandler).Methods("GET")
}
