package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"spill/controllers"
	"spill/middleware"
	"spill/services"
)

// RegisterAuthRoutes sets up sign-in and own-profile routes under /auth.
// Every route requires Telegram init data and is rate limited per user.
func RegisterAuthRoutes(
	r *mux.Router,
	userProfileService *services.UserProfileService,
	auth middleware.Authenticator,
	limiter middleware.Limiter,
	maxAttachmentBytes int64,
	logger *zap.Logger,
) {
	authController := controllers.NewAuthController(userProfileService, logger)
	profileController := controllers.NewUserProfileController(userProfileService, maxAttachmentBytes, logger)

	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.Use(middleware.TelegramAuth(auth, logger), middleware.RateLimit(limiter))

	authRouter.HandleFunc("/telegram", authController.Login).Methods("POST")
	authRouter.HandleFunc("/me", profileController.GetMe).Methods("GET")
	authRouter.HandleFunc("/me", profileController.UpdateMe).Methods("PATCH")
}
