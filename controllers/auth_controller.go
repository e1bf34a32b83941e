package controllers

import (
	"net/http"

	"go.uber.org/zap"

	"spill/helpers"
	"spill/middleware"
	"spill/models"
	"spill/services"
)

// userResponse is the envelope every profile endpoint answers with.
type userResponse struct {
	User *models.UserRecord `json:"user"`
}

type AuthController struct {
	UserProfileService *services.UserProfileService
	Logger             *zap.Logger
}

func NewAuthController(userProfileService *services.UserProfileService, logger *zap.Logger) *AuthController {
	return &AuthController{UserProfileService: userProfileService, Logger: logger}
}

// Login signs the Telegram user in, creating the profile on first visit.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		helpers.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := c.UserProfileService.Login(r.Context(), user)
	if err != nil {
		c.Logger.Error("login failed", zap.Int64("user_id", user.ID), zap.Error(err))
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, userResponse{User: record})
}
