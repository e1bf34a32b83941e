package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"spill/helpers"
	"spill/models"
	"spill/telegram"
)

type contextKey string

const userContextKey contextKey = "telegramUser"

// Authenticator resolves raw init data to the Telegram user it belongs to.
type Authenticator interface {
	Authenticate(raw string) (*telegram.WebAppUser, error)
}

// TelegramAuth rejects requests without valid init data in the
// X-Telegram-InitData header and stores the user in the request context.
func TelegramAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := auth.Authenticate(r.Header.Get(models.InitDataHeader))
			if err != nil {
				logger.Info("unauthorized request",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				helpers.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func WithUser(ctx context.Context, user *telegram.WebAppUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the user TelegramAuth stored.
func UserFromContext(ctx context.Context) (*telegram.WebAppUser, bool) {
	user, ok := ctx.Value(userContextKey).(*telegram.WebAppUser)
	return user, ok && user != nil
}
