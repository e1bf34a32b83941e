package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"spill/helpers"
)

// Limiter decides whether a client key may proceed.
type Limiter interface {
	Allow(key string) bool
}

// RateLimit keys on the authenticated user when there is one and on the
// client IP otherwise.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", "1")
				helpers.WriteErrorResponse(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if user, ok := UserFromContext(r.Context()); ok {
		return "uid:" + strconv.FormatInt(user.ID, 10)
	}
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		return "ip:" + strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
