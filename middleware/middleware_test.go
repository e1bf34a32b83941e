package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"spill/models"
	"spill/telegram"
)

type stubAuth map[string]*telegram.WebAppUser

func (s stubAuth) Authenticate(raw string) (*telegram.WebAppUser, error) {
	if u, ok := s[raw]; ok {
		return u, nil
	}
	return nil, errors.New("denied")
}

type denyAfter struct{ left int }

func (d *denyAfter) Allow(string) bool {
	d.left--
	return d.left >= 0
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(user.FirstName))
}

func TestTelegramAuth(t *testing.T) {
	h := TelegramAuth(stubAuth{"good": {ID: 1, FirstName: "Ada"}}, zap.NewNop())(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(models.InitDataHeader, "good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"detail":"Unauthorized"}`, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(&denyAfter{left: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "ip:10.0.0.1", clientKey(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "ip:203.0.113.9", clientKey(req))

	req = req.WithContext(WithUser(req.Context(), &telegram.WebAppUser{ID: 42}))
	assert.Equal(t, "uid:42", clientKey(req))
}

func TestRecover(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
}
