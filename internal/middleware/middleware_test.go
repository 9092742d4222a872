package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dan9191/cashflow-dashboard/internal/auth"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type stubParser struct{}

func (stubParser) ParseToken(token string) (string, error) {
	if token != "good" {
		return "", errors.New("bad token")
	}
	return "session-1", nil
}

func newRouter() *mux.Router {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger))
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware(stubParser{}))
	protected.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(SessionIDKey).(string)
		w.Write([]byte(id))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized, ""},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "good"}) }, http.StatusOK, "session-1"},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK, "session-1"},
		{"bad cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "bad"}) }, http.StatusUnauthorized, ""},
	}
	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), "error")
			}
		})
	}
}

func TestRouteTemplate_Unmatched(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, "unmatched", routeTemplate(req))
}
