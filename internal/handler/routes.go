package handler

import (
	"net/http"

	"github.com/Dan9191/cashflow-dashboard/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the public and session-protected routes
func NewRouter(h *Handler, parser middleware.TokenParser, logger *logrus.Logger, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/logout", h.Logout).Methods("POST")
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// Protected routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(parser))
	api.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	api.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	api.HandleFunc("/accounts/{id:[0-9]+}", h.GetAccount).Methods("GET")
	api.HandleFunc("/adjustments", h.ListAdjustments).Methods("GET")
	api.HandleFunc("/adjustments", h.CreateAdjustment).Methods("POST")
	api.HandleFunc("/cashflow", h.Cashflow).Methods("GET")
	api.HandleFunc("/cashflow/export.xml", h.ExportCashflow).Methods("GET")
	api.HandleFunc("/statement", h.Statement).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	return r
}
