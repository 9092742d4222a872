package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/auth"
	"github.com/Dan9191/cashflow-dashboard/internal/cashflow"
	"github.com/Dan9191/cashflow-dashboard/internal/export"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/Dan9191/cashflow-dashboard/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc        *service.Service
	log        *logrus.Logger
	sessionTTL time.Duration
}

func NewHandler(svc *service.Service, log *logrus.Logger, sessionTTL time.Duration) *Handler {
	return &Handler{svc: svc, log: log, sessionTTL: sessionTTL}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login checks the shared password and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "Invalid request body"})
		return
	}

	token, err := h.svc.Login(req.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "error": "Invalid password"})
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "token": token})
}

// Logout clears the session cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListAccounts handles account listing
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// GetAccount handles fetching one account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.writeError(w, fmt.Errorf("%w: invalid account id", models.ErrInvalidInput))
		return
	}
	account, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

type createAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Website  string `json:"website"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}
	account := &models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Website:  req.Website,
		Notes:    req.Notes,
		Status:   req.Status,
	}
	if err := h.svc.CreateAccount(r.Context(), account); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// ListAdjustments handles listing the active recurring adjustments
func (h *Handler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	adjs, err := h.svc.ListAdjustments(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adjs)
}

// CreateAdjustment handles creating a recurring adjustment
func (h *Handler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var adj models.Adjustment
	if err := json.NewDecoder(r.Body).Decode(&adj); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}
	adj.ID = 0
	adj.AccountName = ""
	adj.NotesHTML = ""
	if err := h.svc.CreateAdjustment(r.Context(), &adj); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, adj)
}

// Cashflow handles the daily ledger around the anchor query parameter
func (h *Handler) Cashflow(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.ledger(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

// ExportCashflow handles the daily ledger as a SpreadsheetML download
func (h *Handler) ExportCashflow(w http.ResponseWriter, r *http.Request) {
	ledger, ok := h.ledger(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cashflow-%s.xml"`, ledger.Anchor))
	if err := export.WriteLedger(w, ledger); err != nil {
		h.log.Errorf("Failed to export ledger: %v", err)
	}
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) (*models.DailyLedger, bool) {
	anchor, err := h.dateParam(r, "anchor")
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	ledger, err := h.svc.DailyLedger(r.Context(), anchor)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return ledger, true
}

// Statement handles the monthly income statement as of the date query parameter
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	date, err := h.dateParam(r, "date")
	if err != nil {
		h.writeError(w, err)
		return
	}
	st, err := h.svc.MonthlyStatement(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// dateParam reads a YYYY-MM-DD query parameter, defaulting to today
func (h *Handler) dateParam(r *http.Request, name string) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return h.svc.Today(), nil
	}
	d, err := cashflow.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", models.ErrInvalidInput, name)
	}
	return d, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrDataUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
