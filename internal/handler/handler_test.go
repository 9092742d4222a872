package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/auth"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/Dan9191/cashflow-dashboard/internal/repository"
	"github.com/Dan9191/cashflow-dashboard/internal/service"
	"github.com/Dan9191/cashflow-dashboard/internal/utils"
	"github.com/beevik/etree"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testKey = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"

type testEnv struct {
	router *mux.Router
	db     *sql.DB
	token  string
}

func setupHandler(t *testing.T) *testEnv {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dashboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repository.NewRepository(db, repository.SQLite)
	require.NoError(t, repo.Migrate(context.Background()))

	authn, err := auth.NewAuthenticator("", "1234", "secret", time.Hour)
	require.NoError(t, err)
	key, err := utils.ParseKey(testKey)
	require.NoError(t, err)

	svc := service.NewService(repo, authn, logger, key, decimal.NewFromInt(10000))
	h := NewHandler(svc, logger, authn.TTL())
	token, err := authn.IssueToken()
	require.NoError(t, err)

	return &testEnv{router: NewRouter(h, authn, logger, true), db: db, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: e.token})
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	env := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"password":"1234"}`))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.NotEmpty(t, resp["token"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"password":"nope"}`))
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid password"}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	env := setupHandler(t)
	for _, path := range []string{"/api/accounts", "/api/adjustments", "/api/cashflow", "/api/statement"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccounts(t *testing.T) {
	env := setupHandler(t)

	w := env.do(t, http.MethodPost, "/api/accounts", map[string]string{
		"name": "Checking", "email": "me@example.com", "password": "pw", "notes": "main *account*",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.NotContains(t, w.Body.String(), `"password"`)
	assert.Contains(t, created.NotesHTML, "<em>account</em>")

	w = env.do(t, http.MethodGet, "/api/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var accounts []models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "Checking", accounts[0].Name)

	w = env.do(t, http.MethodGet, "/api/accounts/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, "/api/accounts", map[string]string{"email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func seedAdjustments(t *testing.T, env *testEnv) {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/accounts", map[string]string{"name": "Checking"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var account models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &account))

	for _, adj := range []models.Adjustment{
		{AccountID: account.ID, Label: "Salary", Value: "1000", Frequency: "MONTHLY", StartedOn: "2024-01-15"},
		{AccountID: account.ID, Label: "Groceries", Value: "-350", Frequency: "weekly", StartedOn: "2024-01-01"},
		{AccountID: account.ID, Label: "Insurance", Value: "1200", Frequency: "YEARLY", StartedOn: "2024-03-01"},
	} {
		w := env.do(t, http.MethodPost, "/api/adjustments", adj)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestCashflow(t *testing.T) {
	env := setupHandler(t)
	seedAdjustments(t, env)

	w := env.do(t, http.MethodGet, "/api/cashflow?anchor=2024-01-20", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ledger models.DailyLedger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledger))
	assert.Equal(t, "2024-01-01", ledger.Anchor)
	assert.Len(t, ledger.Days, 91)
	assert.Len(t, ledger.Adjustments, 3)
	assert.True(t, decimal.NewFromInt(-350).Equal(ledger.Outflow["2024-01-08"]))
	assert.True(t, decimal.NewFromInt(10000).Equal(ledger.StartingBalance["2023-12-01"]))

	w = env.do(t, http.MethodGet, "/api/cashflow?anchor=January", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportCashflow(t *testing.T) {
	env := setupHandler(t)
	seedAdjustments(t, env)

	w := env.do(t, http.MethodGet, "/api/cashflow/export.xml?anchor=2024-02-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cashflow-2024-02-01.xml")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(w.Body.Bytes()))
	// header, five totals rows and three adjustments
	assert.Len(t, doc.FindElements("//Table/Row"), 9)
}

func TestStatement(t *testing.T) {
	env := setupHandler(t)
	seedAdjustments(t, env)

	w := env.do(t, http.MethodGet, "/api/statement?date=2024-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var st models.MonthlyStatement
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	require.Len(t, st.Items, 3)
	assert.Equal(t, "Salary", st.Items[0].Label)
	assert.Equal(t, "Checking", st.Items[0].AccountName)
	assert.Equal(t, "Groceries", st.Items[2].Label)
	assert.True(t, decimal.NewFromInt(1100).Equal(st.IncomeMonthly))
	assert.True(t, decimal.NewFromInt(1300).Equal(st.ChargesMonthly))
	assert.True(t, decimal.NewFromInt(-200).Equal(st.NetMonthly))
}

func TestDataUnavailable(t *testing.T) {
	env := setupHandler(t)
	env.db.Close()

	w := env.do(t, http.MethodGet, "/api/cashflow", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "failed to load recurrent adjustments")

	w = env.do(t, http.MethodGet, "/api/statement", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "failed to compute monthly income statement")
}

func TestAdjustments(t *testing.T) {
	env := setupHandler(t)
	seedAdjustments(t, env)

	w := env.do(t, http.MethodGet, "/api/adjustments", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var adjs []models.Adjustment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adjs))
	require.Len(t, adjs, 3)
	// newest first, frequency normalized on create
	assert.Equal(t, "Insurance", adjs[0].Label)
	assert.Equal(t, "WEEKLY", adjs[1].Frequency)
	assert.Equal(t, models.StatusActive, adjs[1].Status)

	w = env.do(t, http.MethodPost, "/api/adjustments", models.Adjustment{AccountID: 999, Value: "1", StartedOn: "2024-01-01"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetrics(t *testing.T) {
	env := setupHandler(t)
	env.do(t, http.MethodGet, "/health", nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cashflow_http_requests_total")
}
