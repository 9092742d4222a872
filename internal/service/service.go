package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/cashflow"
	"github.com/Dan9191/cashflow-dashboard/internal/metrics"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/Dan9191/cashflow-dashboard/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store is the persistent data the dashboard reads and writes
type Store interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	FindAccountByID(ctx context.Context, id int64) (*models.Account, error)
	CreateAccount(ctx context.Context, account *models.Account) error
	ListActiveAdjustments(ctx context.Context) ([]models.Adjustment, error)
	CreateAdjustment(ctx context.Context, adj *models.Adjustment) error
}

// Authenticator verifies the shared password and issues session tokens
type Authenticator interface {
	Verify(password string) error
	IssueToken() (string, error)
}

// Service handles business logic
type Service struct {
	store           Store
	auth            Authenticator
	log             *logrus.Logger
	encryptionKey   []byte
	startingBalance decimal.Decimal
	now             func() time.Time
}

// NewService initializes a new service
func NewService(store Store, auth Authenticator, log *logrus.Logger, encryptionKey []byte, startingBalance decimal.Decimal) *Service {
	return &Service{
		store:           store,
		auth:            auth,
		log:             log,
		encryptionKey:   encryptionKey,
		startingBalance: startingBalance,
		now:             time.Now,
	}
}

// Today is the service's current calendar day
func (s *Service) Today() time.Time {
	return cashflow.Day(s.now())
}

// Login checks the shared password and returns a session token
func (s *Service) Login(password string) (string, error) {
	if err := s.auth.Verify(password); err != nil {
		s.log.Warn("Login rejected: invalid password")
		return "", err
	}
	token, err := s.auth.IssueToken()
	if err != nil {
		return "", err
	}
	s.log.Info("Dashboard session started")
	return token, nil
}

// DailyLedger projects the active adjustments over the three month window
// around anchor
func (s *Service) DailyLedger(ctx context.Context, anchor time.Time) (*models.DailyLedger, error) {
	entries, err := s.activeEntries(ctx)
	if err != nil {
		metrics.ProjectionFailures.WithLabelValues("ledger").Inc()
		return nil, fmt.Errorf("failed to load recurrent adjustments: %w", err)
	}

	ledger := cashflow.DailyLedger(entries, anchor, s.startingBalance)
	metrics.Projections.WithLabelValues("ledger").Inc()
	s.log.WithFields(logrus.Fields{
		"anchor":      ledger.Anchor,
		"adjustments": len(entries),
	}).Debug("Daily ledger computed")
	return &ledger, nil
}

// MonthlyStatement reconciles the adjustments active on date into monthly
// averages
func (s *Service) MonthlyStatement(ctx context.Context, date time.Time) (*models.MonthlyStatement, error) {
	entries, err := s.activeEntries(ctx)
	if err != nil {
		metrics.ProjectionFailures.WithLabelValues("statement").Inc()
		return nil, fmt.Errorf("failed to compute monthly income statement: %w", err)
	}

	st := cashflow.Reconcile(entries, date)
	metrics.Projections.WithLabelValues("statement").Inc()
	s.log.WithFields(logrus.Fields{
		"date":  st.Date,
		"items": len(st.Items),
	}).Debug("Monthly statement computed")
	return &st, nil
}

// activeEntries reads the adjustment source and parses it. A read failure
// aborts the whole computation; a malformed record is skipped.
func (s *Service) activeEntries(ctx context.Context) ([]cashflow.Entry, error) {
	adjs, err := s.store.ListActiveAdjustments(ctx)
	if err != nil {
		s.log.Errorf("Failed to read adjustments: %v", err)
		return nil, fmt.Errorf("%w: %w", models.ErrDataUnavailable, err)
	}

	entries, rejected := cashflow.ParseAdjustments(adjs)
	for _, r := range rejected {
		metrics.MalformedAdjustments.Inc()
		s.log.WithField("adjustment_id", r.AdjustmentID).Warnf("Skipping adjustment: %v", r.Err)
	}
	return entries, nil
}

// ListAdjustments returns the active adjustments with rendered notes
func (s *Service) ListAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	adjs, err := s.store.ListActiveAdjustments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurrent adjustments: %w: %w", models.ErrDataUnavailable, err)
	}
	for i := range adjs {
		adjs[i].NotesHTML = s.renderNotes(adjs[i].Notes)
	}
	return adjs, nil
}

// CreateAdjustment validates and stores a new recurring adjustment
func (s *Service) CreateAdjustment(ctx context.Context, adj *models.Adjustment) error {
	if adj.AccountID == 0 {
		return fmt.Errorf("%w: account_id is required", models.ErrInvalidInput)
	}
	if _, err := s.store.FindAccountByID(ctx, adj.AccountID); err != nil {
		return err
	}
	if adj.ValueType == "" {
		adj.ValueType = "amount"
	}
	if adj.Frequency == "" {
		adj.Frequency = string(cashflow.Monthly)
	}
	adj.Frequency = string(cashflow.ParseFrequency(adj.Frequency))
	if adj.Status == "" {
		adj.Status = models.StatusActive
	}
	if adj.EnteredOn == "" {
		adj.EnteredOn = cashflow.DayKey(s.Today())
	}

	entry, err := cashflow.ParseAdjustment(*adj)
	if err != nil {
		return fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}
	if entry.EndedOn != nil && entry.EndedOn.Before(entry.StartedOn) {
		return fmt.Errorf("%w: ended_on precedes started_on", models.ErrInvalidInput)
	}
	// Store the normalized forms
	adj.Value = entry.Value.String()
	adj.StartedOn = cashflow.DayKey(entry.StartedOn)

	if err := s.store.CreateAdjustment(ctx, adj); err != nil {
		return err
	}
	adj.NotesHTML = s.renderNotes(adj.Notes)
	s.log.Infof("Adjustment created for account %d: %s %s", adj.AccountID, adj.Value, adj.Frequency)
	return nil
}

// ListAccounts returns every account with rendered notes
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w: %w", models.ErrDataUnavailable, err)
	}
	for i := range accounts {
		accounts[i].NotesHTML = s.renderNotes(accounts[i].Notes)
	}
	return accounts, nil
}

// GetAccount returns one account
func (s *Service) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.store.FindAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account.NotesHTML = s.renderNotes(account.Notes)
	return account, nil
}

// CreateAccount stores a new account, encrypting its password
func (s *Service) CreateAccount(ctx context.Context, account *models.Account) error {
	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if account.Password != "" {
		encrypted, err := utils.Encrypt(account.Password, s.encryptionKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}
		account.Password = encrypted
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return err
	}
	account.Password = ""
	account.NotesHTML = s.renderNotes(account.Notes)
	s.log.Infof("Account created: %s", account.Name)
	return nil
}

func (s *Service) renderNotes(src string) string {
	out, err := utils.RenderNotes(src)
	if err != nil {
		s.log.Warnf("Failed to render notes: %v", err)
		return ""
	}
	return out
}
