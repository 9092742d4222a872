package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
)

// Repository provides database operations
type Repository struct {
	db      *sql.DB
	dialect Dialect
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{db: db, dialect: dialect}
}

// ListAccounts returns every account, newest first
func (r *Repository) ListAccounts(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, name, email, username, website, notes, status
		FROM accounts
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// FindAccountByID retrieves an account by id
func (r *Repository) FindAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	query := r.dialect.rebind(`
		SELECT id, name, email, username, website, notes, status
		FROM accounts
		WHERE id = $1`)
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := r.dialect.rebind(`
		INSERT INTO accounts (name, email, username, password, website, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.Username, account.Password,
		nullString(account.Website), nullString(account.Notes), nullString(account.Status),
	).Scan(&account.ID)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ListActiveAdjustments returns the adjustments whose status is missing or
// ACTIVE, joined with their account name, newest first
func (r *Repository) ListActiveAdjustments(ctx context.Context) ([]models.Adjustment, error) {
	query := r.dialect.rebind(`
		SELECT
			ara.id, ara.account_id, ara.value_type, ara.value, ara.frecuency,
			ara.started_on, ara.entered_on, ara.ended_on,
			ara.label, ara.notes, ara.status,
			a.name
		FROM account_recurrent_adjustments ara
		JOIN accounts a ON a.id = ara.account_id
		WHERE ara.status IS NULL OR ara.status = $1
		ORDER BY ara.id DESC`)
	rows, err := r.db.QueryContext(ctx, query, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	defer rows.Close()

	adjustments := []models.Adjustment{}
	for rows.Next() {
		var (
			adj                          models.Adjustment
			startedOn, enteredOn, endedOn sql.NullString
			label, notes, status          sql.NullString
		)
		err := rows.Scan(
			&adj.ID, &adj.AccountID, &adj.ValueType, &adj.Value, &adj.Frequency,
			&startedOn, &enteredOn, &endedOn,
			&label, &notes, &status,
			&adj.AccountName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adjustment: %w", err)
		}
		adj.StartedOn = dateOnly(startedOn)
		adj.EnteredOn = dateOnly(enteredOn)
		adj.EndedOn = dateOnly(endedOn)
		adj.Label = label.String
		adj.Notes = notes.String
		adj.Status = status.String
		adjustments = append(adjustments, adj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}
	return adjustments, nil
}

// CreateAdjustment creates a new recurring adjustment in the database
func (r *Repository) CreateAdjustment(ctx context.Context, adj *models.Adjustment) error {
	query := r.dialect.rebind(`
		INSERT INTO account_recurrent_adjustments
			(account_id, value_type, value, frecuency, started_on, entered_on, ended_on, label, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`)
	err := r.db.QueryRowContext(ctx, query,
		adj.AccountID, adj.ValueType, adj.Value, adj.Frequency, adj.StartedOn,
		nullString(adj.EnteredOn), nullString(adj.EndedOn),
		nullString(adj.Label), nullString(adj.Notes), nullString(adj.Status),
	).Scan(&adj.ID)
	if err != nil {
		return fmt.Errorf("failed to create adjustment: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var (
		account                models.Account
		website, notes, status sql.NullString
	)
	if err := row.Scan(&account.ID, &account.Name, &account.Email, &account.Username, &website, &notes, &status); err != nil {
		return nil, err
	}
	account.Website = website.String
	account.Notes = notes.String
	account.Status = status.String
	return &account, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// dateOnly keeps the YYYY-MM-DD part; drivers hand DATE columns back either
// as text or as a timestamp rendered in RFC 3339.
func dateOnly(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	if len(ns.String) > 10 {
		return ns.String[:10]
	}
	return ns.String
}
