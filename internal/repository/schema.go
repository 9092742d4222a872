package repository

import (
	"context"
	"fmt"
	"regexp"
)

// Dialect selects driver specific SQL
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $n placeholders for drivers that bind positionally with ?.
// Queries must use each placeholder once, in order.
func (d Dialect) rebind(query string) string {
	if d == SQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

func (d Dialect) migrations() []string {
	idColumn := "BIGSERIAL PRIMARY KEY"
	valueColumn := "NUMERIC(14, 2)"
	if d == SQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
		valueColumn = "TEXT"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS accounts (
			id       %s,
			name     TEXT NOT NULL,
			email    TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL DEFAULT '',
			website  TEXT,
			notes    TEXT,
			status   TEXT
		)`, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS account_recurrent_adjustments (
			id         %s,
			account_id BIGINT NOT NULL REFERENCES accounts(id),
			value_type TEXT NOT NULL DEFAULT 'amount',
			value      %s NOT NULL,
			frecuency  TEXT NOT NULL DEFAULT 'MONTHLY',
			started_on DATE NOT NULL,
			entered_on DATE,
			ended_on   DATE,
			label      TEXT,
			notes      TEXT,
			status     TEXT
		)`, idColumn, valueColumn),
		`CREATE INDEX IF NOT EXISTS idx_adjustments_account ON account_recurrent_adjustments(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_adjustments_status ON account_recurrent_adjustments(status)`,
	}
}

// Migrate creates the schema if it does not exist yet
func (r *Repository) Migrate(ctx context.Context) error {
	for _, stmt := range r.dialect.migrations() {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}
