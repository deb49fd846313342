package store

import (
	"database/sql"
	"fmt"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so the point- and
// status-mutating store methods can run inside an engine transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction, rolling back if fn returns an error.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
