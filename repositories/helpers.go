package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx so repository methods can
// run inside a caller's transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type baseRepository struct {
	db *sql.DB
}

func (r baseRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

type violationKind int

const (
	violationNone violationKind = iota
	violationUnique
	violationForeignKey
)

// classifyConstraintError inspects a driver error and reports which kind of
// constraint failed. For unique violations the constraint is returned in the
// postgres naming form "<table>_<column>_key" for both drivers.
func classifyConstraintError(err error) (violationKind, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return violationUnique, pqErr.Constraint
		case "23503": // foreign_key_violation
			return violationForeignKey, pqErr.Constraint
		}
		return violationNone, ""
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return violationUnique, sqliteConstraintName(liteErr.Error())
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return violationForeignKey, ""
		}
	}
	return violationNone, ""
}

// sqliteConstraintName turns "UNIQUE constraint failed: judges.email" into
// "judges_email_key".
func sqliteConstraintName(msg string) string {
	const marker = "constraint failed: "
	idx := strings.LastIndex(msg, marker)
	if idx < 0 {
		return ""
	}
	target := msg[idx+len(marker):]
	if end := strings.IndexAny(target, " ,("); end >= 0 {
		target = target[:end]
	}
	return strings.ReplaceAll(target, ".", "_") + "_key"
}
