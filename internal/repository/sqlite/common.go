package sqlite

import (
	"context"
	"database/sql"

	"toggl-cli/internal/errors"
)

// HandleDatabaseError converts database errors to structured app errors
func HandleDatabaseError(operation string, err error) error {
	return errors.NewDatabaseError(operation, err)
}

// HandleNoRowsError handles sql.ErrNoRows errors consistently
func HandleNoRowsError(err error, entityType string, id string) error {
	if err == sql.ErrNoRows {
		return errors.NewNotFoundError(entityType, id)
	}
	return err
}

// QuerySingle executes a query that returns a single row and scans it
func QuerySingle[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Scanner) (*T, error), entityType string, id string, args ...interface{}) (*T, error) {
	row := db.QueryRowContext(ctx, query, args...)
	result, err := scanFunc(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError(entityType, id)
		}
		return nil, HandleDatabaseError("scan "+entityType, err)
	}
	return result, nil
}

// QueryMultiple executes a query that returns multiple rows and scans them
func QueryMultiple[T any](ctx context.Context, db *sql.DB, query string, scanFunc func(Rows) ([]*T, error), entityType string, args ...interface{}) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("query "+entityType, err)
	}
	defer rows.Close()

	results, err := scanFunc(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan "+entityType, err)
	}

	return results, nil
}

// replaceAll clears a table and inserts fresh rows inside one transaction,
// so readers never observe a half-synced snapshot.
func replaceAll(ctx context.Context, db *sql.DB, table string, insertQuery string, rows [][]interface{}) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		tx.Rollback()
		return HandleDatabaseError("clear "+table, err)
	}

	for _, args := range rows {
		if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
			tx.Rollback()
			return HandleDatabaseError("insert into "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+table, err)
	}
	return nil
}
