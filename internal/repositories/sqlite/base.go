// Package sqlite implements the repositories on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"movie-reviews-api/internal/repositories"
)

// baseRepository provides common functionality for all SQLite repositories
type baseRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

func newBaseRepository(db *sql.DB, table string, logger *logrus.Logger) baseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return baseRepository{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// logQuery logs a query with its execution time
func (r *baseRepository) logQuery(operation string, query string, args []interface{}, duration time.Duration, err error) {
	fields := logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"query":     query,
		"args":      args,
		"duration":  duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Query failed")
	} else {
		r.logger.WithFields(fields).Debug("Query executed")
	}
}

// executeQuery executes a query and logs the result
func (r *baseRepository) executeQuery(ctx context.Context, operation, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return rows, nil
}

// executeQueryRow executes a single-row query and logs the result
func (r *baseRepository) executeQueryRow(ctx context.Context, operation, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), nil)
	return row
}

// executeExec executes a non-query statement and logs the result
func (r *baseRepository) executeExec(ctx context.Context, operation, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logQuery(operation, query, args, time.Since(start), err)

	if err != nil {
		return nil, repositories.NewRepositoryError(operation, r.table, "", err)
	}
	return result, nil
}

// exists runs a SELECT 1 probe
func (r *baseRepository) exists(ctx context.Context, operation, where, key string, args ...interface{}) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1", r.table, where)

	var one int
	err := r.executeQueryRow(ctx, operation, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, repositories.NewRepositoryError(operation, r.table, key, err)
	}
	return true, nil
}

// inTransaction runs each statement of a batch in one transaction
func (r *baseRepository) inTransaction(ctx context.Context, operation, query string, total int, args func(i int) []interface{}) error {
	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return repositories.NewRepositoryError(operation, r.table, "", err)
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return repositories.NewRepositoryError(operation, r.table, "", err)
	}
	defer stmt.Close()

	for i := 0; i < total; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			tx.Rollback()
			r.logQuery(operation, query, nil, time.Since(start), err)
			return &repositories.BatchError{Entity: r.table, Total: total, Unprocessed: total, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return repositories.NewRepositoryError(operation, r.table, "", err)
	}

	r.logger.WithFields(logrus.Fields{
		"operation": operation,
		"table":     r.table,
		"items":     total,
		"duration":  time.Since(start),
	}).Debug("Batch committed")
	return nil
}
