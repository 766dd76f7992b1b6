package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"bookstore/internal/common"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is satisfied by *pgxpool.Pool and by pgxmock pools.
type Database interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// whereClause renders equality predicates joined by AND, numbering
// placeholders from start. Columns must already be allow-listed.
func whereClause(filters []common.FieldValue, start int) (string, []interface{}) {
	if len(filters) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))
	for i, f := range filters {
		parts = append(parts, fmt.Sprintf("%s = $%d", f.Column, start+i))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// setClause renders "col = $n, ..." for allow-listed assignments.
func setClause(assignments []common.FieldValue, start int) (string, []interface{}) {
	parts := make([]string, 0, len(assignments))
	args := make([]interface{}, 0, len(assignments))
	for i, a := range assignments {
		parts = append(parts, fmt.Sprintf("%s = $%d", a.Column, start+i))
		args = append(args, a.Value)
	}
	return strings.Join(parts, ", "), args
}

// rollback aborts tx and reports the stage that failed. The rollback runs on a
// context detached from cancellation so a timed-out request still releases the
// connection.
func rollback(ctx context.Context, tx pgx.Tx, stage string, cause error) error {
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Printf("ERROR: rollback after %s failed: %v", stage, err)
	}
	return &common.StageError{Stage: stage, Err: cause}
}

// listPage runs selectSQL and countSQL with the same equality predicates and
// returns one page plus the total number of matching rows.
func listPage[T any](ctx context.Context, db Database, selectSQL, countSQL, orderBy string,
	filters []common.FieldValue, limit, offset int, scan func(rowScanner) (T, error)) ([]T, int64, error) {
	where, args := whereClause(filters, 1)
	n := len(args)
	query := selectSQL + where + fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, n+1, n+2)

	pageArgs := make([]interface{}, 0, n+2)
	pageArgs = append(pageArgs, args...)
	rows, err := db.Query(ctx, query, append(pageArgs, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := db.QueryRow(ctx, countSQL+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
