// This file implements the test case operations of the SQLite backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

const (
	selectTestCase = `SELECT id, title, description, priority, status, created_at, updated_at, notes
FROM test_cases WHERE id = ?`

	selectSummaries = `SELECT id, title, status, priority, created_at, updated_at FROM test_cases`
)

// Create validates tc, applies defaults and inserts it. created_at and
// updated_at receive the same instant.
func (b *Backend) Create(ctx context.Context, tc types.NewTestCase) (int64, error) {
	if err := tc.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UnixMilli()
	var id int64
	err := b.withTx(ctx, "create", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO test_cases (title, description, priority, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			tc.Title, nullString(tc.Description), string(tc.Priority), string(types.DefaultStatus), now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting test case: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading inserted id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	b.logger.Debug("created test case", "id", id, "priority", tc.Priority)
	return id, nil
}

// List returns summaries in ascending id order, narrowed by the filter.
func (b *Backend) List(ctx context.Context, filter types.Filter) ([]types.Summary, error) {
	var conditions []string
	var args []any

	if filter.Status != nil {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w %q", types.ErrInvalidStatus, *filter.Status)
		}
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		if !filter.Priority.Valid() {
			return nil, fmt.Errorf("%w %q", types.ErrInvalidPriority, *filter.Priority)
		}
		conditions = append(conditions, "priority = ?")
		args = append(args, string(*filter.Priority))
	}

	query := selectSummaries
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"

	summaries := []types.Summary{}
	err := b.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("querying test cases: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				s                  types.Summary
				status, priority   string
				createdAt, updated int64
			)
			if err := rows.Scan(&s.ID, &s.Title, &status, &priority, &createdAt, &updated); err != nil {
				return fmt.Errorf("scanning test case: %w", err)
			}
			s.Status = types.Status(status)
			s.Priority = types.Priority(priority)
			s.CreatedAt = fromMillis(createdAt)
			s.UpdatedAt = fromMillis(updated)
			summaries = append(summaries, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug("listed test cases", "rows", len(summaries))
	return summaries, nil
}

// Get returns the full record for id.
func (b *Backend) Get(ctx context.Context, id int64) (*types.TestCase, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	var tc *types.TestCase
	err := b.withConn(ctx, func(conn *sql.Conn) error {
		var err error
		tc, err = scanTestCase(conn.QueryRowContext(ctx, selectTestCase, id))
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting test case %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tc, nil
}

// Update writes only the fields present in u. An empty description or notes
// is stored as NULL. updated_at is left to the schema trigger.
func (b *Backend) Update(ctx context.Context, id int64, u types.Update) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	if u.IsEmpty() {
		return types.ErrNothingToUpdate
	}
	if err := u.Validate(); err != nil {
		return err
	}

	var sets []string
	var args []any
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(u.Description))
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*u.Priority))
	}
	if u.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*u.Status))
	}
	if u.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, nullString(u.Notes))
	}
	args = append(args, id)

	query := "UPDATE test_cases SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	err := b.withTx(ctx, "update", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("updating test case %d: %w", id, err)
		}
		return requireOneRow(res)
	})
	if err != nil {
		return err
	}

	b.logger.Debug("updated test case", "id", id, "fields", len(sets))
	return nil
}

// Delete removes the record for id.
func (b *Backend) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	err := b.withTx(ctx, "delete", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM test_cases WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting test case %d: %w", id, err)
		}
		return requireOneRow(res)
	})
	if err != nil {
		return err
	}

	b.logger.Debug("deleted test case", "id", id)
	return nil
}

// requireOneRow maps a statement that touched no rows to ErrNotFound.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// scanTestCase hydrates a row selected with selectTestCase.
func scanTestCase(row *sql.Row) (*types.TestCase, error) {
	var (
		tc                   types.TestCase
		description, notes   sql.NullString
		priority, status     string
		createdAt, updatedAt int64
	)
	err := row.Scan(&tc.ID, &tc.Title, &description, &priority, &status, &createdAt, &updatedAt, &notes)
	if err != nil {
		return nil, err
	}
	tc.Description = stringPtr(description)
	tc.Notes = stringPtr(notes)
	tc.Priority = types.Priority(priority)
	tc.Status = types.Status(status)
	tc.CreatedAt = fromMillis(createdAt)
	tc.UpdatedAt = fromMillis(updatedAt)
	return &tc, nil
}

// nullString maps nil and "" to SQL NULL.
func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
