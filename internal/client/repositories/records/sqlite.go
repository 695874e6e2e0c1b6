package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dbx"
)

// table describes how an entity type maps onto its SQLite table.
// columns excludes the id column; values and targets follow columns order.
type table[T any] struct {
	name     string
	columns  []string
	identity func(*T) *models.Identity
	values   func(*T) []any
	targets  func(*T) []any
}

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository[T any] struct {
	db dbx.DBTX
	t  table[T]
}

func newSQLiteRepository[T any](db dbx.DBTX, t table[T]) *SQLiteRepository[T] {
	return &SQLiteRepository[T]{db: db, t: t}
}

func (r *SQLiteRepository[T]) Insert(ctx context.Context, rec *T) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(r.t.columns)), ", ")
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		r.t.name, strings.Join(r.t.columns, ", "), placeholders)

	res, err := r.db.ExecContext(ctx, query, r.t.values(rec)...)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.t.name, mapConstraintError(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read %s id: %w", r.t.name, err)
	}
	r.t.identity(rec).ID = id
	return nil
}

func (r *SQLiteRepository[T]) Save(ctx context.Context, rec *T) error {
	sets := make([]string, len(r.t.columns))
	for i, c := range r.t.columns {
		sets[i] = c + " = ?"
	}
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, r.t.name, strings.Join(sets, ", "))

	args := append(r.t.values(rec), r.t.identity(rec).ID)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.t.name, mapConstraintError(err))
	}
	return expectOneRow(res, r.t.name)
}

func (r *SQLiteRepository[T]) Delete(ctx context.Context, rec *T) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.t.name), r.t.identity(rec).ID)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.t.name, err)
	}
	return expectOneRow(res, r.t.name)
}

func (r *SQLiteRepository[T]) Fetch(ctx context.Context, p Predicate) ([]*T, error) {
	where, args := p.sql()
	query := fmt.Sprintf(`SELECT id, %s FROM %s%s ORDER BY id`, strings.Join(r.t.columns, ", "), r.t.name, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", r.t.name, err)
	}
	defer rows.Close()

	var result []*T
	for rows.Next() {
		rec := new(T)
		dest := append([]any{&r.t.identity(rec).ID}, r.t.targets(rec)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.t.name, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", r.t.name, err)
	}
	return result, nil
}

func (r *SQLiteRepository[T]) Get(ctx context.Context, id int64) (*T, error) {
	found, err := r.Fetch(ctx, ByID(id))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%s %d: %w", r.t.name, id, common.ErrorNotFound)
	}
	return found[0], nil
}

func expectOneRow(res sql.Result, table string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", table, common.ErrorNotFound)
	}
	return nil
}

func mapConstraintError(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errors.Join(common.ErrorAlreadyExists, err)
	}
	return err
}

// nullText binds "" as NULL.
func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// textOrEmpty scans a nullable TEXT column into a plain string.
type textOrEmpty struct{ dst *string }

func (t textOrEmpty) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t.dst = ""
	case string:
		*t.dst = v
	case []byte:
		*t.dst = string(v)
	default:
		return fmt.Errorf("unexpected text value %T", src)
	}
	return nil
}
