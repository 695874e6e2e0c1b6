package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dbx"
	"github.com/dmitrijs2005/planner/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, ownerID, kind string) ([]*models.Record, error) {
	query :=
		`SELECT owner_id, kind, external_id, payload, updated_at FROM records
		 WHERE owner_id = $1 AND kind = $2
		 ORDER BY updated_at, external_id`

	rows, err := r.db.QueryContext(ctx, query, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, ownerID, kind, externalID string) (*models.Record, error) {
	query :=
		`SELECT owner_id, kind, external_id, payload, updated_at FROM records
		 WHERE owner_id = $1 AND kind = $2 AND external_id = $3`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, ownerID, kind, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Record) error {
	query :=
		`INSERT INTO records (owner_id, kind, external_id, payload)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (owner_id, kind, external_id)
		 DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
		 RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, rec.OwnerID, rec.Kind, rec.ExternalID, []byte(rec.Payload)).
		Scan(&rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, kind, externalID string) error {
	query :=
		`DELETE FROM records
		 WHERE owner_id = $1 AND kind = $2 AND external_id = $3`

	n, err := r.exec(ctx, query, ownerID, kind, externalID)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByRef(ctx context.Context, ownerID, kind, ref, externalID string) (int64, error) {
	query :=
		`DELETE FROM records
		 WHERE owner_id = $1 AND kind = $2 AND payload ->> $3::text = $4`

	return r.exec(ctx, query, ownerID, kind, ref, externalID)
}

func (r *PostgresRepository) ClearRef(ctx context.Context, ownerID, kind, ref, externalID string) (int64, error) {
	query :=
		`UPDATE records SET payload = payload - $3::text, updated_at = now()
		 WHERE owner_id = $1 AND kind = $2 AND payload ->> $3::text = $4`

	return r.exec(ctx, query, ownerID, kind, ref, externalID)
}

func (r *PostgresRepository) SetField(ctx context.Context, ownerID, kind, externalID, field, value string) error {
	query :=
		`UPDATE records SET payload = jsonb_set(payload, ARRAY[$4::text], to_jsonb($5::text)), updated_at = now()
		 WHERE owner_id = $1 AND kind = $2 AND external_id = $3`

	n, err := r.exec(ctx, query, ownerID, kind, externalID, field, value)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	rec := &models.Record{}
	var payload []byte
	if err := row.Scan(&rec.OwnerID, &rec.Kind, &rec.ExternalID, &payload, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.Payload = payload
	return rec, nil
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
