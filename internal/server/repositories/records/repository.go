// Package records stores synced entities of every kind in one PostgreSQL
// table, keyed by owner, kind and external id.
package records

import (
	"context"

	"github.com/dmitrijs2005/planner/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, ownerID, kind string) ([]*models.Record, error)
	Get(ctx context.Context, ownerID, kind, externalID string) (*models.Record, error)
	Upsert(ctx context.Context, rec *models.Record) error
	Delete(ctx context.Context, ownerID, kind, externalID string) error

	// DeleteByRef deletes the records of kind whose payload field ref
	// equals externalID, and returns how many were removed.
	DeleteByRef(ctx context.Context, ownerID, kind, ref, externalID string) (int64, error)
	// ClearRef removes the payload field ref from the records of kind that
	// point at externalID, and returns how many were changed.
	ClearRef(ctx context.Context, ownerID, kind, ref, externalID string) (int64, error)
	// SetField sets a string field of one record's payload.
	SetField(ctx context.Context, ownerID, kind, externalID, field, value string) error
}
