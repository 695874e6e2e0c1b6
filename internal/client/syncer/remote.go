package syncer

import (
	"context"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/dto"
)

// Remote is the subset of client.HTTPClient the engine uses.
type Remote interface {
	List(ctx context.Context, token string, kind models.Kind, out any) error
	Upsert(ctx context.Context, token string, kind models.Kind, payload any) error
	Delete(ctx context.Context, token string, kind models.Kind, externalID string) error
	DocumentContentURL(ctx context.Context, token, externalID string) (dto.ContentURL, error)
}
