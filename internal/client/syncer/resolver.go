package syncer

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/repositories/records"
)

type recordPtr[T any] interface {
	*T
	models.Record
}

// Index maps external ids to persisted records of one kind. It is built
// once per reconciliation pass.
type Index[T any] struct {
	byExternalID map[string]*T
}

func BuildIndex[T any, P recordPtr[T]](recs []*T) *Index[T] {
	ix := &Index[T]{byExternalID: make(map[string]*T, len(recs))}
	for _, rec := range recs {
		if ext := P(rec).GetExternalID(); ext != "" {
			ix.byExternalID[ext] = rec
		}
	}
	return ix
}

// Resolve returns the local record carrying externalID, if any.
func (ix *Index[T]) Resolve(externalID string) (*T, bool) {
	if externalID == "" {
		return nil, false
	}
	rec, ok := ix.byExternalID[externalID]
	return rec, ok
}

func (ix *Index[T]) Len() int { return len(ix.byExternalID) }

func (ix *Index[T]) add(externalID string, rec *T) {
	ix.byExternalID[externalID] = rec
}

// EnsureExternalID returns the record's external id, assigning a new UUID
// when it has none. fresh reports whether an id was assigned.
func EnsureExternalID(rec models.Record) (id string, fresh bool) {
	if id = rec.GetExternalID(); id != "" {
		return id, false
	}
	id = uuid.NewString()
	rec.SetExternalID(id)
	return id, true
}

// parentRefs maps external ids of parent kinds to local ids.
type parentRefs map[models.Kind]map[string]int64

// local returns the local id of the parent, or nil when externalID is empty
// or not persisted yet.
func (r parentRefs) local(kind models.Kind, externalID string) *int64 {
	if externalID == "" {
		return nil
	}
	id, ok := r[kind][externalID]
	if !ok {
		return nil
	}
	return &id
}

func loadParentRefs(ctx context.Context, store *records.Store, kinds []models.Kind) (parentRefs, error) {
	refs := make(parentRefs, len(kinds))
	for _, k := range kinds {
		var (
			m   map[string]int64
			err error
		)
		switch k {
		case models.KindProject:
			m, err = externalIDs(ctx, store.Projects)
		case models.KindEvent:
			m, err = externalIDs(ctx, store.Events)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		refs[k] = m
	}
	return refs, nil
}

func externalIDs[T any, P recordPtr[T]](ctx context.Context, repo records.Repository[T]) (map[string]int64, error) {
	recs, err := repo.Fetch(ctx, records.Synced())
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, len(recs))
	for _, rec := range recs {
		p := P(rec)
		m[p.GetExternalID()] = p.LocalID()
	}
	return m, nil
}

// ensureParentExternalID returns the external id of a local parent. A parent
// without one gets it assigned and saved here, so the child never travels with
// a dangling reference. It returns "" when id is nil or the parent is gone.
func ensureParentExternalID[T any, P recordPtr[T]](ctx context.Context, repo records.Repository[T], id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	rec, err := repo.Get(ctx, *id)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	ext, fresh := EnsureExternalID(P(rec))
	if fresh {
		if err := repo.Save(ctx, rec); err != nil {
			return "", err
		}
	}
	return ext, nil
}

// storedExternalID returns the external id currently persisted for the
// record with local id, or "" when it has none or is gone.
func storedExternalID[T any, P recordPtr[T]](ctx context.Context, repo records.Repository[T], id int64) (string, error) {
	rec, err := repo.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return P(rec).GetExternalID(), nil
}
