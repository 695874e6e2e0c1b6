package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/repositories/records"
	"github.com/dmitrijs2005/planner/internal/client/syncer"
)

// PlannerService is the CRUD surface of the CLI. Every local mutation is
// followed by a background upload (or remote delete) whose *syncer.Pending
// is returned; callers are free to ignore it.
type PlannerService interface {
	List(ctx context.Context, kind models.Kind) ([]models.Record, error)
	Get(ctx context.Context, kind models.Kind, id int64) (models.Record, error)
	Create(ctx context.Context, rec models.Record) (*syncer.Pending, error)
	Update(ctx context.Context, rec models.Record) (*syncer.Pending, error)
	Delete(ctx context.Context, kind models.Kind, id int64) (*syncer.Pending, error)
	Sync(ctx context.Context) (syncer.Report, bool)
	PushAll(ctx context.Context, kind models.Kind) (syncer.BulkResult, error)
}

// Uploader is implemented by *syncer.Uploader.
type Uploader interface {
	UploadAsync(ctx context.Context, rec models.Record) *syncer.Pending
	DeleteAsync(ctx context.Context, rec models.Record) *syncer.Pending
	UploadAll(ctx context.Context, kind models.Kind) (syncer.BulkResult, error)
}

// Syncer is implemented by *syncer.Orchestrator.
type Syncer interface {
	SyncAll(ctx context.Context) (syncer.Report, bool)
}

type plannerService struct {
	store    *records.Store
	uploader Uploader
	syncer   Syncer
}

func NewPlannerService(db *sql.DB, uploader Uploader, orch Syncer) PlannerService {
	return &plannerService{store: records.NewStore(db), uploader: uploader, syncer: orch}
}

func (s *plannerService) List(ctx context.Context, kind models.Kind) ([]models.Record, error) {
	switch kind {
	case models.KindProject:
		return list(ctx, s.store.Projects)
	case models.KindEvent:
		return list(ctx, s.store.Events)
	case models.KindTask:
		return list(ctx, s.store.Tasks)
	case models.KindNote:
		return list(ctx, s.store.Notes)
	case models.KindDocument:
		return list(ctx, s.store.Documents)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
}

func (s *plannerService) Get(ctx context.Context, kind models.Kind, id int64) (models.Record, error) {
	switch kind {
	case models.KindProject:
		return get(ctx, s.store.Projects, id)
	case models.KindEvent:
		return get(ctx, s.store.Events, id)
	case models.KindTask:
		return get(ctx, s.store.Tasks, id)
	case models.KindNote:
		return get(ctx, s.store.Notes, id)
	case models.KindDocument:
		return get(ctx, s.store.Documents, id)
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
}

func (s *plannerService) Create(ctx context.Context, rec models.Record) (*syncer.Pending, error) {
	var err error
	switch r := rec.(type) {
	case *models.Project:
		err = s.store.Projects.Insert(ctx, r)
	case *models.Event:
		err = s.store.Events.Insert(ctx, r)
	case *models.Task:
		err = s.store.Tasks.Insert(ctx, r)
	case *models.Note:
		err = s.store.Notes.Insert(ctx, r)
	case *models.Document:
		err = s.store.Documents.Insert(ctx, r)
	default:
		err = fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", rec.Kind(), err)
	}
	return s.uploader.UploadAsync(ctx, rec), nil
}

func (s *plannerService) Update(ctx context.Context, rec models.Record) (*syncer.Pending, error) {
	var err error
	switch r := rec.(type) {
	case *models.Project:
		err = s.store.Projects.Save(ctx, r)
	case *models.Event:
		err = s.store.Events.Save(ctx, r)
	case *models.Task:
		err = s.store.Tasks.Save(ctx, r)
	case *models.Note:
		err = s.store.Notes.Save(ctx, r)
	case *models.Document:
		err = s.store.Documents.Save(ctx, r)
	default:
		err = fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", rec.Kind(), rec.LocalID(), err)
	}
	return s.uploader.UploadAsync(ctx, rec), nil
}

// Delete removes the record locally, letting the foreign keys cascade, and
// then notifies the server in the background.
func (s *plannerService) Delete(ctx context.Context, kind models.Kind, id int64) (*syncer.Pending, error) {
	rec, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	switch r := rec.(type) {
	case *models.Project:
		err = s.store.Projects.Delete(ctx, r)
	case *models.Event:
		err = s.store.Events.Delete(ctx, r)
	case *models.Task:
		err = s.store.Tasks.Delete(ctx, r)
	case *models.Note:
		err = s.store.Notes.Delete(ctx, r)
	case *models.Document:
		err = s.store.Documents.Delete(ctx, r)
	}
	if err != nil {
		return nil, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return s.uploader.DeleteAsync(ctx, rec), nil
}

func (s *plannerService) Sync(ctx context.Context) (syncer.Report, bool) {
	return s.syncer.SyncAll(ctx)
}

func (s *plannerService) PushAll(ctx context.Context, kind models.Kind) (syncer.BulkResult, error) {
	return s.uploader.UploadAll(ctx, kind)
}

type recordPtr[T any] interface {
	*T
	models.Record
}

func list[T any, P recordPtr[T]](ctx context.Context, repo records.Repository[T]) ([]models.Record, error) {
	recs, err := repo.Fetch(ctx, records.All())
	if err != nil {
		return nil, err
	}
	out := make([]models.Record, len(recs))
	for i, r := range recs {
		out[i] = P(r)
	}
	return out, nil
}

func get[T any, P recordPtr[T]](ctx context.Context, repo records.Repository[T], id int64) (models.Record, error) {
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return P(rec), nil
}
