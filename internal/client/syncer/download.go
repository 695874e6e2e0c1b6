package syncer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/planner/internal/client/client"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/repositories/records"
	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dbx"
	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/logging"
)

// StageResult summarizes one download stage.
type StageResult struct {
	Kind     models.Kind
	Fetched  int
	Inserted int
	Updated  int
	Skipped  int
	Err      error
}

// Report summarizes a full download pass.
type Report struct {
	Started  time.Time
	Finished time.Time
	Stages   []StageResult
	// Err is set when the pass stopped before running every stage.
	Err error
}

// Failed returns the stages that did not commit.
func (r Report) Failed() []StageResult {
	var out []StageResult
	for _, s := range r.Stages {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

type Reconciler struct {
	db     *sql.DB
	remote Remote
	creds  credentials.Provider
	log    logging.Logger
}

func NewReconciler(db *sql.DB, remote Remote, creds credentials.Provider, log logging.Logger) *Reconciler {
	return &Reconciler{db: db, remote: remote, creds: creds, log: log}
}

// DownloadAll runs every stage in dependency order. A failed stage is
// logged and the pass continues with the next one, except when the
// credentials are missing or rejected, which ends the pass. Credentials are
// read before each stage, so a logout takes effect at the next stage.
func (r *Reconciler) DownloadAll(ctx context.Context) Report {
	rep := Report{Started: time.Now()}

	for _, kind := range models.SyncOrder {
		creds, err := r.creds.Credentials(ctx)
		if err != nil {
			r.log.Warn(ctx, "sync stopped", "kind", kind, "error", err)
			rep.Err = err
			break
		}

		res := r.download(ctx, kind, creds)
		rep.Stages = append(rep.Stages, res)
		if res.Err == nil {
			r.log.Info(ctx, "stage committed", "kind", kind,
				"fetched", res.Fetched, "inserted", res.Inserted, "updated", res.Updated, "skipped", res.Skipped)
			continue
		}

		r.log.Error(ctx, "stage failed", "kind", kind, "error", res.Err)
		if abortsPass(ctx, res.Err) {
			rep.Err = res.Err
			break
		}
	}
	rep.Finished = time.Now()
	return rep
}

// Download runs a single stage.
func (r *Reconciler) Download(ctx context.Context, kind models.Kind) (StageResult, error) {
	creds, err := r.creds.Credentials(ctx)
	if err != nil {
		return StageResult{Kind: kind, Err: err}, err
	}
	res := r.download(ctx, kind, creds)
	return res, res.Err
}

func (r *Reconciler) download(ctx context.Context, kind models.Kind, creds credentials.Credentials) StageResult {
	switch kind {
	case models.KindProject:
		return runStage(ctx, r, creds, stage[models.Project, dto.Project]{
			kind:  kind,
			repo:  func(s *records.Store) records.Repository[models.Project] { return s.Projects },
			extID: func(d dto.Project) string { return d.ExternalID },
			apply: applyProject,
		})
	case models.KindEvent:
		return runStage(ctx, r, creds, stage[models.Event, dto.Event]{
			kind:    kind,
			repo:    func(s *records.Store) records.Repository[models.Event] { return s.Events },
			parents: []models.Kind{models.KindProject},
			extID:   func(d dto.Event) string { return d.ExternalID },
			apply:   applyEvent,
		})
	case models.KindTask:
		return runStage(ctx, r, creds, stage[models.Task, dto.Task]{
			kind:    kind,
			repo:    func(s *records.Store) records.Repository[models.Task] { return s.Tasks },
			parents: []models.Kind{models.KindProject, models.KindEvent},
			extID:   func(d dto.Task) string { return d.ExternalID },
			apply:   applyTask,
		})
	case models.KindNote:
		return runStage(ctx, r, creds, stage[models.Note, dto.Note]{
			kind:    kind,
			repo:    func(s *records.Store) records.Repository[models.Note] { return s.Notes },
			parents: []models.Kind{models.KindProject, models.KindEvent},
			extID:   func(d dto.Note) string { return d.ExternalID },
			apply:   applyNote,
		})
	case models.KindDocument:
		return runStage(ctx, r, creds, stage[models.Document, dto.Document]{
			kind:    kind,
			repo:    func(s *records.Store) records.Repository[models.Document] { return s.Documents },
			parents: []models.Kind{models.KindEvent},
			extID:   func(d dto.Document) string { return d.ExternalID },
			apply:   applyDocument,
		})
	default:
		return StageResult{Kind: kind, Err: fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)}
	}
}

// stage describes how remote payloads of type D land in local records of
// type T.
type stage[T any, D any] struct {
	kind    models.Kind
	repo    func(*records.Store) records.Repository[T]
	parents []models.Kind
	extID   func(D) string
	apply   func(rec *T, d D, refs parentRefs)
}

func runStage[T any, D any, P recordPtr[T]](ctx context.Context, r *Reconciler, creds credentials.Credentials, st stage[T, D]) StageResult {
	res := StageResult{Kind: st.kind}
	log := r.log.With("kind", st.kind)

	var remote []D
	if err := r.remote.List(ctx, creds.Token, st.kind, &remote); err != nil {
		res.Err = fmt.Errorf("fetch %s: %w", st.kind, err)
		return res
	}
	res.Fetched = len(remote)

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := records.NewStore(tx)
		repo := st.repo(store)

		existing, err := repo.Fetch(ctx, records.Synced())
		if err != nil {
			return err
		}
		ix := BuildIndex[T, P](existing)

		refs, err := loadParentRefs(ctx, store, st.parents)
		if err != nil {
			return err
		}

		for _, d := range remote {
			ext := st.extID(d)
			if ext == "" {
				log.Warn(ctx, "remote record without external id skipped")
				res.Skipped++
				continue
			}

			rec, found := ix.Resolve(ext)
			if !found {
				rec = new(T)
				P(rec).SetExternalID(ext)
			}
			st.apply(rec, d, refs)
			P(rec).SetOwner(creds.Owner)

			if found {
				if err := repo.Save(ctx, rec); err != nil {
					return fmt.Errorf("save %s: %w", ext, err)
				}
				res.Updated++
				continue
			}
			if err := repo.Insert(ctx, rec); err != nil {
				return fmt.Errorf("insert %s: %w", ext, err)
			}
			ix.add(ext, rec)
			res.Inserted++
		}
		return nil
	})
	if err != nil {
		res.Err = fmt.Errorf("persist %s: %w", st.kind, err)
		res.Inserted, res.Updated = 0, 0
	}
	return res
}

func abortsPass(ctx context.Context, err error) bool {
	return client.IsAuthError(err) ||
		errors.Is(err, credentials.ErrNoCredentials) ||
		ctx.Err() != nil
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
