package syncer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/planner/internal/client/client"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/repositories/records"
	"github.com/dmitrijs2005/planner/internal/filex"
	"github.com/dmitrijs2005/planner/internal/logging"
	"github.com/dmitrijs2005/planner/internal/netx"
)

const DefaultUploadConcurrency = 4

type UploaderOptions struct {
	// Concurrency bounds the parallel requests of UploadAll.
	Concurrency int
	// HTTPClient is used for presigned content uploads.
	HTTPClient *http.Client
}

type Uploader struct {
	db      *sql.DB
	remote  Remote
	creds   credentials.Provider
	log     logging.Logger
	opts    UploaderOptions
	pending dispatcher

	// ids serializes external id assignment, which spans a read and a save.
	ids sync.Mutex
}

func NewUploader(db *sql.DB, remote Remote, creds credentials.Provider, log logging.Logger, opts UploaderOptions) *Uploader {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultUploadConcurrency
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &Uploader{db: db, remote: remote, creds: creds, log: log, opts: opts}
}

// UploadOne sends rec to the server. A record without an external id gets
// one first, and the id is persisted so later saves reuse it. Parent
// references are sent as the parents' external ids; a parent that has none
// yet is assigned one on the spot, and its own upload reuses it.
func (u *Uploader) UploadOne(ctx context.Context, rec models.Record) error {
	creds, err := u.creds.Credentials(ctx)
	if err != nil {
		return err
	}

	store := records.NewStore(u.db)
	ext, payload, err := u.prepare(ctx, store, rec, creds.Owner)
	if err != nil {
		return err
	}
	if err := u.remote.Upsert(ctx, creds.Token, rec.Kind(), payload); err != nil {
		return fmt.Errorf("upload %s %s: %w", rec.Kind(), ext, err)
	}
	u.log.Debug(ctx, "record uploaded", "kind", rec.Kind(), "external_id", ext)

	if doc, ok := rec.(*models.Document); ok {
		u.uploadContent(ctx, creds.Token, doc)
	}
	return nil
}

// DeleteOne tells the server that rec was deleted locally. Records that
// never reached the server are skipped without any request.
func (u *Uploader) DeleteOne(ctx context.Context, rec models.Record) error {
	ext := rec.GetExternalID()
	if ext == "" {
		return nil
	}

	creds, err := u.creds.Credentials(ctx)
	if err != nil {
		return err
	}

	err = u.remote.Delete(ctx, creds.Token, rec.Kind(), ext)
	if errors.Is(err, client.ErrNotFound) {
		u.log.Debug(ctx, "record already absent on server", "kind", rec.Kind(), "external_id", ext)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", rec.Kind(), ext, err)
	}
	return nil
}

// BulkResult summarizes an UploadAll call.
type BulkResult struct {
	Kind     models.Kind
	Total    int
	Uploaded int
	Failed   int
}

// prepare assigns the external id and owner of rec, persisting them when
// they changed, and builds the payload. A record whose id was already handed
// out while uploading one of its children takes that id.
func (u *Uploader) prepare(ctx context.Context, store *records.Store, rec models.Record, owner string) (string, any, error) {
	u.ids.Lock()
	defer u.ids.Unlock()

	if rec.GetExternalID() == "" && rec.LocalID() != 0 {
		ext, err := storedID(ctx, store, rec)
		if err != nil {
			return "", nil, err
		}
		if ext != "" {
			rec.SetExternalID(ext)
		}
	}

	ext, fresh := EnsureExternalID(rec)
	dirty := fresh || rec.GetOwner() != owner
	rec.SetOwner(owner)
	if dirty && rec.LocalID() != 0 {
		if err := save(ctx, store, rec); err != nil {
			return "", nil, err
		}
	}

	payload, err := u.payload(ctx, store, rec)
	if err != nil {
		return "", nil, err
	}
	return ext, payload, nil
}

// UploadAll uploads every local record of kind. Individual failures are
// logged and counted; missing or rejected credentials stop the whole batch.
func (u *Uploader) UploadAll(ctx context.Context, kind models.Kind) (BulkResult, error) {
	res := BulkResult{Kind: kind}

	if _, err := u.creds.Credentials(ctx); err != nil {
		return res, err
	}

	recs, err := fetchAll(ctx, records.NewStore(u.db), kind)
	if err != nil {
		return res, err
	}
	res.Total = len(recs)

	var uploaded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.opts.Concurrency)
	for _, rec := range recs {
		g.Go(func() error {
			err := u.UploadOne(gctx, rec)
			switch {
			case err == nil:
				uploaded.Add(1)
				return nil
			case abortsPass(gctx, err):
				failed.Add(1)
				return err
			default:
				failed.Add(1)
				u.log.Error(gctx, "bulk upload item failed", "kind", kind, "id", rec.LocalID(), "error", err)
				return nil
			}
		})
	}
	err = g.Wait()

	res.Uploaded = int(uploaded.Load())
	res.Failed = int(failed.Load())
	u.log.Info(ctx, "bulk upload finished", "kind", kind, "total", res.Total, "uploaded", res.Uploaded, "failed", res.Failed)
	return res, err
}

// UploadAsync runs UploadOne in the background. rec must not be modified
// until the returned Pending is done.
func (u *Uploader) UploadAsync(ctx context.Context, rec models.Record) *Pending {
	return u.Dispatch(ctx, "upload", func(ctx context.Context) error { return u.UploadOne(ctx, rec) },
		"kind", rec.Kind(), "id", rec.LocalID())
}

// DeleteAsync runs DeleteOne in the background.
func (u *Uploader) DeleteAsync(ctx context.Context, rec models.Record) *Pending {
	return u.Dispatch(ctx, "delete", func(ctx context.Context) error { return u.DeleteOne(ctx, rec) },
		"kind", rec.Kind(), "id", rec.LocalID())
}

// Dispatch runs fn in its own goroutine, detached from the cancellation of
// ctx. A failure is logged here once, with kv attached; callers holding the
// Pending need not log it again.
func (u *Uploader) Dispatch(ctx context.Context, op string, fn func(context.Context) error, kv ...any) *Pending {
	return u.pending.dispatch(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil {
			u.log.Warn(ctx, "background "+op+" failed", append(kv, "error", err)...)
		}
		return err
	})
}

// Wait blocks until every dispatched operation has finished.
func (u *Uploader) Wait() { u.pending.wait() }

func (u *Uploader) payload(ctx context.Context, store *records.Store, rec models.Record) (any, error) {
	switch r := rec.(type) {
	case *models.Project:
		return projectDTO(r), nil
	case *models.Event:
		project, err := ensureParentExternalID(ctx, store.Projects, r.ProjectID)
		if err != nil {
			return nil, err
		}
		return eventDTO(r, project), nil
	case *models.Task:
		project, err := ensureParentExternalID(ctx, store.Projects, r.ProjectID)
		if err != nil {
			return nil, err
		}
		event, err := ensureParentExternalID(ctx, store.Events, r.EventID)
		if err != nil {
			return nil, err
		}
		return taskDTO(r, project, event), nil
	case *models.Note:
		project, err := ensureParentExternalID(ctx, store.Projects, r.ProjectID)
		if err != nil {
			return nil, err
		}
		event, err := ensureParentExternalID(ctx, store.Events, r.EventID)
		if err != nil {
			return nil, err
		}
		return noteDTO(r, project, event), nil
	case *models.Document:
		event, err := ensureParentExternalID(ctx, store.Events, r.EventID)
		if err != nil {
			return nil, err
		}
		return documentDTO(r, event), nil
	default:
		return nil, fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
}

// uploadContent pushes the document's local file through a presigned URL.
// It is best effort: failures are logged only.
func (u *Uploader) uploadContent(ctx context.Context, token string, doc *models.Document) {
	if doc.FilePath == "" || !filex.FileExists(doc.FilePath) {
		return
	}
	target, err := u.remote.DocumentContentURL(ctx, token, doc.ExternalID)
	if err != nil {
		u.log.Warn(ctx, "document content url unavailable", "external_id", doc.ExternalID, "error", err)
		return
	}
	if err := netx.UploadFile(ctx, u.opts.HTTPClient, target.URL, doc.FilePath); err != nil {
		u.log.Warn(ctx, "document content upload failed", "external_id", doc.ExternalID, "error", err)
		return
	}
	u.log.Debug(ctx, "document content uploaded", "external_id", doc.ExternalID, "key", target.Key)

	// Metadata uploads send the key back as content_key.
	u.ids.Lock()
	defer u.ids.Unlock()
	doc.ContentKey = target.Key
	if doc.ID != 0 {
		if err := records.NewStore(u.db).Documents.Save(ctx, doc); err != nil {
			u.log.Warn(ctx, "document content key not saved", "external_id", doc.ExternalID, "error", err)
		}
	}
}

func save(ctx context.Context, store *records.Store, rec models.Record) error {
	switch r := rec.(type) {
	case *models.Project:
		return store.Projects.Save(ctx, r)
	case *models.Event:
		return store.Events.Save(ctx, r)
	case *models.Task:
		return store.Tasks.Save(ctx, r)
	case *models.Note:
		return store.Notes.Save(ctx, r)
	case *models.Document:
		return store.Documents.Save(ctx, r)
	default:
		return fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
}

func storedID(ctx context.Context, store *records.Store, rec models.Record) (string, error) {
	switch rec.(type) {
	case *models.Project:
		return storedExternalID(ctx, store.Projects, rec.LocalID())
	case *models.Event:
		return storedExternalID(ctx, store.Events, rec.LocalID())
	case *models.Task:
		return storedExternalID(ctx, store.Tasks, rec.LocalID())
	case *models.Note:
		return storedExternalID(ctx, store.Notes, rec.LocalID())
	case *models.Document:
		return storedExternalID(ctx, store.Documents, rec.LocalID())
	default:
		return "", fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
}

func fetchAll(ctx context.Context, store *records.Store, kind models.Kind) ([]models.Record, error) {
	switch kind {
	case models.KindProject:
		recs, err := store.Projects.Fetch(ctx, records.All())
		return asRecords(recs), err
	case models.KindEvent:
		recs, err := store.Events.Fetch(ctx, records.All())
		return asRecords(recs), err
	case models.KindTask:
		recs, err := store.Tasks.Fetch(ctx, records.All())
		return asRecords(recs), err
	case models.KindNote:
		recs, err := store.Notes.Fetch(ctx, records.All())
		return asRecords(recs), err
	case models.KindDocument:
		recs, err := store.Documents.Fetch(ctx, records.All())
		return asRecords(recs), err
	default:
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
	}
}

func asRecords[T any, P recordPtr[T]](recs []*T) []models.Record {
	out := make([]models.Record, len(recs))
	for i, rec := range recs {
		out[i] = P(rec)
	}
	return out
}
