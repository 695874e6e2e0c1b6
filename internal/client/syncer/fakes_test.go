package syncer

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/planner/internal/client/client"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/repositories/records"
	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/logging"
)

// fakeRemote keeps collections as JSON documents keyed by external id, so
// payloads go through the same encoding as over the wire.
type fakeRemote struct {
	mu      sync.Mutex
	docs    map[models.Kind]map[string]json.RawMessage
	order   map[models.Kind][]string
	listErr map[models.Kind]error
	lists   map[models.Kind]int
	upserts []upsertCall
	deletes []string
	calls   int

	upsertErr error

	// When gate is set, List signals entered and then waits for gate.
	gate    chan struct{}
	entered chan struct{}

	contentURL string
}

type upsertCall struct {
	Kind       models.Kind
	ExternalID string
	Body       json.RawMessage
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		docs:    map[models.Kind]map[string]json.RawMessage{},
		order:   map[models.Kind][]string{},
		listErr: map[models.Kind]error{},
		lists:   map[models.Kind]int{},
	}
}

func (f *fakeRemote) put(kind models.Kind, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var head struct {
		ExternalID string `json:"external_id"`
	}
	_ = json.Unmarshal(b, &head)

	if f.docs[kind] == nil {
		f.docs[kind] = map[string]json.RawMessage{}
	}
	if _, ok := f.docs[kind][head.ExternalID]; !ok {
		f.order[kind] = append(f.order[kind], head.ExternalID)
	}
	f.docs[kind][head.ExternalID] = b
}

func (f *fakeRemote) List(ctx context.Context, token string, kind models.Kind, out any) error {
	f.mu.Lock()
	f.calls++
	f.lists[kind]++
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[kind]; err != nil {
		return err
	}
	items := make([]json.RawMessage, 0, len(f.order[kind]))
	for _, ext := range f.order[kind] {
		items = append(items, f.docs[kind][ext])
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (f *fakeRemote) Upsert(ctx context.Context, token string, kind models.Kind, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var head struct {
		ExternalID string `json:"external_id"`
	}
	_ = json.Unmarshal(b, &head)
	f.upserts = append(f.upserts, upsertCall{Kind: kind, ExternalID: head.ExternalID, Body: b})
	f.put(kind, json.RawMessage(b))
	return nil
}

func (f *fakeRemote) Delete(ctx context.Context, token string, kind models.Kind, externalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.docs[kind][externalID]; !ok {
		return client.ErrNotFound
	}
	delete(f.docs[kind], externalID)
	f.deletes = append(f.deletes, string(kind)+"/"+externalID)
	return nil
}

func (f *fakeRemote) DocumentContentURL(ctx context.Context, token, externalID string) (dto.ContentURL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.contentURL == "" {
		return dto.ContentURL{}, client.ErrNotFound
	}
	return dto.ContentURL{URL: f.contentURL, Key: "owner-1/" + externalID}, nil
}

func (f *fakeRemote) upsertCalls() []upsertCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]upsertCall(nil), f.upserts...)
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type staticCreds struct {
	c   credentials.Credentials
	err error
}

func (s staticCreds) Credentials(context.Context) (credentials.Credentials, error) {
	return s.c, s.err
}

var testCreds = staticCreds{c: credentials.Credentials{Token: "tok", Owner: "owner-1"}}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type env struct {
	db       *sql.DB
	remote   *fakeRemote
	store    *records.Store
	rec      *Reconciler
	uploader *Uploader
	orch     *Orchestrator
}

func newEnv(t *testing.T, remote *fakeRemote) *env {
	t.Helper()
	db := setupDB(t)
	log := logging.NewNop()
	rec := NewReconciler(db, remote, testCreds, log)
	return &env{
		db:       db,
		remote:   remote,
		store:    records.NewStore(db),
		rec:      rec,
		uploader: NewUploader(db, remote, testCreds, log, UploaderOptions{Concurrency: 2}),
		orch:     NewOrchestrator(rec, log),
	}
}

func ptr[T any](v T) *T { return &v }

type panickingCreds struct{}

func (panickingCreds) Credentials(context.Context) (credentials.Credentials, error) {
	panic("credential store exploded")
}
