package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/planner/internal/client/config"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/services"
	"github.com/dmitrijs2005/planner/internal/client/syncer"
	"github.com/dmitrijs2005/planner/internal/logging"
)

type fakeAuth struct {
	services.AuthService

	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	current    *credentials.Credentials
	logoutErr  error
	logoutHits int
	pingErr    error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (credentials.Credentials, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return credentials.Credentials{}, f.loginErr
	}
	c := credentials.Credentials{Token: "tok", Owner: "owner-1", Username: user}
	f.current = &c
	return c, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutHits++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.current = nil
	return nil
}

func (f *fakeAuth) Current(context.Context) (credentials.Credentials, error) {
	if f.current == nil {
		return credentials.Credentials{}, credentials.ErrNoCredentials
	}
	return *f.current, nil
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

type fakePlanner struct {
	services.PlannerService

	records map[models.Kind][]models.Record
	nextID  int64

	created []models.Record
	updated []models.Record
	deleted []int64

	report   syncer.Report
	syncBusy bool
	syncs    int

	pushed  []models.Kind
	pushErr error
}

func newFakePlanner() *fakePlanner {
	return &fakePlanner{records: map[models.Kind][]models.Record{}}
}

func (f *fakePlanner) List(_ context.Context, kind models.Kind) ([]models.Record, error) {
	return f.records[kind], nil
}

func (f *fakePlanner) Get(_ context.Context, kind models.Kind, id int64) (models.Record, error) {
	for _, r := range f.records[kind] {
		if r.LocalID() == id {
			return r, nil
		}
	}
	return nil, errNotFound
}

func (f *fakePlanner) Create(_ context.Context, rec models.Record) (*syncer.Pending, error) {
	f.nextID++
	rec.SetLocalID(f.nextID)
	f.records[rec.Kind()] = append(f.records[rec.Kind()], rec)
	f.created = append(f.created, rec)
	return nil, nil
}

func (f *fakePlanner) Update(_ context.Context, rec models.Record) (*syncer.Pending, error) {
	f.updated = append(f.updated, rec)
	return nil, nil
}

func (f *fakePlanner) Delete(_ context.Context, kind models.Kind, id int64) (*syncer.Pending, error) {
	if _, err := f.Get(context.Background(), kind, id); err != nil {
		return nil, err
	}
	f.deleted = append(f.deleted, id)
	return nil, nil
}

func (f *fakePlanner) Sync(context.Context) (syncer.Report, bool) {
	if f.syncBusy {
		return syncer.Report{}, false
	}
	f.syncs++
	return f.report, true
}

func (f *fakePlanner) PushAll(_ context.Context, kind models.Kind) (syncer.BulkResult, error) {
	if f.pushErr != nil {
		return syncer.BulkResult{}, f.pushErr
	}
	f.pushed = append(f.pushed, kind)
	n := len(f.records[kind])
	return syncer.BulkResult{Kind: kind, Total: n, Uploaded: n}, nil
}

type fakeBackground struct {
	calls chan time.Duration
}

func (f *fakeBackground) Run(ctx context.Context, interval time.Duration, _ func() bool) {
	if f.calls != nil {
		f.calls <- interval
	}
	<-ctx.Done()
}

var errNotFound = errors.New("not found")

// newTestApp builds an App reading the given input lines and writing to a
// buffer. getSimpleText is left intact so forms read from input.
func newTestApp(t *testing.T, auth *fakeAuth, planner *fakePlanner, input ...string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := NewApp(cfg, auth, planner, &fakeBackground{}, logging.NewNop(), strings.NewReader(strings.Join(input, "\n")+"\n"), out)
	return a, out
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
