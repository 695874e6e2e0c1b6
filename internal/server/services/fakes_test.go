package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dbx"
	"github.com/dmitrijs2005/planner/internal/server/models"
	"github.com/dmitrijs2005/planner/internal/server/repositories/records"
	"github.com/dmitrijs2005/planner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/planner/internal/server/repositories/users"
)

type fakeUsersRepo struct {
	users.Repository
	byName    map[string]*models.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*models.User{}
	}
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.byName[u.UserName] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, name string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type call struct {
	op, kind, ref, ext string
}

type fakeRecordsRepo struct {
	records.Repository
	list     []*models.Record
	get      *models.Record
	getErr   error
	upserted []*models.Record
	calls    []call
	failOn   string
	setKey   string
}

func (f *fakeRecordsRepo) fail(op string) error {
	if f.failOn == op {
		return common.ErrorInternal
	}
	return nil
}

func (f *fakeRecordsRepo) List(ctx context.Context, owner, kind string) ([]*models.Record, error) {
	return f.list, f.fail("list")
}

func (f *fakeRecordsRepo) Get(ctx context.Context, owner, kind, ext string) (*models.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.get, nil
}

func (f *fakeRecordsRepo) Upsert(ctx context.Context, rec *models.Record) error {
	if err := f.fail("upsert"); err != nil {
		return err
	}
	f.upserted = append(f.upserted, rec)
	return nil
}

func (f *fakeRecordsRepo) Delete(ctx context.Context, owner, kind, ext string) error {
	f.calls = append(f.calls, call{op: "delete", kind: kind, ext: ext})
	if f.failOn == "delete" {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeRecordsRepo) DeleteByRef(ctx context.Context, owner, kind, ref, ext string) (int64, error) {
	f.calls = append(f.calls, call{op: "deleteByRef", kind: kind, ref: ref, ext: ext})
	return 1, f.fail("deleteByRef")
}

func (f *fakeRecordsRepo) ClearRef(ctx context.Context, owner, kind, ref, ext string) (int64, error) {
	f.calls = append(f.calls, call{op: "clearRef", kind: kind, ref: ref, ext: ext})
	return 1, f.fail("clearRef")
}

func (f *fakeRecordsRepo) SetField(ctx context.Context, owner, kind, ext, field, value string) error {
	if err := f.fail("setField"); err != nil {
		return err
	}
	f.setKey = value
	return nil
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	u *fakeUsersRepo
	r *fakeRecordsRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository     { return m.u }
func (m *fakeRepoManager) Records(db dbx.DBTX) records.Repository { return m.r }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}
