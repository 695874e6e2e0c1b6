package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/server/models"
)

var columns = []string{"owner_id", "kind", "external_id", "payload", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(columns).
		AddRow("o-1", "projects", "p-1", []byte(`{"external_id":"p-1"}`), ts).
		AddRow("o-1", "projects", "p-2", []byte(`{"external_id":"p-2"}`), ts)
	mock.ExpectQuery(`(?s)^SELECT .* FROM records WHERE owner_id = \$1 AND kind = \$2 ORDER BY updated_at, external_id$`).
		WithArgs("o-1", "projects").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "o-1", "projects")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-2", got[1].ExternalID)
	assert.JSONEq(t, `{"external_id":"p-1"}`, string(got[0].Payload))
}

func TestList_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WithArgs("o-1", "notes").WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background(), "o-1", "notes")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "o-1", "notes")
	assert.ErrorContains(t, err, "db error: boom")
}

func TestGet(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^SELECT .* FROM records WHERE owner_id = \$1 AND kind = \$2 AND external_id = \$3$`

	mock.ExpectQuery(q).WithArgs("o-1", "documents", "d-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("o-1", "documents", "d-1", []byte(`{}`), time.Now()))
	got, err := repo.Get(context.Background(), "o-1", "documents", "d-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", got.ExternalID)

	mock.ExpectQuery(q).WithArgs("o-1", "documents", "d-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(context.Background(), "o-1", "documents", "d-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ts := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT INTO records .* ON CONFLICT \(owner_id, kind, external_id\) DO UPDATE SET payload = EXCLUDED\.payload, updated_at = now\(\) RETURNING updated_at$`).
		WithArgs("o-1", "tasks", "t-1", []byte(`{"external_id":"t-1"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(ts))

	rec := &models.Record{OwnerID: "o-1", Kind: "tasks", ExternalID: "t-1", Payload: json.RawMessage(`{"external_id":"t-1"}`)}
	require.NoError(t, repo.Upsert(context.Background(), rec))
	assert.Equal(t, ts, rec.UpdatedAt)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^DELETE FROM records WHERE owner_id = \$1 AND kind = \$2 AND external_id = \$3$`

	mock.ExpectExec(q).WithArgs("o-1", "events", "e-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "o-1", "events", "e-1"))

	mock.ExpectExec(q).WithArgs("o-1", "events", "e-2").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "o-1", "events", "e-2"), common.ErrorNotFound)

	mock.ExpectExec(q).WithArgs("o-1", "events", "e-3").WillReturnError(errors.New("down"))
	assert.ErrorContains(t, repo.Delete(context.Background(), "o-1", "events", "e-3"), "db error: down")
}

func TestDeleteByRef(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE FROM records WHERE owner_id = \$1 AND kind = \$2 AND payload ->> \$3::text = \$4$`).
		WithArgs("o-1", "tasks", "project_external_id", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByRef(context.Background(), "o-1", "tasks", "project_external_id", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestClearRef(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE records SET payload = payload - \$3::text, updated_at = now\(\) WHERE owner_id = \$1 AND kind = \$2 AND payload ->> \$3::text = \$4$`).
		WithArgs("o-1", "events", "project_external_id", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.ClearRef(context.Background(), "o-1", "events", "project_external_id", "p-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestSetField(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	q := `(?s)^UPDATE records SET payload = jsonb_set\(payload, ARRAY\[\$4::text\], to_jsonb\(\$5::text\)\)`

	mock.ExpectExec(q).WithArgs("o-1", "documents", "d-1", "content_key", "k").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetField(context.Background(), "o-1", "documents", "d-1", "content_key", "k"))

	mock.ExpectExec(q).WithArgs("o-1", "documents", "d-9", "content_key", "k").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.SetField(context.Background(), "o-1", "documents", "d-9", "content_key", "k"), common.ErrorNotFound)
}
