package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/client/syncer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	planner := newFakePlanner()
	planner.records[models.KindProject] = []models.Record{
		&models.Project{Identity: models.Identity{ID: 1, ExternalID: "p-1"}, Title: "Alpha", Status: models.StatusActive},
		&models.Project{Identity: models.Identity{ID: 2}, Title: "Beta", Status: models.StatusInactive},
	}
	a, out := newTestApp(t, &fakeAuth{}, planner)

	require.NoError(t, a.List(context.Background(), models.KindProject))
	s := out.String()
	assert.Contains(t, s, "ID  SYNCED  TITLE  DETAILS")
	assert.Regexp(t, `1\s+yes\s+Alpha\s+active`, s)
	assert.Regexp(t, `2\s+no\s+Beta\s+inactive`, s)

	out.Reset()
	require.NoError(t, a.List(context.Background(), models.KindNote))
	assert.Equal(t, "No notes.\n", out.String())
}

func TestShow(t *testing.T) {
	planner := newFakePlanner()
	lat, lon := 56.95, 24.1
	planner.records[models.KindEvent] = []models.Record{&models.Event{
		Identity:  models.Identity{ID: 3},
		Title:     "Meetup",
		Latitude:  &lat,
		Longitude: &lon,
		ProjectID: ptr(int64(1)),
	}}
	a, out := newTestApp(t, &fakeAuth{}, planner)

	require.NoError(t, a.Show(context.Background(), models.KindEvent, 3))
	s := out.String()
	assert.Regexp(t, `External ID:\s+-`, s)
	assert.Regexp(t, `Title:\s+Meetup`, s)
	assert.Regexp(t, `Coordinates:\s+56\.950000, 24\.100000`, s)
	assert.Regexp(t, `Project:\s+1`, s)

	assert.ErrorIs(t, a.Show(context.Background(), models.KindEvent, 4), errNotFound)
}

func TestSync_PrintsStages(t *testing.T) {
	planner := newFakePlanner()
	planner.report = syncer.Report{Stages: []syncer.StageResult{
		{Kind: models.KindProject, Fetched: 3, Inserted: 1, Updated: 2},
		{Kind: models.KindEvent, Err: errors.New("server exploded")},
		{Kind: models.KindTask, Fetched: 1, Skipped: 1},
	}}
	a, out := newTestApp(t, &fakeAuth{}, planner)

	require.NoError(t, a.Sync(context.Background()))
	s := out.String()
	assert.Regexp(t, `projects\s+3\s+1\s+2\s+0\s+ok`, s)
	assert.Regexp(t, `events\s+0\s+0\s+0\s+0\s+server exploded`, s)
	assert.Contains(t, s, "1 stage(s) failed")
}

func TestSync_AbortedAndBusy(t *testing.T) {
	planner := newFakePlanner()
	planner.report = syncer.Report{Err: errors.New("unauthorized")}
	a, _ := newTestApp(t, &fakeAuth{}, planner)
	assert.ErrorContains(t, a.Sync(context.Background()), "sync stopped: unauthorized")

	planner.syncBusy = true
	assert.ErrorIs(t, a.Sync(context.Background()), ErrSyncInProgress)
}

func TestPush(t *testing.T) {
	planner := newFakePlanner()
	planner.records[models.KindTask] = []models.Record{&models.Task{}, &models.Task{}}
	a, out := newTestApp(t, &fakeAuth{}, planner)

	require.NoError(t, a.Push(context.Background(), []models.Kind{models.KindProject, models.KindTask}))
	assert.Equal(t, []models.Kind{models.KindProject, models.KindTask}, planner.pushed)
	assert.Contains(t, out.String(), "tasks: 2/2 uploaded, 0 failed")

	planner.pushErr = errors.New("offline")
	assert.ErrorContains(t, a.Push(context.Background(), []models.Kind{models.KindNote}), "push notes: offline")
}
