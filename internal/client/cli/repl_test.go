package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return f.err
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error { f.loggedIn = true; return f.record("login") }
func (f *fakeExec) Logout(context.Context) error { f.loggedIn = false; return f.record("logout") }
func (f *fakeExec) Sync(context.Context) error { return f.record("sync") }
func (f *fakeExec) List(_ context.Context, k models.Kind) error { return f.record("list %s", k) }
func (f *fakeExec) Add(_ context.Context, k models.Kind) error { return f.record("add %s", k) }

func (f *fakeExec) Push(_ context.Context, kinds []models.Kind) error {
	return f.record("push %v", kinds)
}

func (f *fakeExec) Show(_ context.Context, k models.Kind, id int64) error {
	return f.record("show %s %d", k, id)
}

func (f *fakeExec) Edit(_ context.Context, k models.Kind, id int64) error {
	return f.record("edit %s %d", k, id)
}

func (f *fakeExec) Delete(_ context.Context, k models.Kind, id int64) error {
	return f.record("delete %s %d", k, id)
}

func runLines(t *testing.T, exec *fakeExec, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "(status)" }, rdr(strings.Join(lines, "\n")+"\n"), &out)
	return out.String()
}

func TestRunREPL_Dispatch(t *testing.T) {
	exec := &fakeExec{}
	out := runLines(t, exec,
		"help",
		"login",
		"list projects",
		"l task",
		"add note",
		"show event 3",
		"edit Task 4",
		"delete document 5",
		"rm project 6",
		"sync",
		"push",
		"push tasks",
		"logout",
		"",
		"exit",
		"sync",
	)

	assert.Equal(t, []string{
		"login",
		"list projects",
		"list tasks",
		"add notes",
		"show events 3",
		"edit tasks 4",
		"delete documents 5",
		"delete projects 6",
		"sync",
		"push [projects events tasks notes documents]",
		"push [tasks]",
		"logout",
	}, exec.calls)
	assert.Contains(t, out, "planner (status)> ")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageAndErrors(t *testing.T) {
	exec := &fakeExec{err: errors.New("boom")}
	out := runLines(t, exec,
		"list",
		"show project",
		"show project abc",
		"add gadgets",
		"foobar",
		"sync",
	)

	assert.Equal(t, []string{"sync"}, exec.calls)
	assert.Contains(t, out, "usage: list <kind>")
	assert.Contains(t, out, "usage: show <kind> <id>")
	assert.Contains(t, out, `invalid id "abc"`)
	assert.Contains(t, out, "unknown entity kind")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "error: boom")
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, exec, func() string { return "" }, rdr("sync\n"), &out)
	assert.Empty(t, exec.calls)
}
