package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/planner/internal/client/models"
)

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Push(ctx context.Context, kinds []models.Kind) error
	List(ctx context.Context, kind models.Kind) error
	Show(ctx context.Context, kind models.Kind, id int64) error
	Add(ctx context.Context, kind models.Kind) error
	Edit(ctx context.Context, kind models.Kind, id int64) error
	Delete(ctx context.Context, kind models.Kind, id int64) error
}

var errUsage = errors.New("usage")

const helpText = `Commands:
  list <kind>             list local records
  show <kind> <id>        show one record
  add <kind>              create a record
  edit <kind> <id>        edit a record
  delete <kind> <id>      delete a record (and its dependents)
  sync                    download everything from the server
  push [kind]             upload every local record of kind (or all kinds); alias pushall
  register | login | logout
  exit | quit
Kinds: project, event, task, note, document`

// runREPL reads commands line by line from r until EOF, "exit" or "quit",
// or until ctx is done. Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for ctx.Err() == nil {
		fmt.Fprintf(w, "planner %s> ", statusFn())
		line, err := readLine(r)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd, args := parts[0], parts[1:]
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args, w); err != nil {
			if errors.Is(err, errUsage) {
				fmt.Fprintln(w, err.Error())
				continue
			}
			fmt.Fprintln(w, "error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, w io.Writer) error {
	switch cmd {
	case "help":
		fmt.Fprintln(w, helpText)
		if !a.isLoggedIn(ctx) {
			fmt.Fprintln(w, "You are not logged in; records stay local until you log in.")
		}
		return nil

	case "register":
		return a.Register(ctx)

	case "login":
		return a.Login(ctx)

	case "logout":
		return a.Logout(ctx)

	case "sync":
		return a.Sync(ctx)

	case "push", "pushall":
		if len(args) == 0 {
			return a.Push(ctx, models.SyncOrder)
		}
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		return a.Push(ctx, []models.Kind{kind})

	case "l", "list":
		kind, err := kindArg(cmd, args)
		if err != nil {
			return err
		}
		return a.List(ctx, kind)

	case "add":
		kind, err := kindArg(cmd, args)
		if err != nil {
			return err
		}
		return a.Add(ctx, kind)

	case "show", "edit", "delete", "rm":
		kind, id, err := kindIDArgs(cmd, args)
		if err != nil {
			return err
		}
		switch cmd {
		case "show":
			return a.Show(ctx, kind, id)
		case "edit":
			return a.Edit(ctx, kind, id)
		default:
			return a.Delete(ctx, kind, id)
		}
	}

	fmt.Fprintln(w, "Unknown command:", cmd)
	return nil
}

func kindArg(cmd string, args []string) (models.Kind, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: %s <kind>", errUsage, cmd)
	}
	return models.ParseKind(args[0])
}

func kindIDArgs(cmd string, args []string) (models.Kind, int64, error) {
	if len(args) < 2 {
		return "", 0, fmt.Errorf("%w: %s <kind> <id>", errUsage, cmd)
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id %q", args[1])
	}
	return kind, id, nil
}
