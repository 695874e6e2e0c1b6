package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planner/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates an account on
// the server. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login authenticates against the server and stores the session. A
// successful login is followed by a full sync.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	c, err := a.auth.Login(ctx, userName, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		return err
	}

	a.userName = c.Username
	a.setMode(ctx, ModeOnline)
	a.log.Info(ctx, "logged in", "user", c.Username)

	return a.Sync(ctx)
}

// Logout forgets the stored session. Local records are kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
