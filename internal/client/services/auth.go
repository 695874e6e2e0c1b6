// Package services contains the application services behind the planner CLI.
// This file defines the authentication service: register, login against the
// server, logout, and the liveness probe used by the online watcher.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
)

// AuthService defines authentication operations for the CLI.
//
// Login stores the returned session in the credential store so every later
// sync or upload picks it up; Logout removes it. Local records survive a
// logout.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (credentials.Credentials, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (credentials.Credentials, error)
	Ping(ctx context.Context) error
}

// AuthClient is the server side of authentication. *client.HTTPClient
// implements it.
type AuthClient interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (dto.Session, error)
	Ping(ctx context.Context) error
}

type CredentialStore interface {
	credentials.Provider
	Save(ctx context.Context, c credentials.Credentials) error
	Clear(ctx context.Context) error
}

type authService struct {
	client AuthClient
	creds  CredentialStore
}

func NewAuthService(client AuthClient, creds CredentialStore) AuthService {
	return &authService{client: client, creds: creds}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}
	return a.client.Register(ctx, username, string(password))
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (credentials.Credentials, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return credentials.Credentials{}, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	session, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return credentials.Credentials{}, fmt.Errorf("login error: %w", err)
	}

	c := credentials.Credentials{Token: session.AccessToken, Owner: session.OwnerID, Username: username}
	if err := a.creds.Save(ctx, c); err != nil {
		return credentials.Credentials{}, err
	}
	return c, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.creds.Clear(ctx)
}

// Current returns the stored session, or credentials.ErrNoCredentials.
func (a *authService) Current(ctx context.Context) (credentials.Credentials, error) {
	return a.creds.Credentials(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// IsSignedOut reports whether err means there is no usable session.
func IsSignedOut(err error) bool {
	return errors.Is(err, credentials.ErrNoCredentials)
}
