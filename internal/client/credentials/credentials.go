// Package credentials keeps the session of the signed-in account in the
// metadata table: the bearer token sent to the server and the owner id
// stamped on every synced record.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planner/internal/client/repositories/metadata"
)

var ErrNoCredentials = errors.New("not signed in")

const (
	keyToken    = "access_token"
	keyOwner    = "owner_id"
	keyUsername = "username"
)

// Credentials are treated as opaque strings.
type Credentials struct {
	Token    string
	Owner    string
	Username string
}

// Provider is what the sync engine needs: the current credentials, read
// fresh on every call.
type Provider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Credentials returns ErrNoCredentials unless both a token and an owner id
// are stored.
func (s *Store) Credentials(ctx context.Context) (Credentials, error) {
	token, err := s.get(ctx, keyToken)
	if err != nil {
		return Credentials{}, err
	}
	owner, err := s.get(ctx, keyOwner)
	if err != nil {
		return Credentials{}, err
	}
	if token == "" || owner == "" {
		return Credentials{}, ErrNoCredentials
	}
	username, err := s.get(ctx, keyUsername)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Token: token, Owner: owner, Username: username}, nil
}

func (s *Store) Save(ctx context.Context, c Credentials) error {
	if strings.TrimSpace(c.Token) == "" || strings.TrimSpace(c.Owner) == "" {
		return fmt.Errorf("save credentials: %w", ErrNoCredentials)
	}
	for k, v := range map[string]string{keyToken: c.Token, keyOwner: c.Owner, keyUsername: c.Username} {
		if err := s.repo.Set(ctx, k, []byte(v)); err != nil {
			return fmt.Errorf("save credentials: %w", err)
		}
	}
	return nil
}

// Clear signs the account out. Local records are kept.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, keyToken, keyOwner, keyUsername); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}
	return string(v), nil
}
