package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/planner/internal/client/client"
	"github.com/dmitrijs2005/planner/internal/client/credentials"
	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
)

type fakeAuthClient struct {
	AuthClient

	regUser, regPass string
	regErr           error

	loginUser, loginPass string
	session              dto.Session
	loginErr             error

	pingErr error
}

func (f *fakeAuthClient) Register(_ context.Context, u, p string) error {
	f.regUser, f.regPass = u, p
	return f.regErr
}

func (f *fakeAuthClient) Login(_ context.Context, u, p string) (dto.Session, error) {
	f.loginUser, f.loginPass = u, p
	return f.session, f.loginErr
}

func (f *fakeAuthClient) Ping(context.Context) error { return f.pingErr }

type fakeCredStore struct {
	saved    *credentials.Credentials
	saveErr  error
	cleared  bool
	clearErr error
}

func (f *fakeCredStore) Credentials(context.Context) (credentials.Credentials, error) {
	if f.saved == nil {
		return credentials.Credentials{}, credentials.ErrNoCredentials
	}
	return *f.saved, nil
}

func (f *fakeCredStore) Save(_ context.Context, c credentials.Credentials) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = &c
	return nil
}

func (f *fakeCredStore) Clear(context.Context) error {
	f.cleared = true
	f.saved = nil
	return f.clearErr
}

func TestRegister_PassesTrimmedUsername(t *testing.T) {
	c := &fakeAuthClient{}
	s := NewAuthService(c, &fakeCredStore{})

	require.NoError(t, s.Register(context.Background(), "  alice ", []byte("secret")))
	assert.Equal(t, "alice", c.regUser)
	assert.Equal(t, "secret", c.regPass)
}

func TestRegister_Validation(t *testing.T) {
	s := NewAuthService(&fakeAuthClient{}, &fakeCredStore{})

	assert.ErrorIs(t, s.Register(context.Background(), "", []byte("x")), common.ErrorValidation)
	assert.ErrorIs(t, s.Register(context.Background(), "bob", nil), common.ErrorValidation)
}

func TestLogin_StoresSession(t *testing.T) {
	c := &fakeAuthClient{session: dto.Session{AccessToken: "jwt", OwnerID: "u-1"}}
	store := &fakeCredStore{}
	s := NewAuthService(c, store)
	ctx := context.Background()

	got, err := s.Login(ctx, "alice", []byte("secret"))
	require.NoError(t, err)
	want := credentials.Credentials{Token: "jwt", Owner: "u-1", Username: "alice"}
	assert.Equal(t, want, got)
	require.NotNil(t, store.saved)
	assert.Equal(t, want, *store.saved)

	cur, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, cur)
}

func TestLogin_RejectedKeepsStoreUntouched(t *testing.T) {
	store := &fakeCredStore{}
	s := NewAuthService(&fakeAuthClient{loginErr: client.ErrUnauthorized}, store)

	_, err := s.Login(context.Background(), "alice", []byte("wrong"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, store.saved)
}

func TestLogin_SaveErrorPropagates(t *testing.T) {
	boom := errors.New("disk full")
	c := &fakeAuthClient{session: dto.Session{AccessToken: "jwt", OwnerID: "u-1"}}
	s := NewAuthService(c, &fakeCredStore{saveErr: boom})

	_, err := s.Login(context.Background(), "alice", []byte("secret"))
	assert.ErrorIs(t, err, boom)
}

func TestLogout_ClearsCredentials(t *testing.T) {
	store := &fakeCredStore{saved: &credentials.Credentials{Token: "t", Owner: "o"}}
	s := NewAuthService(&fakeAuthClient{}, store)

	require.NoError(t, s.Logout(context.Background()))
	assert.True(t, store.cleared)

	_, err := s.Current(context.Background())
	assert.True(t, IsSignedOut(err))
}

func TestPing(t *testing.T) {
	s := NewAuthService(&fakeAuthClient{pingErr: client.ErrUnavailable}, &fakeCredStore{})
	assert.ErrorIs(t, s.Ping(context.Background()), client.ErrUnavailable)
}
