// Package client talks to the planner server and bootstraps the local
// database.
//
// HTTPClient speaks the REST surface: GET/POST /{collection} and
// DELETE /{collection}/{external_id} for the five entity collections, plus
// the auth, health and document content endpoints. The bearer token is an
// argument of every authenticated call; the client holds no session state.
//
// Failures are mapped onto sentinel errors that callers match with
// errors.Is: ErrUnauthorized (401), ErrNotFound (404), ErrConflict (409),
// ErrUnavailable (transport failure) and ErrDecode (unreadable body). Other
// statuses surface as *StatusError.
//
// InitDatabase opens the SQLite file with foreign keys enabled and applies
// the embedded goose migrations.
package client
