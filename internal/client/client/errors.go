package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found on server")
	ErrConflict     = errors.New("already exists on server")
	ErrDecode       = errors.New("malformed server response")
)

// StatusError is returned for non-2xx responses without a dedicated sentinel.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server status %d", e.Code)
}
