package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dto"
)

type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewHTTPClient(httpClient *http.Client, baseURL string) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// HTTP exposes the underlying client, e.g. for presigned uploads.
func (c *HTTPClient) HTTP() *http.Client { return c.httpClient }

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", dto.Credentials{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (dto.Session, error) {
	var out dto.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", "", dto.Credentials{Username: username, Password: password}, &out)
	if err != nil {
		return dto.Session{}, err
	}
	if out.AccessToken == "" || out.OwnerID == "" {
		return dto.Session{}, fmt.Errorf("%w: empty session", ErrDecode)
	}
	return out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out dto.Health
	if err := c.do(ctx, http.MethodGet, common.HealthPath, "", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

// List decodes the whole collection of kind into out, a pointer to a slice
// of the matching dto type.
func (c *HTTPClient) List(ctx context.Context, token string, kind models.Kind, out any) error {
	return c.do(ctx, http.MethodGet, collectionPath(kind), token, nil, out)
}

// Upsert creates or replaces the record identified by the external id in
// payload. The response body is ignored.
func (c *HTTPClient) Upsert(ctx context.Context, token string, kind models.Kind, payload any) error {
	return c.do(ctx, http.MethodPost, collectionPath(kind), token, payload, nil)
}

func (c *HTTPClient) Delete(ctx context.Context, token string, kind models.Kind, externalID string) error {
	return c.do(ctx, http.MethodDelete, collectionPath(kind)+"/"+url.PathEscape(externalID), token, nil, nil)
}

// DocumentContentURL asks for a presigned PUT URL for a document's file.
func (c *HTTPClient) DocumentContentURL(ctx context.Context, token, externalID string) (dto.ContentURL, error) {
	var out dto.ContentURL
	path := collectionPath(models.KindDocument) + "/" + url.PathEscape(externalID) + "/content"
	if err := c.do(ctx, http.MethodPost, path, token, nil, &out); err != nil {
		return dto.ContentURL{}, err
	}
	return out, nil
}

func collectionPath(kind models.Kind) string { return "/" + string(kind) }

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		if !strings.HasPrefix(strings.ToLower(token), "bearer ") {
			token = common.BearerPrefix + token
		}
		req.Header.Set(common.AuthorizationHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %s %s: %v", ErrDecode, method, path, err)
		}
		return nil
	}
	return mapStatus(resp)
}

func mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func mapStatus(resp *http.Response) error {
	var eb dto.Error
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(eb.Error)}
	}
}

// IsAuthError reports whether err means the stored credentials were rejected.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
