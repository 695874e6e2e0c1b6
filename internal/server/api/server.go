// Package api serves the planner REST surface over gin: account endpoints,
// owner-scoped collections and document content URLs.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/logging"
	"github.com/dmitrijs2005/planner/internal/server/models"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*dto.Session, error)
}

type RecordService interface {
	List(ctx context.Context, ownerID, kind string) ([]json.RawMessage, error)
	Upsert(ctx context.Context, ownerID, kind string, body []byte) (json.RawMessage, error)
	Delete(ctx context.Context, ownerID, kind, externalID string) error
}

type ContentService interface {
	PresignUpload(ctx context.Context, ownerID, externalID string) (*dto.ContentURL, error)
}

type HTTPServer struct {
	address   string
	users     UserService
	records   RecordService
	content   ContentService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHTTPServer(address string, l logging.Logger, us UserService, rs RecordService, cs ContentService, secretKey string) *HTTPServer {
	return &HTTPServer{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		records:   rs,
		content:   cs,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
