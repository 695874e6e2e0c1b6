package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planner/internal/common"
	"github.com/dmitrijs2005/planner/internal/dbx"
	"github.com/dmitrijs2005/planner/internal/dto"
	"github.com/dmitrijs2005/planner/internal/server/models"
	"github.com/dmitrijs2005/planner/internal/server/repositories/repomanager"
)

const (
	KindProjects  = "projects"
	KindEvents    = "events"
	KindTasks     = "tasks"
	KindNotes     = "notes"
	KindDocuments = "documents"

	projectRef = "project_external_id"
	eventRef   = "event_external_id"
)

// normalizer decodes a request body into the typed shape of its kind, stamps
// the owner and re-encodes it, returning the external id it carries.
type normalizer func(body []byte, ownerID string) (string, []byte, error)

func normalize[T any](ids func(*T) (ext, owner *string)) normalizer {
	return func(body []byte, ownerID string) (string, []byte, error) {
		var v T
		if err := json.Unmarshal(body, &v); err != nil {
			return "", nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
		}
		ext, owner := ids(&v)
		*ext = strings.TrimSpace(*ext)
		if *ext == "" {
			return "", nil, fmt.Errorf("%w: external_id is required", common.ErrorValidation)
		}
		*owner = ownerID
		out, err := json.Marshal(&v)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		return *ext, out, nil
	}
}

var kinds = map[string]normalizer{
	KindProjects:  normalize(func(v *dto.Project) (*string, *string) { return &v.ExternalID, &v.OwnerID }),
	KindEvents:    normalize(func(v *dto.Event) (*string, *string) { return &v.ExternalID, &v.OwnerID }),
	KindTasks:     normalize(func(v *dto.Task) (*string, *string) { return &v.ExternalID, &v.OwnerID }),
	KindNotes:     normalize(func(v *dto.Note) (*string, *string) { return &v.ExternalID, &v.OwnerID }),
	KindDocuments: normalize(func(v *dto.Document) (*string, *string) { return &v.ExternalID, &v.OwnerID }),
}

// dependent is a child collection that points at a deleted parent through
// ref. Nullified children lose the reference, the rest are deleted.
type dependent struct {
	kind    string
	ref     string
	nullify bool
}

var dependents = map[string][]dependent{
	KindProjects: {
		{kind: KindTasks, ref: projectRef},
		{kind: KindNotes, ref: projectRef},
		{kind: KindEvents, ref: projectRef, nullify: true},
	},
	KindEvents: {
		{kind: KindNotes, ref: eventRef},
		{kind: KindDocuments, ref: eventRef},
		{kind: KindTasks, ref: eventRef, nullify: true},
	},
}

// IsKnownKind reports whether kind names one of the synced collections.
func IsKnownKind(kind string) bool {
	_, ok := kinds[kind]
	return ok
}

type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func checkKind(kind string) error {
	if !IsKnownKind(kind) {
		return fmt.Errorf("%w: unknown collection %q", common.ErrorValidation, kind)
	}
	return nil
}

// List returns the stored payloads of one collection, never nil.
func (s *RecordService) List(ctx context.Context, ownerID, kind string) ([]json.RawMessage, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	recs, err := s.repomanager.Records(s.db).List(ctx, ownerID, kind)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Payload)
	}
	return out, nil
}

// Upsert stores body as the record named by its external_id, replacing any
// previous version.
func (s *RecordService) Upsert(ctx context.Context, ownerID, kind string, body []byte) (json.RawMessage, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	ext, payload, err := kinds[kind](body, ownerID)
	if err != nil {
		return nil, err
	}
	rec := &models.Record{OwnerID: ownerID, Kind: kind, ExternalID: ext, Payload: payload}
	if err := s.repomanager.Records(s.db).Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec.Payload, nil
}

// Delete removes a record together with its owned children and clears the
// references of nullified ones, all in one transaction.
func (s *RecordService) Delete(ctx context.Context, ownerID, kind, externalID string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Records(tx)
		if err := repo.Delete(ctx, ownerID, kind, externalID); err != nil {
			return err
		}
		for _, d := range dependents[kind] {
			var err error
			if d.nullify {
				_, err = repo.ClearRef(ctx, ownerID, d.kind, d.ref, externalID)
			} else {
				_, err = repo.DeleteByRef(ctx, ownerID, d.kind, d.ref, externalID)
			}
			if err != nil {
				return fmt.Errorf("%s of %s %s: %w", d.kind, kind, externalID, err)
			}
		}
		return nil
	})
}
