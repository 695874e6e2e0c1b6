// Package models defines the entities managed by the planner client and the
// identity fields the sync engine relies on.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names an entity type. The value doubles as the remote collection name.
type Kind string

const (
	KindProject  Kind = "projects"
	KindEvent    Kind = "events"
	KindTask     Kind = "tasks"
	KindNote     Kind = "notes"
	KindDocument Kind = "documents"
)

// SyncOrder is the dependency order in which collections are downloaded:
// every kind appears after the kinds it references.
var SyncOrder = []Kind{KindProject, KindEvent, KindTask, KindNote, KindDocument}

var ErrUnknownKind = errors.New("unknown entity kind")

// ParseKind accepts singular or plural names, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range SyncOrder {
		if s == string(k) || s+"s" == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Status applies to projects, events and tasks.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// OrDefault returns s, or StatusActive when s is empty or unknown.
func (s Status) OrDefault() Status {
	if s.Valid() {
		return s
	}
	return StatusActive
}

// Identity is embedded in every entity.
//
// ID is assigned by the local store and never leaves the device. ExternalID
// is empty until the record has been uploaded or downloaded once. Owner is
// the owner token of the account the record belongs to.
type Identity struct {
	ID         int64
	ExternalID string
	Owner      string
}

func (i *Identity) LocalID() int64 { return i.ID }
func (i *Identity) SetLocalID(id int64) { i.ID = id }
func (i *Identity) GetExternalID() string { return i.ExternalID }
func (i *Identity) SetExternalID(id string) { i.ExternalID = id }
func (i *Identity) GetOwner() string { return i.Owner }
func (i *Identity) SetOwner(owner string) { i.Owner = owner }
func (i *Identity) IsSynced() bool { return i.ExternalID != "" }

// Record is satisfied by a pointer to any entity.
type Record interface {
	Kind() Kind
	LocalID() int64
	SetLocalID(id int64)
	GetExternalID() string
	SetExternalID(id string)
	GetOwner() string
	SetOwner(owner string)
}
