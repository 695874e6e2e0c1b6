package records

import (
	"context"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/dbx"
)

// Repository stores records of one entity type.
//
// Insert assigns the local ID. Save and Delete address the record by local
// ID and return common.ErrorNotFound when no row matches. Fetch returns the
// matching records ordered by local ID.
type Repository[T any] interface {
	Insert(ctx context.Context, rec *T) error
	Save(ctx context.Context, rec *T) error
	Delete(ctx context.Context, rec *T) error
	Fetch(ctx context.Context, p Predicate) ([]*T, error)
	Get(ctx context.Context, id int64) (*T, error)
}

// Store bundles the repositories of every entity type over one handle.
type Store struct {
	Projects  Repository[models.Project]
	Events    Repository[models.Event]
	Tasks     Repository[models.Task]
	Notes     Repository[models.Note]
	Documents Repository[models.Document]
}

func NewStore(db dbx.DBTX) *Store {
	return &Store{
		Projects:  NewProjects(db),
		Events:    NewEvents(db),
		Tasks:     NewTasks(db),
		Notes:     NewNotes(db),
		Documents: NewDocuments(db),
	}
}
