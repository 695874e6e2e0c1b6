package records

import (
	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/dbx"
)

func NewProjects(db dbx.DBTX) *SQLiteRepository[models.Project] {
	return newSQLiteRepository(db, table[models.Project]{
		name:     "projects",
		columns:  []string{"external_id", "owner", "title", "description", "status", "start_date", "end_date"},
		identity: func(p *models.Project) *models.Identity { return &p.Identity },
		values: func(p *models.Project) []any {
			return []any{nullText(p.ExternalID), p.Owner, p.Title, p.Description, string(p.Status.OrDefault()), p.StartDate, p.EndDate}
		},
		targets: func(p *models.Project) []any {
			return []any{textOrEmpty{&p.ExternalID}, &p.Owner, &p.Title, &p.Description, &p.Status, &p.StartDate, &p.EndDate}
		},
	})
}

func NewEvents(db dbx.DBTX) *SQLiteRepository[models.Event] {
	return newSQLiteRepository(db, table[models.Event]{
		name: "events",
		columns: []string{"external_id", "owner", "title", "description", "status",
			"starts_at", "ends_at", "location", "latitude", "longitude", "project_id"},
		identity: func(e *models.Event) *models.Identity { return &e.Identity },
		values: func(e *models.Event) []any {
			return []any{nullText(e.ExternalID), e.Owner, e.Title, e.Description, string(e.Status.OrDefault()),
				e.StartsAt, e.EndsAt, e.Location, e.Latitude, e.Longitude, e.ProjectID}
		},
		targets: func(e *models.Event) []any {
			return []any{textOrEmpty{&e.ExternalID}, &e.Owner, &e.Title, &e.Description, &e.Status,
				&e.StartsAt, &e.EndsAt, &e.Location, &e.Latitude, &e.Longitude, &e.ProjectID}
		},
	})
}

func NewTasks(db dbx.DBTX) *SQLiteRepository[models.Task] {
	return newSQLiteRepository(db, table[models.Task]{
		name:     "tasks",
		columns:  []string{"external_id", "owner", "title", "details", "status", "due_date", "project_id", "event_id"},
		identity: func(t *models.Task) *models.Identity { return &t.Identity },
		values: func(t *models.Task) []any {
			return []any{nullText(t.ExternalID), t.Owner, t.Title, t.Details, string(t.Status.OrDefault()), t.DueDate, t.ProjectID, t.EventID}
		},
		targets: func(t *models.Task) []any {
			return []any{textOrEmpty{&t.ExternalID}, &t.Owner, &t.Title, &t.Details, &t.Status, &t.DueDate, &t.ProjectID, &t.EventID}
		},
	})
}

func NewNotes(db dbx.DBTX) *SQLiteRepository[models.Note] {
	return newSQLiteRepository(db, table[models.Note]{
		name:     "notes",
		columns:  []string{"external_id", "owner", "title", "body", "project_id", "event_id"},
		identity: func(n *models.Note) *models.Identity { return &n.Identity },
		values: func(n *models.Note) []any {
			return []any{nullText(n.ExternalID), n.Owner, n.Title, n.Body, n.ProjectID, n.EventID}
		},
		targets: func(n *models.Note) []any {
			return []any{textOrEmpty{&n.ExternalID}, &n.Owner, &n.Title, &n.Body, &n.ProjectID, &n.EventID}
		},
	})
}

func NewDocuments(db dbx.DBTX) *SQLiteRepository[models.Document] {
	return newSQLiteRepository(db, table[models.Document]{
		name:     "documents",
		columns:  []string{"external_id", "owner", "title", "file_path", "file_name", "content_key", "event_id"},
		identity: func(d *models.Document) *models.Identity { return &d.Identity },
		values: func(d *models.Document) []any {
			return []any{nullText(d.ExternalID), d.Owner, d.Title, d.FilePath, d.FileName, d.ContentKey, d.EventID}
		},
		targets: func(d *models.Document) []any {
			return []any{textOrEmpty{&d.ExternalID}, &d.Owner, &d.Title, &d.FilePath, &d.FileName, &d.ContentKey, &d.EventID}
		},
	})
}
