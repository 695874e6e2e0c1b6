package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/filex"
)

// Add prompts for a new record of kind, stores it and queues its upload.
func (a *App) Add(ctx context.Context, kind models.Kind) error {
	rec, err := newRecord(kind)
	if err != nil {
		return err
	}
	if err := a.fill(rec); err != nil {
		return err
	}

	if _, err := a.planner.Create(ctx, rec); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s %d\n", kind, rec.LocalID())
	return nil
}

// Edit prompts for new field values of an existing record. Empty answers
// keep the current values.
func (a *App) Edit(ctx context.Context, kind models.Kind, id int64) error {
	rec, err := a.planner.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := a.fill(rec); err != nil {
		return err
	}

	if _, err := a.planner.Update(ctx, rec); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %d\n", kind, id)
	return nil
}

// Delete removes a record locally and on the server.
func (a *App) Delete(ctx context.Context, kind models.Kind, id int64) error {
	if _, err := a.planner.Delete(ctx, kind, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %s %d\n", kind, id)
	return nil
}

func newRecord(kind models.Kind) (models.Record, error) {
	switch kind {
	case models.KindProject:
		return &models.Project{}, nil
	case models.KindEvent:
		return &models.Event{}, nil
	case models.KindTask:
		return &models.Task{}, nil
	case models.KindNote:
		return &models.Note{}, nil
	case models.KindDocument:
		return &models.Document{}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
}

// fill runs the form of rec's kind, editing rec in place.
func (a *App) fill(rec models.Record) error {
	f := &form{r: a.reader, w: a.out}

	switch r := rec.(type) {
	case *models.Project:
		f.required("Title", &r.Title)
		f.text("Description", &r.Description)
		f.status(&r.Status)
		f.date("Start date", &r.StartDate)
		f.date("End date", &r.EndDate)
		if f.err == nil && r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
			f.err = fmt.Errorf("end date is before start date")
		}

	case *models.Event:
		f.required("Title", &r.Title)
		f.text("Description", &r.Description)
		f.status(&r.Status)
		f.date("Starts at", &r.StartsAt)
		f.date("Ends at", &r.EndsAt)
		f.text("Location", &r.Location)
		f.float("Latitude", &r.Latitude)
		f.float("Longitude", &r.Longitude)
		f.ref("Project", &r.ProjectID)

	case *models.Task:
		f.required("Title", &r.Title)
		f.text("Details", &r.Details)
		f.status(&r.Status)
		f.date("Due date", &r.DueDate)
		f.ref("Project", &r.ProjectID)
		f.ref("Event", &r.EventID)

	case *models.Note:
		f.required("Title", &r.Title)
		f.multiline("Body", &r.Body)
		f.ref("Project", &r.ProjectID)
		f.ref("Event", &r.EventID)

	case *models.Document:
		f.required("Title", &r.Title)
		f.required("File path", &r.FilePath)
		if f.err == nil && !filex.FileExists(r.FilePath) {
			f.err = fmt.Errorf("file %q does not exist", r.FilePath)
		}
		f.ref("Event", &r.EventID)

	default:
		return fmt.Errorf("%w: %T", models.ErrUnknownKind, rec)
	}
	return f.err
}
