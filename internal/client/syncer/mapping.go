package syncer

import (
	"path/filepath"

	"github.com/dmitrijs2005/planner/internal/client/models"
	"github.com/dmitrijs2005/planner/internal/dto"
)

// Download side: remote fields overwrite local ones.

func applyProject(p *models.Project, d dto.Project, _ parentRefs) {
	p.Title = d.Title
	p.Description = d.Description
	p.Status = models.Status(d.Status).OrDefault()
	p.StartDate = d.StartDate
	p.EndDate = d.EndDate
}

func applyEvent(e *models.Event, d dto.Event, refs parentRefs) {
	e.Title = d.Title
	e.Description = d.Description
	e.Status = models.Status(d.Status).OrDefault()
	e.StartsAt = d.StartsAt
	e.EndsAt = d.EndsAt
	e.Location = d.Location
	e.Latitude = d.Latitude
	e.Longitude = d.Longitude
	e.ProjectID = refs.local(models.KindProject, d.ProjectExternalID)
}

func applyTask(t *models.Task, d dto.Task, refs parentRefs) {
	t.Title = d.Title
	t.Details = d.Details
	t.Status = models.Status(d.Status).OrDefault()
	t.DueDate = d.DueDate
	t.ProjectID = refs.local(models.KindProject, d.ProjectExternalID)
	t.EventID = refs.local(models.KindEvent, d.EventExternalID)
}

func applyNote(n *models.Note, d dto.Note, refs parentRefs) {
	n.Title = d.Title
	n.Body = d.Body
	n.ProjectID = refs.local(models.KindProject, d.ProjectExternalID)
	n.EventID = refs.local(models.KindEvent, d.EventExternalID)
}

// applyDocument keeps the local path only while it still names a file called
// d.FileName; otherwise the path is cleared.
func applyDocument(doc *models.Document, d dto.Document, refs parentRefs) {
	doc.Title = d.Title
	doc.FileName = d.FileName
	doc.ContentKey = d.ContentKey
	if doc.FilePath != "" && filepath.Base(doc.FilePath) != d.FileName {
		doc.FilePath = ""
	}
	doc.EventID = refs.local(models.KindEvent, d.EventExternalID)
}

// Upload side. Parent external ids are resolved by the caller.

func projectDTO(p *models.Project) dto.Project {
	return dto.Project{
		ExternalID:  p.ExternalID,
		OwnerID:     p.Owner,
		Title:       p.Title,
		Description: p.Description,
		Status:      string(p.Status.OrDefault()),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

func eventDTO(e *models.Event, projectExt string) dto.Event {
	return dto.Event{
		ExternalID:        e.ExternalID,
		OwnerID:           e.Owner,
		Title:             e.Title,
		Description:       e.Description,
		Status:            string(e.Status.OrDefault()),
		StartsAt:          e.StartsAt,
		EndsAt:            e.EndsAt,
		Location:          e.Location,
		Latitude:          e.Latitude,
		Longitude:         e.Longitude,
		ProjectExternalID: projectExt,
	}
}

func taskDTO(t *models.Task, projectExt, eventExt string) dto.Task {
	return dto.Task{
		ExternalID:        t.ExternalID,
		OwnerID:           t.Owner,
		Title:             t.Title,
		Details:           t.Details,
		Status:            string(t.Status.OrDefault()),
		DueDate:           t.DueDate,
		ProjectExternalID: projectExt,
		EventExternalID:   eventExt,
	}
}

func noteDTO(n *models.Note, projectExt, eventExt string) dto.Note {
	return dto.Note{
		ExternalID:        n.ExternalID,
		OwnerID:           n.Owner,
		Title:             n.Title,
		Body:              n.Body,
		ProjectExternalID: projectExt,
		EventExternalID:   eventExt,
	}
}

func documentDTO(d *models.Document, eventExt string) dto.Document {
	name := d.FileName
	if d.FilePath != "" {
		name = filepath.Base(d.FilePath)
	}
	return dto.Document{
		ExternalID:      d.ExternalID,
		OwnerID:         d.Owner,
		Title:           d.Title,
		FileName:        name,
		ContentKey:      d.ContentKey,
		EventExternalID: eventExt,
	}
}
