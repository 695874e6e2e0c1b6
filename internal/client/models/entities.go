package models

import "time"

// Project groups events, tasks and notes. Deleting a project deletes its
// tasks and notes and detaches its events.
type Project struct {
	Identity
	Title       string
	Description string
	Status      Status
	StartDate   *time.Time
	EndDate     *time.Time
}

func (Project) Kind() Kind { return KindProject }

// Event is a dated occurrence, optionally placed on a map and attached to
// a project. Deleting an event deletes its notes and documents and detaches
// its tasks.
type Event struct {
	Identity
	Title       string
	Description string
	Status      Status
	StartsAt    *time.Time
	EndsAt      *time.Time
	Location    string
	Latitude    *float64
	Longitude   *float64
	ProjectID   *int64
}

func (Event) Kind() Kind { return KindEvent }

type Task struct {
	Identity
	Title     string
	Details   string
	Status    Status
	DueDate   *time.Time
	ProjectID *int64
	EventID   *int64
}

func (Task) Kind() Kind { return KindTask }

type Note struct {
	Identity
	Title     string
	Body      string
	ProjectID *int64
	EventID   *int64
}

func (Note) Kind() Kind { return KindNote }

// Document points at a file on the local disk. Its content is uploaded to
// object storage separately from the record itself. FileName and
// ContentKey mirror the server copy, so a document downloaded without a
// local file still round-trips them.
type Document struct {
	Identity
	Title      string
	FilePath   string
	FileName   string
	ContentKey string
	EventID    *int64
}

func (Document) Kind() Kind { return KindDocument }
