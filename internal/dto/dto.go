// Package dto holds the JSON shapes exchanged between the planner client and
// the server. Relationships travel as the external id of the parent; local
// ids never leave the device. Timestamps are encoded as RFC 3339 strings.
package dto

import "time"

type Project struct {
	ExternalID  string     `json:"external_id"`
	OwnerID     string     `json:"owner_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type Event struct {
	ExternalID        string     `json:"external_id"`
	OwnerID           string     `json:"owner_id,omitempty"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	StartsAt          *time.Time `json:"starts_at,omitempty"`
	EndsAt            *time.Time `json:"ends_at,omitempty"`
	Location          string     `json:"location"`
	Latitude          *float64   `json:"latitude,omitempty"`
	Longitude         *float64   `json:"longitude,omitempty"`
	ProjectExternalID string     `json:"project_external_id,omitempty"`
}

type Task struct {
	ExternalID        string     `json:"external_id"`
	OwnerID           string     `json:"owner_id,omitempty"`
	Title             string     `json:"title"`
	Details           string     `json:"details"`
	Status            string     `json:"status"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	ProjectExternalID string     `json:"project_external_id,omitempty"`
	EventExternalID   string     `json:"event_external_id,omitempty"`
}

type Note struct {
	ExternalID        string `json:"external_id"`
	OwnerID           string `json:"owner_id,omitempty"`
	Title             string `json:"title"`
	Body              string `json:"body"`
	ProjectExternalID string `json:"project_external_id,omitempty"`
	EventExternalID   string `json:"event_external_id,omitempty"`
}

// Document carries metadata only. FileName is the base name of the local
// file; ContentKey is the object storage key once content was uploaded.
type Document struct {
	ExternalID      string `json:"external_id"`
	OwnerID         string `json:"owner_id,omitempty"`
	Title           string `json:"title"`
	FileName        string `json:"file_name"`
	ContentKey      string `json:"content_key,omitempty"`
	EventExternalID string `json:"event_external_id,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Session struct {
	AccessToken string `json:"access_token"`
	OwnerID     string `json:"owner_id"`
}

// ContentURL is a presigned PUT target for document content.
type ContentURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Health struct {
	Status string `json:"status"`
}

type Error struct {
	Error string `json:"error"`
}
