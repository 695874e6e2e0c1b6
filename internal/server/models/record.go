package models

import (
	"encoding/json"
	"time"
)

// Record is one stored entity of any kind. Payload is the JSON wire shape
// as last upserted, with owner_id set by the server.
type Record struct {
	OwnerID    string
	Kind       string
	ExternalID string
	Payload    json.RawMessage
	UpdatedAt  time.Time
}
