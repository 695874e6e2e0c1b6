// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account. ID doubles as the owner id of every record the user
// syncs. The password is stored as an argon2id hash with its salt.
type User struct {
	ID           string
	UserName     string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    time.Time
}
