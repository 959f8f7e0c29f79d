package model

import "time"

// User is a seeded identity. Rows are only ever created by the user
// seeding job; nothing updates or deletes them.
//
// Password holds a bcrypt hash, never the plaintext returned by the
// identity API, and is never serialized.
//
// IsAdmin is stored as an integer flag (0/1) to match the column type. No
// code path reads it.
type User struct {
	ID        int64     `json:"id"         db:"id"`
	Username  string    `json:"username"   db:"username"` // unique across users
	Email     string    `json:"email"      db:"email"`
	Password  string    `json:"-"          db:"password"`
	IsAdmin   int       `json:"is_admin"   db:"is_admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
