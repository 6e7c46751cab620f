package entity

import "time"

// User represents an account row in the `users` table. Accounts are
// immutable after registration; no exposed operation updates or deletes one.
type User struct {
	UID          string    `db:"uid" json:"uid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
