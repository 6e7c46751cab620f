package entity

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Note is a user-owned todo row. UID references the owning user; the note
// never outlives visibility rules tied to that uid. At is unix seconds and
// drives range queries.
type Note struct {
	ID        string         `db:"id" json:"id"`
	UID       string         `db:"uid" json:"uid"`
	Body      string         `db:"body" json:"body"`
	Data      types.JSONText `db:"data" json:"data"`
	At        int64          `db:"at" json:"at"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
