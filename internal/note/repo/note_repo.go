package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/arkadyv/noteboard/internal/note/entity"
)

// NoteRepo provides data access for the notes table using sqlx. Every query
// is scoped by owner uid so foreign notes are indistinguishable from absent
// ones at this layer already.
type NoteRepo struct {
	db *sqlx.DB
}

func NewNoteRepo(db *sqlx.DB) *NoteRepo { return &NoteRepo{db: db} }

// EnsureTable creates the notes table if not exists (idempotent).
func (r *NoteRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notes (
  id VARCHAR(32) PRIMARY KEY,
  uid VARCHAR(32) NOT NULL,
  body TEXT NOT NULL,
  data JSONB NOT NULL DEFAULT '{}'::jsonb,
  at BIGINT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notes_uid_at ON notes(uid, at);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new note row.
func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	const q = `INSERT INTO notes (id, uid, body, data, at)
		VALUES (:id, :uid, :body, :data, :at)`
	_, err := r.db.NamedExecContext(ctx, q, n)
	return err
}

// GetByIDAndOwner returns the note matching both id and owner uid, or
// sql.ErrNoRows.
func (r *NoteRepo) GetByIDAndOwner(ctx context.Context, id, uid string) (*entity.Note, error) {
	const q = `SELECT id, uid, body, data, at, created_at FROM notes WHERE id=$1 AND uid=$2`
	var row entity.Note
	if err := r.db.GetContext(ctx, &row, q, id, uid); err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByRange returns the owner's notes with at in [from, to] inclusive,
// ascending by at, paginated by skip/take.
func (r *NoteRepo) ListByRange(ctx context.Context, uid string, from, to int64, skip, take int) ([]entity.Note, error) {
	const q = `SELECT id, uid, body, data, at, created_at FROM notes
		WHERE uid=$1 AND at BETWEEN $2 AND $3
		ORDER BY at ASC OFFSET $4 LIMIT $5`
	notes := []entity.Note{}
	if err := r.db.SelectContext(ctx, &notes, q, uid, from, to, skip, take); err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteByIDAndOwner deletes the note matching both id and owner uid and
// returns the affected row count. Zero rows is not an error here.
func (r *NoteRepo) DeleteByIDAndOwner(ctx context.Context, id, uid string) (int64, error) {
	const q = `DELETE FROM notes WHERE id=$1 AND uid=$2`
	res, err := r.db.ExecContext(ctx, q, id, uid)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
