package note

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx/types"

	"github.com/arkadyv/noteboard/internal/httperr"
	"github.com/arkadyv/noteboard/internal/note/entity"
	"github.com/arkadyv/noteboard/pkg/utilities"
)

// Repository is the slice of the note store this service needs. Every method
// takes the owner uid so isolation is enforced at the query layer.
type Repository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByIDAndOwner(ctx context.Context, id, uid string) (*entity.Note, error)
	ListByRange(ctx context.Context, uid string, from, to int64, skip, take int) ([]entity.Note, error)
	DeleteByIDAndOwner(ctx context.Context, id, uid string) (int64, error)
}

// NoteService validates input and applies defaults before hitting the store.
type NoteService struct {
	repo Repository
	now  func() time.Time
}

func NewNoteService(repo Repository) *NoteService {
	return &NoteService{repo: repo, now: time.Now}
}

// Create persists a note owned by uid. Data must be a JSON object when
// present and defaults to {}; at defaults to the current time.
func (s *NoteService) Create(ctx context.Context, uid, body string, data json.RawMessage, at *int64) (*entity.Note, error) {
	if body == "" {
		return nil, httperr.Validation("Missing required field: body")
	}

	payload := types.JSONText("{}")
	if len(data) > 0 && string(data) != "null" {
		var obj map[string]any
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, httperr.Validation("Field data must be an object")
		}
		payload = types.JSONText(data)
	}

	ts := s.now().Unix()
	if at != nil {
		ts = *at
	}

	n := &entity.Note{
		ID:   utilities.NewNoteID(),
		UID:  uid,
		Body: body,
		Data: payload,
		At:   ts,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get returns the caller's note by id. A note owned by someone else is
// reported exactly like a nonexistent one.
func (s *NoteService) Get(ctx context.Context, uid, id string) (*entity.Note, error) {
	n, err := s.repo.GetByIDAndOwner(ctx, id, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.NotFound("Todo not found")
		}
		return nil, err
	}
	return n, nil
}

// List returns the caller's notes with at in [from, to], ascending,
// paginated by skip/take.
func (s *NoteService) List(ctx context.Context, uid string, from, to int64, skip, take int) ([]entity.Note, error) {
	return s.repo.ListByRange(ctx, uid, from, to, skip, take)
}

// Delete removes the caller's note by id and returns the number of rows
// removed. Zero matches (absent or foreign note) is not an error.
func (s *NoteService) Delete(ctx context.Context, uid, id string) (int64, error) {
	return s.repo.DeleteByIDAndOwner(ctx, id, uid)
}
