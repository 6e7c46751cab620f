package note

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkadyv/noteboard/internal/httperr"
	"github.com/arkadyv/noteboard/internal/note/entity"
)

// fakeNoteRepo emulates the store contract in memory: every read and delete
// is scoped by owner uid, range listing is inclusive and ordered ascending.
type fakeNoteRepo struct {
	notes []entity.Note
}

func (f *fakeNoteRepo) Create(_ context.Context, n *entity.Note) error {
	f.notes = append(f.notes, *n)
	return nil
}

func (f *fakeNoteRepo) GetByIDAndOwner(_ context.Context, id, uid string) (*entity.Note, error) {
	for _, n := range f.notes {
		if n.ID == id && n.UID == uid {
			cp := n
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeNoteRepo) ListByRange(_ context.Context, uid string, from, to int64, skip, take int) ([]entity.Note, error) {
	matched := []entity.Note{}
	for _, n := range f.notes {
		if n.UID == uid && n.At >= from && n.At <= to {
			matched = append(matched, n)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].At < matched[j].At })
	if skip >= len(matched) {
		return []entity.Note{}, nil
	}
	matched = matched[skip:]
	if take < len(matched) {
		matched = matched[:take]
	}
	return matched, nil
}

func (f *fakeNoteRepo) DeleteByIDAndOwner(_ context.Context, id, uid string) (int64, error) {
	kept := f.notes[:0]
	var deleted int64
	for _, n := range f.notes {
		if n.ID == id && n.UID == uid {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.notes = kept
	return deleted, nil
}

func TestCreateDefaults(t *testing.T) {
	t.Parallel()

	svc := NewNoteService(&fakeNoteRepo{})
	before := time.Now().Unix()
	n, err := svc.Create(context.Background(), "u-1", "buy milk", nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "u-1", n.UID)
	assert.Equal(t, "buy milk", n.Body)
	assert.JSONEq(t, "{}", string(n.Data))
	assert.GreaterOrEqual(t, n.At, before)
	assert.LessOrEqual(t, n.At, time.Now().Unix())
}

func TestCreateExplicitFields(t *testing.T) {
	t.Parallel()

	svc := NewNoteService(&fakeNoteRepo{})
	at := int64(1700000000)
	n, err := svc.Create(context.Background(), "u-1", "call mom",
		json.RawMessage(`{"priority":"high"}`), &at)
	require.NoError(t, err)

	assert.Equal(t, at, n.At)
	assert.JSONEq(t, `{"priority":"high"}`, string(n.Data))
}

func TestCreateMissingBody(t *testing.T) {
	t.Parallel()

	svc := NewNoteService(&fakeNoteRepo{})
	_, err := svc.Create(context.Background(), "u-1", "", nil, nil)

	var he *httperr.Error
	require.ErrorAs(t, err, &he)
	assert.Equal(t, httperr.KindValidation, he.Kind)
	assert.Equal(t, "Missing required field: body", he.Message)
}

func TestCreateDataMustBeObject(t *testing.T) {
	t.Parallel()

	svc := NewNoteService(&fakeNoteRepo{})
	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `true`} {
		_, err := svc.Create(context.Background(), "u-1", "x", json.RawMessage(raw), nil)
		var he *httperr.Error
		require.ErrorAs(t, err, &he, "data=%s", raw)
		assert.Equal(t, "Field data must be an object", he.Message)
	}
}

func TestGetScopedByOwner(t *testing.T) {
	t.Parallel()

	repo := &fakeNoteRepo{}
	svc := NewNoteService(repo)
	n, err := svc.Create(context.Background(), "u-a", "mine", nil, nil)
	require.NoError(t, err)

	// owner sees it
	got, err := svc.Get(context.Background(), "u-a", n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)

	// another user gets the same 404 as for a nonexistent id
	_, errForeign := svc.Get(context.Background(), "u-b", n.ID)
	_, errAbsent := svc.Get(context.Background(), "u-a", "no-such-id")
	var heForeign, heAbsent *httperr.Error
	require.ErrorAs(t, errForeign, &heForeign)
	require.ErrorAs(t, errAbsent, &heAbsent)
	assert.Equal(t, heAbsent.Status, heForeign.Status)
	assert.Equal(t, heAbsent.Message, heForeign.Message)
	assert.Equal(t, httperr.KindNotFound, heForeign.Kind)
}

func TestDeleteScopedByOwner(t *testing.T) {
	t.Parallel()

	repo := &fakeNoteRepo{}
	svc := NewNoteService(repo)
	n, err := svc.Create(context.Background(), "u-a", "mine", nil, nil)
	require.NoError(t, err)

	// foreign delete is a zero-match, not an error, and removes nothing
	deleted, err := svc.Delete(context.Background(), "u-b", n.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	_, err = svc.Get(context.Background(), "u-a", n.ID)
	require.NoError(t, err)

	deleted, err = svc.Delete(context.Background(), "u-a", n.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)
}

func TestListRangeOrderAndPagination(t *testing.T) {
	t.Parallel()

	repo := &fakeNoteRepo{}
	svc := NewNoteService(repo)
	for _, at := range []int64{50, 10, 30, 20, 40, 99} {
		ts := at
		_, err := svc.Create(context.Background(), "u-a", "n", nil, &ts)
		require.NoError(t, err)
	}
	// another user's note inside the range must not leak
	other := int64(25)
	_, err := svc.Create(context.Background(), "u-b", "other", nil, &other)
	require.NoError(t, err)

	// inclusive bounds, ascending order
	notes, err := svc.List(context.Background(), "u-a", 10, 50, 0, 10)
	require.NoError(t, err)
	ats := make([]int64, len(notes))
	for i, n := range notes {
		ats[i] = n.At
	}
	assert.Equal(t, []int64{10, 20, 30, 40, 50}, ats)

	// skip/take window
	notes, err = svc.List(context.Background(), "u-a", 10, 50, 1, 2)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.EqualValues(t, 20, notes[0].At)
	assert.EqualValues(t, 30, notes[1].At)

	// empty range is an empty list, not an error
	notes, err = svc.List(context.Background(), "u-a", 1000, 2000, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
