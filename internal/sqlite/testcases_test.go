package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tcm/pkg/types"
)

func TestCreateGet(t *testing.T) {
	tests := []struct {
		name            string
		input           types.NewTestCase
		wantPriority    types.Priority
		wantDescription *string
	}{
		{
			name:         "title only defaults priority",
			input:        types.NewTestCase{Title: "Login works"},
			wantPriority: types.PriorityMedium,
		},
		{
			name: "all fields",
			input: types.NewTestCase{
				Title:       "Checkout",
				Description: types.Ptr("Pay with a saved card"),
				Priority:    types.PriorityHigh,
			},
			wantPriority:    types.PriorityHigh,
			wantDescription: types.Ptr("Pay with a saved card"),
		},
		{
			name:         "empty description stored as absent",
			input:        types.NewTestCase{Title: "Logout", Description: types.Ptr(""), Priority: types.PriorityLow},
			wantPriority: types.PriorityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			ctx := t.Context()

			id, err := b.Create(ctx, tt.input)
			require.NoError(t, err)
			assert.Positive(t, id)

			got, err := b.Get(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, id, got.ID)
			assert.Equal(t, tt.input.Title, got.Title)
			assert.Equal(t, tt.wantDescription, got.Description)
			assert.Equal(t, tt.wantPriority, got.Priority)
			assert.Equal(t, types.StatusNotTested, got.Status)
			assert.Nil(t, got.Notes)
			assert.False(t, got.CreatedAt.IsZero())
			assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		})
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	_, err := b.Create(ctx, types.NewTestCase{Title: ""})
	assert.ErrorIs(t, err, types.ErrInvalidTitle)

	_, err = b.Create(ctx, types.NewTestCase{Title: "x", Priority: "Urgent"})
	assert.ErrorIs(t, err, types.ErrInvalidPriority)

	all, err := b.List(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected creates persist nothing")
}

func TestCreateFailureRollsBack(t *testing.T) {
	b := newAttached(t)
	ctx := t.Context()

	// Without a schema the insert fails inside the transaction.
	require.NoError(t, os.MkdirAll(filepath.Dir(b.Path()), 0o755))
	_, err := b.Create(ctx, types.NewTestCase{Title: "No table"})
	assert.ErrorContains(t, err, "inserting test case")
	assert.ErrorIs(t, err, types.ErrNotInitialized)

	_, err = b.Initialize(ctx)
	require.NoError(t, err)
	all, err := b.List(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestIDsAreNeverReused(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	first, err := b.Create(ctx, types.NewTestCase{Title: "one"})
	require.NoError(t, err)
	second, err := b.Create(ctx, types.NewTestCase{Title: "two"})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	require.NoError(t, b.Delete(ctx, second))
	third, err := b.Create(ctx, types.NewTestCase{Title: "three"})
	require.NoError(t, err)
	assert.Greater(t, third, second)
}

func TestUpdate(t *testing.T) {
	t.Run("only supplied fields change and updated_at increases", func(t *testing.T) {
		b := setupBackend(t)
		ctx := t.Context()

		id, err := b.Create(ctx, types.NewTestCase{
			Title:       "Login works",
			Description: types.Ptr("valid credentials"),
			Priority:    types.PriorityHigh,
		})
		require.NoError(t, err)
		before, err := b.Get(ctx, id)
		require.NoError(t, err)

		err = b.Update(ctx, id, types.Update{
			Status: types.Ptr(types.StatusPassed),
			Notes:  types.Ptr("ok"),
		})
		require.NoError(t, err)

		after, err := b.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, types.StatusPassed, after.Status)
		assert.Equal(t, types.Ptr("ok"), after.Notes)
		assert.Equal(t, before.Title, after.Title)
		assert.Equal(t, before.Description, after.Description)
		assert.Equal(t, before.Priority, after.Priority)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)
		assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updated_at must strictly increase")
	})

	t.Run("consecutive updates keep increasing", func(t *testing.T) {
		b := setupBackend(t)
		ctx := t.Context()

		id, err := b.Create(ctx, types.NewTestCase{Title: "Repeated"})
		require.NoError(t, err)

		prev, err := b.Get(ctx, id)
		require.NoError(t, err)
		for _, st := range []types.Status{types.StatusFailed, types.StatusBlocked, types.StatusPassed} {
			require.NoError(t, b.Update(ctx, id, types.Update{Status: types.Ptr(st)}))
			cur, err := b.Get(ctx, id)
			require.NoError(t, err)
			assert.True(t, cur.UpdatedAt.After(prev.UpdatedAt))
			prev = cur
		}
	})

	t.Run("empty description and notes clear the field", func(t *testing.T) {
		b := setupBackend(t)
		ctx := t.Context()

		id, err := b.Create(ctx, types.NewTestCase{Title: "Clear", Description: types.Ptr("text")})
		require.NoError(t, err)
		require.NoError(t, b.Update(ctx, id, types.Update{Notes: types.Ptr("note")}))

		require.NoError(t, b.Update(ctx, id, types.Update{
			Description: types.Ptr(""),
			Notes:       types.Ptr(""),
		}))
		got, err := b.Get(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Notes)
	})

	t.Run("nothing to update leaves record untouched", func(t *testing.T) {
		b := setupBackend(t)
		ctx := t.Context()

		id, err := b.Create(ctx, types.NewTestCase{Title: "Untouched"})
		require.NoError(t, err)
		before, err := b.Get(ctx, id)
		require.NoError(t, err)

		err = b.Update(ctx, id, types.Update{})
		assert.ErrorIs(t, err, types.ErrNothingToUpdate)

		after, err := b.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Update(t.Context(), 42, types.Update{Title: types.Ptr("x")})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("invalid fields rejected before writing", func(t *testing.T) {
		b := setupBackend(t)
		ctx := t.Context()

		id, err := b.Create(ctx, types.NewTestCase{Title: "Keep"})
		require.NoError(t, err)

		assert.ErrorIs(t, b.Update(ctx, id, types.Update{Title: types.Ptr(" ")}), types.ErrInvalidTitle)
		assert.ErrorIs(t, b.Update(ctx, id, types.Update{Status: types.Ptr(types.Status("Done"))}), types.ErrInvalidStatus)

		got, err := b.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Keep", got.Title)
		assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	})

	t.Run("non-positive id rejected", func(t *testing.T) {
		b := setupBackend(t)
		assert.ErrorIs(t, b.Update(t.Context(), 0, types.Update{Title: types.Ptr("x")}), types.ErrInvalidID)
	})
}

func TestDelete(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	id, err := b.Create(ctx, types.NewTestCase{Title: "Doomed"})
	require.NoError(t, err)
	keep, err := b.Create(ctx, types.NewTestCase{Title: "Kept"})
	require.NoError(t, err)

	require.NoError(t, b.Delete(ctx, id))

	_, err = b.Get(ctx, id)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, b.Delete(ctx, id), types.ErrNotFound, "second delete is not found")
	assert.ErrorIs(t, b.Delete(ctx, -1), types.ErrInvalidID)

	_, err = b.Get(ctx, keep)
	assert.NoError(t, err)
}

func TestGetNotFound(t *testing.T) {
	b := setupBackend(t)

	_, err := b.Get(t.Context(), 1)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.Get(t.Context(), 0)
	assert.ErrorIs(t, err, types.ErrInvalidID)
}

func TestList(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	seed := []struct {
		title    string
		priority types.Priority
		status   types.Status
	}{
		{"a", types.PriorityHigh, types.StatusPassed},
		{"b", types.PriorityLow, types.StatusPassed},
		{"c", types.PriorityHigh, types.StatusFailed},
		{"d", types.PriorityHigh, types.StatusPassed},
		{"e", types.PriorityMedium, types.StatusNotTested},
	}
	ids := make(map[string]int64, len(seed))
	for _, s := range seed {
		id, err := b.Create(ctx, types.NewTestCase{Title: s.title, Priority: s.priority})
		require.NoError(t, err)
		if s.status != types.StatusNotTested {
			require.NoError(t, b.Update(ctx, id, types.Update{Status: types.Ptr(s.status)}))
		}
		ids[s.title] = id
	}

	tests := []struct {
		name   string
		filter types.Filter
		want   []string
	}{
		{
			name:   "no filter returns all in id order",
			filter: types.Filter{},
			want:   []string{"a", "b", "c", "d", "e"},
		},
		{
			name:   "status filter",
			filter: types.Filter{Status: types.Ptr(types.StatusPassed)},
			want:   []string{"a", "b", "d"},
		},
		{
			name:   "priority filter",
			filter: types.Filter{Priority: types.Ptr(types.PriorityHigh)},
			want:   []string{"a", "c", "d"},
		},
		{
			name: "status and priority intersect",
			filter: types.Filter{
				Status:   types.Ptr(types.StatusPassed),
				Priority: types.Ptr(types.PriorityHigh),
			},
			want: []string{"a", "d"},
		},
		{
			name:   "no match is empty, not an error",
			filter: types.Filter{Status: types.Ptr(types.StatusBlocked)},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.List(ctx, tt.filter)
			require.NoError(t, err)
			require.NotNil(t, got)

			titles := make([]string, 0, len(got))
			for i, s := range got {
				titles = append(titles, s.Title)
				assert.Equal(t, ids[s.Title], s.ID)
				if tt.filter.Status != nil {
					assert.Equal(t, *tt.filter.Status, s.Status)
				}
				if tt.filter.Priority != nil {
					assert.Equal(t, *tt.filter.Priority, s.Priority)
				}
				if i > 0 {
					assert.Greater(t, s.ID, got[i-1].ID)
				}
			}
			assert.Equal(t, tt.want, titles)
		})
	}

	t.Run("invalid filter value rejected", func(t *testing.T) {
		_, err := b.List(ctx, types.Filter{Priority: types.Ptr(types.Priority("Urgent"))})
		assert.ErrorIs(t, err, types.ErrInvalidPriority)
	})
}

func TestListEmptyStore(t *testing.T) {
	b := setupBackend(t)
	got, err := b.List(t.Context(), types.Filter{Status: types.Ptr(types.StatusNotTested)})
	require.NoError(t, err)
	assert.Empty(t, got)
}
