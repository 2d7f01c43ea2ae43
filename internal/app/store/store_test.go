package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/app/store"
	"tasktracker/internal/core/domain"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, rules domain.Rules) *store.Store {
	t.Helper()
	next := int64(0)
	return store.New(rules,
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithIDFunc(func() int64 { next++; return next }),
	)
}

func seed(t *testing.T, s *store.Store, titles ...string) {
	t.Helper()
	// Add prepends, so feed titles backwards to end up in the given order.
	for i := len(titles) - 1; i >= 0; i-- {
		_, _, err := s.Add(domain.Draft{Title: titles[i]})
		require.NoError(t, err)
	}
}

func titles(s *store.Store) []string {
	out := make([]string, 0, s.Len())
	for _, task := range s.Tasks() {
		out = append(out, task.Title)
	}
	return out
}

func TestAdd_EmptyTitleRejectedWithoutMutation(t *testing.T) {
	s := newStore(t, domain.Rules{})
	_, _, err := s.Add(domain.Draft{Title: "  "})
	require.Error(t, err)
	require.Equal(t, 0, s.Len())
}

func TestAdd_PrependsNormalizedTask(t *testing.T) {
	s := newStore(t, domain.Rules{RequirePriority: true})
	seedDue := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	_, _, err := s.Add(domain.Draft{Title: "Pay bill", Priority: domain.PriorityMedium})
	require.NoError(t, err)

	task, _, err := s.Add(domain.Draft{Title: "buy milk", DueDate: &seedDue, Priority: domain.PriorityLow})
	require.NoError(t, err)

	require.Equal(t, "Buy milk", task.Title)
	require.False(t, task.Completed)
	require.Equal(t, []string{"Buy milk", "Pay bill"}, titles(s))
}

func TestToggleComplete_PairIsIdempotent(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "one")
	id := s.Tasks()[0].ID

	first, _, err := s.ToggleComplete(id)
	require.NoError(t, err)
	require.True(t, first.Completed)

	second, _, err := s.ToggleComplete(id)
	require.NoError(t, err)
	require.False(t, second.Completed)
}

func TestToggleComplete_MissingID(t *testing.T) {
	s := newStore(t, domain.Rules{})
	_, _, err := s.ToggleComplete(99)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdate_ValidatesLikeAdd(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "one")
	id := s.Tasks()[0].ID

	_, _, err := s.Update(id, domain.Draft{Title: ""})
	require.Error(t, err)
	require.Equal(t, "One", s.Tasks()[0].Title)

	updated, _, err := s.Update(id, domain.Draft{Title: "renamed", Completed: true})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.True(t, updated.Completed)
	require.Equal(t, id, updated.ID)
}

func TestRemove_SecondCallIsNoOp(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "one", "two")
	id := s.Tasks()[0].ID

	_, removed := s.Remove(id)
	require.True(t, removed)
	require.Equal(t, 1, s.Len())

	_, removed = s.Remove(id)
	require.False(t, removed)
	require.Equal(t, 1, s.Len())
}

func TestClearCompleted(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "a", "b", "c", "d", "e")
	tasks := s.Tasks()
	_, _, err := s.ToggleComplete(tasks[1].ID)
	require.NoError(t, err)
	_, _, err = s.ToggleComplete(tasks[3].ID)
	require.NoError(t, err)

	_, cleared := s.ClearCompleted()
	require.Equal(t, 2, cleared)
	require.Equal(t, 3, s.Len())
	for _, task := range s.Tasks() {
		require.False(t, task.Completed)
	}
}

func TestClearAll(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "a", "b")
	_, cleared := s.ClearAll()
	require.Equal(t, 2, cleared)
	require.Equal(t, 0, s.Len())
}

func TestReorder_MovesAndShifts(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "0", "1", "2", "3")

	_, moved := s.Reorder(0, 2)
	require.True(t, moved)
	require.Equal(t, []string{"1", "2", "0", "3"}, titles(s))
}

func TestReorder_OutOfBoundsIsNoOp(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "0", "1")

	_, moved := s.Reorder(0, 5)
	require.False(t, moved)
	_, moved = s.Reorder(-1, 0)
	require.False(t, moved)
	require.Equal(t, []string{"0", "1"}, titles(s))
}

func TestRestore_RewindsMutation(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "keep me")

	task, snap, err := s.Add(domain.Draft{Title: "optimistic"})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	s.Restore(snap)
	require.Equal(t, 1, s.Len())
	require.Equal(t, []string{"Keep me"}, titles(s))
	require.Equal(t, -1, s.IndexOf(task.ID))
}

func TestAdopt_ReplacesProvisionalIdentity(t *testing.T) {
	s := newStore(t, domain.Rules{})
	task, _, err := s.Add(domain.Draft{Title: "local"})
	require.NoError(t, err)

	canonical := task
	canonical.ID = 1234
	s.Adopt(task.ID, canonical)

	require.Equal(t, -1, s.IndexOf(task.ID))
	require.Equal(t, 0, s.IndexOf(1234))
}

func TestLoad_ReplacesContents(t *testing.T) {
	s := newStore(t, domain.Rules{})
	seed(t, s, "stale")
	s.Load([]domain.Task{{ID: 7, Title: "Fresh"}})
	require.Equal(t, []string{"Fresh"}, titles(s))
	require.Equal(t, []int64{7}, s.IDs())
}
