package reorder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/app/reorder"
	"tasktracker/internal/app/store"
	"tasktracker/internal/app/view"
	"tasktracker/internal/core/domain"
)

func newStore(t *testing.T, titles ...string) *store.Store {
	t.Helper()
	next := int64(0)
	s := store.New(domain.Rules{},
		store.WithClock(func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) }),
		store.WithIDFunc(func() int64 { next++; return next }),
	)
	for i := len(titles) - 1; i >= 0; i-- {
		_, _, err := s.Add(domain.Draft{Title: titles[i]})
		require.NoError(t, err)
	}
	return s
}

func storeTitles(s *store.Store) []string {
	out := make([]string, 0, s.Len())
	for _, task := range s.Tasks() {
		out = append(out, task.Title)
	}
	return out
}

func TestMove_UnfilteredMatchesCanonicalOrder(t *testing.T) {
	s := newStore(t, "0", "1", "2", "3")
	displayed := view.Derive(s.Tasks(), view.Params{Filter: view.FilterAll})

	_, moved := reorder.Move(s, displayed, 0, 2)
	require.True(t, moved)
	require.Equal(t, []string{"1", "2", "0", "3"}, storeTitles(s))
}

func TestMove_UndefinedDestinationIgnored(t *testing.T) {
	s := newStore(t, "0", "1", "2")
	displayed := view.Derive(s.Tasks(), view.Params{Filter: view.FilterAll})

	_, moved := reorder.Move(s, displayed, 0, -1)
	require.False(t, moved)
	_, moved = reorder.Move(s, displayed, 0, 3)
	require.False(t, moved)
	require.Equal(t, []string{"0", "1", "2"}, storeTitles(s))
}

// Dragging within a filtered view must not disturb the relative order of the
// hidden tasks: displayed positions are resolved to canonical indices by id.
func TestMove_FilteredViewKeepsHiddenTasksInPlace(t *testing.T) {
	s := newStore(t, "A", "B", "C", "D", "E")
	tasks := s.Tasks()
	// Complete B and D, then work in the Completed view.
	_, _, err := s.ToggleComplete(tasks[1].ID)
	require.NoError(t, err)
	_, _, err = s.ToggleComplete(tasks[3].ID)
	require.NoError(t, err)

	displayed := view.Derive(s.Tasks(), view.Params{Filter: view.FilterCompleted})
	require.Equal(t, []string{"B", "D"}, []string{displayed[0].Title, displayed[1].Title})

	// Move B after D within the filtered view.
	_, moved := reorder.Move(s, displayed, 0, 1)
	require.True(t, moved)

	// B lands where D was; A, C, E keep their relative order.
	require.Equal(t, []string{"A", "C", "D", "B", "E"}, storeTitles(s))
}

func TestMove_SamePositionIsNoOp(t *testing.T) {
	s := newStore(t, "0", "1")
	displayed := view.Derive(s.Tasks(), view.Params{Filter: view.FilterAll})

	_, moved := reorder.Move(s, displayed, 1, 1)
	require.False(t, moved)
}
