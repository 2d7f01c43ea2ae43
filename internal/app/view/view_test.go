package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/app/view"
	"tasktracker/internal/core/domain"
)

func refs(tasks ...domain.Task) []*domain.Task {
	out := make([]*domain.Task, len(tasks))
	for i := range tasks {
		out[i] = &tasks[i]
	}
	return out
}

func titlesOf(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestDerive_CompletedFilterPreservesStoreOrder(t *testing.T) {
	tasks := refs(
		domain.Task{ID: 1, Title: "A", Completed: true},
		domain.Task{ID: 2, Title: "B"},
		domain.Task{ID: 3, Title: "C", Completed: true},
	)
	got := view.Derive(tasks, view.Params{Filter: view.FilterCompleted})
	require.Equal(t, []string{"A", "C"}, titlesOf(got))

	got = view.Derive(tasks, view.Params{Filter: view.FilterActive})
	require.Equal(t, []string{"B"}, titlesOf(got))
}

func TestDerive_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	tasks := refs(
		domain.Task{ID: 1, Title: "Buy milk"},
		domain.Task{ID: 2, Title: "Pay bill"},
	)
	got := view.Derive(tasks, view.Params{Filter: view.FilterAll, Search: "mi"})
	require.Equal(t, []string{"Buy milk"}, titlesOf(got))

	got = view.Derive(tasks, view.Params{Filter: view.FilterAll, Search: "MILK"})
	require.Equal(t, []string{"Buy milk"}, titlesOf(got))
}

func TestDerive_SortByTitle(t *testing.T) {
	tasks := refs(
		domain.Task{ID: 1, Title: "banana"},
		domain.Task{ID: 2, Title: "Apple"},
		domain.Task{ID: 3, Title: "cherry"},
	)
	got := view.Derive(tasks, view.Params{Filter: view.FilterAll, Sort: view.SortAscending})
	require.Equal(t, []string{"Apple", "banana", "cherry"}, titlesOf(got))

	got = view.Derive(tasks, view.Params{Filter: view.FilterAll, Sort: view.SortDescending})
	require.Equal(t, []string{"cherry", "banana", "Apple"}, titlesOf(got))
}

func TestDerive_ReturnsReferencesNotCopies(t *testing.T) {
	tasks := refs(domain.Task{ID: 1, Title: "Same"})
	got := view.Derive(tasks, view.Params{Filter: view.FilterAll})
	require.Same(t, tasks[0], got[0])
}

func TestDeriveGroups_BucketsByDueDate(t *testing.T) {
	d1 := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	tasks := refs(
		domain.Task{ID: 1, Title: "later", DueDate: &d2},
		domain.Task{ID: 2, Title: "done early", DueDate: &d1, Completed: true},
		domain.Task{ID: 3, Title: "early", DueDate: &d1},
		domain.Task{ID: 4, Title: "undated"},
	)

	buckets := view.DeriveGroups(tasks, view.Params{Filter: view.FilterAll})
	require.Len(t, buckets, 3)

	require.Equal(t, "2026-06-10", buckets[0].Label)
	// Incomplete before completed within the bucket.
	require.Equal(t, []string{"early", "done early"}, titlesOf(buckets[0].Tasks))

	require.Equal(t, "2026-06-20", buckets[1].Label)
	require.Nil(t, buckets[2].Date)
	require.Equal(t, []string{"undated"}, titlesOf(buckets[2].Tasks))
}

func TestCompletionRatio(t *testing.T) {
	require.Zero(t, view.CompletionRatio(nil))

	tasks := refs(
		domain.Task{ID: 1, Completed: true},
		domain.Task{ID: 2},
		domain.Task{ID: 3},
		domain.Task{ID: 4, Completed: true},
	)
	require.InDelta(t, 0.5, view.CompletionRatio(tasks), 1e-9)
}
