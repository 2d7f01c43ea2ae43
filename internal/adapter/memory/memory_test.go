package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/adapter/memory"
	"tasktracker/internal/core/domain"
)

func seed(t *testing.T, p *memory.Persistence, titles ...string) []domain.Task {
	t.Helper()
	created := make([]domain.Task, 0, len(titles))
	for _, title := range titles {
		task, err := p.Create(context.Background(), domain.Task{Title: title})
		require.NoError(t, err)
		created = append(created, task)
	}
	return created
}

func TestCreateAssignsSequentialIDsAndPrepends(t *testing.T) {
	p := memory.New()
	created := seed(t, p, "Buy milk", "Pay bill")

	require.Equal(t, int64(1), created[0].ID)
	require.Equal(t, int64(2), created[1].ID)

	tasks, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "Pay bill", tasks[0].Title)
	require.Equal(t, "Buy milk", tasks[1].Title)
}

func TestReplaceMissingTaskFails(t *testing.T) {
	p := memory.New()
	err := p.Replace(context.Background(), domain.Task{ID: 999, Title: "Ghost"})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	p := memory.New()
	created := seed(t, p, "Buy milk", "Pay bill")

	require.NoError(t, p.Delete(context.Background(), created[0].ID))
	require.NoError(t, p.Delete(context.Background(), created[0].ID))

	tasks, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, created[1].ID, tasks[0].ID)
}

func TestSaveOrderKeepsUnlistedTasks(t *testing.T) {
	p := memory.New()
	created := seed(t, p, "a", "b", "c")

	// Only reorder a and c; b keeps its relative slot at the tail.
	require.NoError(t, p.SaveOrder(context.Background(), []int64{created[0].ID, created[2].ID}))

	tasks, err := p.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "a", tasks[0].Title)
	require.Equal(t, "c", tasks[1].Title)
	require.Equal(t, "b", tasks[2].Title)
}

func TestListReturnsACopy(t *testing.T) {
	p := memory.New()
	seed(t, p, "Buy milk")

	tasks, err := p.List(context.Background())
	require.NoError(t, err)
	tasks[0].Title = "mutated"

	again, err := p.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Buy milk", again[0].Title)
}
