package ports

import (
	"context"

	"tasktracker/internal/core/domain"
)

// TaskPersistence is the durable side effect behind every store mutation.
// Implementations: the remote task API client, the local sqlite adapter,
// and an in-memory adapter for tests and ephemeral runs.
type TaskPersistence interface {
	List(ctx context.Context) ([]domain.Task, error)
	// Create stores a new task and returns its canonical representation;
	// the returned ID may differ from the provisional one assigned locally.
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Replace(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id int64) error
	// SaveOrder persists the canonical sequence after a reorder.
	SaveOrder(ctx context.Context, ids []int64) error
	Close() error
}

// CredentialStore supplies and persists the bearer credential attached to
// remote task API calls. An empty token means no one is logged in.
type CredentialStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}
