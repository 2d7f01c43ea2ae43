// Package memory is an ephemeral TaskPersistence used in memory storage mode
// and as a lightweight double in tests.
package memory

import (
	"context"
	"sync"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type Persistence struct {
	mu     sync.Mutex
	tasks  []domain.Task
	nextID int64
}

var _ ports.TaskPersistence = (*Persistence)(nil)

func New() *Persistence {
	return &Persistence{nextID: 1}
}

func (p *Persistence) List(ctx context.Context) ([]domain.Task, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Task, len(p.tasks))
	copy(out, p.tasks)
	return out, nil
}

func (p *Persistence) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	task.ID = p.nextID
	p.nextID++
	p.tasks = append([]domain.Task{task}, p.tasks...)
	return task, nil
}

func (p *Persistence) Replace(ctx context.Context, task domain.Task) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == task.ID {
			p.tasks[i] = task
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (p *Persistence) Delete(ctx context.Context, id int64) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (p *Persistence) SaveOrder(ctx context.Context, ids []int64) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	byID := make(map[int64]domain.Task, len(p.tasks))
	for _, t := range p.tasks {
		byID[t.ID] = t
	}
	ordered := make([]domain.Task, 0, len(p.tasks))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
			delete(byID, id)
		}
	}
	for _, t := range p.tasks {
		if _, left := byID[t.ID]; left {
			ordered = append(ordered, t)
		}
	}
	p.tasks = ordered
	return nil
}

func (p *Persistence) Close() error { return nil }
