// Package store owns the authoritative ordered sequence of tasks. All
// mutations are synchronous; persistence is an asynchronous side effect the
// caller drives through a ports.TaskPersistence, rolling the store back via
// Restore when the side effect fails.
package store

import (
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
)

// Snapshot is a memento of the full canonical sequence, taken before every
// mutation. Restoring one is the single rollback operation the store offers.
type Snapshot struct {
	tasks []domain.Task
}

type Store struct {
	tasks []domain.Task
	rules domain.Rules
	now   func() time.Time
	newID func() int64
}

type Option func(*Store)

// WithClock overrides the wall clock, used by validation and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDFunc overrides provisional ID assignment for new tasks.
func WithIDFunc(newID func() int64) Option {
	return func(s *Store) { s.newID = newID }
}

func New(rules domain.Rules, opts ...Option) *Store {
	s := &Store{
		rules: rules,
		now:   time.Now,
	}
	s.newID = func() int64 { return s.now().UnixMilli() }
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load seeds the sequence from durable storage. Called once at startup.
func (s *Store) Load(tasks []domain.Task) {
	s.tasks = append(s.tasks[:0], tasks...)
	zap.L().Info("store loaded", zap.Int("tasks", len(tasks)))
}

func (s *Store) Len() int { return len(s.tasks) }

// Tasks returns references into the canonical sequence, in canonical order.
// Callers must treat the tasks as read-only; mutations go through the store.
func (s *Store) Tasks() []*domain.Task {
	refs := make([]*domain.Task, len(s.tasks))
	for i := range s.tasks {
		refs[i] = &s.tasks[i]
	}
	return refs
}

// All returns a copy of the canonical sequence, for persistence payloads.
func (s *Store) All() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id int64) (domain.Task, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return domain.Task{}, false
}

// IndexOf returns the canonical index of id, or -1.
func (s *Store) IndexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// IDs returns the canonical order as a flat id list.
func (s *Store) IDs() []int64 {
	ids := make([]int64, len(s.tasks))
	for i := range s.tasks {
		ids[i] = s.tasks[i].ID
	}
	return ids
}

func (s *Store) snapshot() Snapshot {
	tasks := make([]domain.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return Snapshot{tasks: tasks}
}

// Restore rewinds the store to a previously taken snapshot. It is the
// reconciliation half of the optimistic-update contract: apply locally,
// persist asynchronously, restore on persistence failure.
func (s *Store) Restore(snap Snapshot) {
	s.tasks = snap.tasks
	zap.L().Debug("store restored", zap.Int("tasks", len(s.tasks)))
}

// Add validates the draft, normalizes the title and prepends a new task.
// No mutation happens when validation fails.
func (s *Store) Add(d domain.Draft) (domain.Task, Snapshot, error) {
	if err := domain.Validate(d, s.rules, s.now()); err != nil {
		return domain.Task{}, Snapshot{}, err
	}

	snap := s.snapshot()
	now := s.now()
	t := domain.Task{
		ID:          s.newID(),
		Title:       domain.NormalizeTitle(d.Title),
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append([]domain.Task{t}, s.tasks...)
	return t, snap, nil
}

// Adopt replaces a provisionally-identified task with its canonical
// representation once the persistence layer has assigned the real identity.
func (s *Store) Adopt(provisionalID int64, canonical domain.Task) {
	i := s.IndexOf(provisionalID)
	if i < 0 {
		return
	}
	s.tasks[i] = canonical
}

// ToggleComplete flips the completed flag of the identified task.
func (s *Store) ToggleComplete(id int64) (domain.Task, Snapshot, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return domain.Task{}, Snapshot{}, domain.ErrTaskNotFound
	}
	snap := s.snapshot()
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.tasks[i].UpdatedAt = s.now()
	return s.tasks[i], snap, nil
}

// Update replaces the editable fields of the identified task, under the same
// validation rules as Add. Identity and creation time are preserved.
func (s *Store) Update(id int64, d domain.Draft) (domain.Task, Snapshot, error) {
	i := s.IndexOf(id)
	if i < 0 {
		return domain.Task{}, Snapshot{}, domain.ErrTaskNotFound
	}
	if err := domain.Validate(d, s.rules, s.now()); err != nil {
		return domain.Task{}, Snapshot{}, err
	}

	snap := s.snapshot()
	t := &s.tasks[i]
	t.Title = domain.NormalizeTitle(d.Title)
	t.Description = d.Description
	t.DueDate = d.DueDate
	t.Priority = d.Priority
	t.Completed = d.Completed
	t.UpdatedAt = s.now()
	return *t, snap, nil
}

// Remove deletes the identified task. Removing an absent id is a no-op.
func (s *Store) Remove(id int64) (Snapshot, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return Snapshot{}, false
	}
	snap := s.snapshot()
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return snap, true
}

// ClearCompleted removes every completed task and reports how many went.
func (s *Store) ClearCompleted() (Snapshot, int) {
	snap := s.snapshot()
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	return snap, removed
}

// ClearAll removes every task. Confirmation is the caller's responsibility.
func (s *Store) ClearAll() (Snapshot, int) {
	snap := s.snapshot()
	removed := len(s.tasks)
	s.tasks = nil
	return snap, removed
}

// Reorder moves the task at src to dst within the canonical sequence,
// shifting the tasks in between. Out-of-bounds indices are a no-op.
func (s *Store) Reorder(src, dst int) (Snapshot, bool) {
	n := len(s.tasks)
	if src < 0 || src >= n || dst < 0 || dst >= n || src == dst {
		return Snapshot{}, false
	}
	snap := s.snapshot()
	moved := s.tasks[src]
	rest := append(s.tasks[:src:src], s.tasks[src+1:]...)
	s.tasks = append(rest[:dst:dst], append([]domain.Task{moved}, rest[dst:]...)...)
	return snap, true
}
