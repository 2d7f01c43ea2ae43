// Package session holds the single in-progress task edit: the target id and
// a draft copy of its editable fields.
package session

import (
	"tasktracker/internal/app/store"
	"tasktracker/internal/core/domain"
)

type Session struct {
	active bool
	taskID int64
	draft  domain.Draft
}

// Begin snapshots the task's fields into a fresh draft. Any unsaved prior
// draft is discarded without confirmation; at most one edit is active.
func (s *Session) Begin(t domain.Task) {
	s.active = true
	s.taskID = t.ID
	s.draft = domain.DraftOf(t)
}

func (s *Session) Active() bool { return s.active }

func (s *Session) TaskID() int64 { return s.taskID }

// Draft exposes the mutable draft for form binding. Nil when inactive.
func (s *Session) Draft() *domain.Draft {
	if !s.active {
		return nil
	}
	return &s.draft
}

// Cancel discards the draft.
func (s *Session) Cancel() {
	s.active = false
	s.taskID = 0
	s.draft = domain.Draft{}
}

// Forget cancels the session if id is its subject. Called after a task is
// removed so the session never points at a destroyed identity.
func (s *Session) Forget(id int64) {
	if s.active && s.taskID == id {
		s.Cancel()
	}
}

// Commit validates the draft exactly as the store validates a new task and
// applies it via Update. On validation failure the session stays open so the
// form can surface the per-field errors; on success it is cleared.
func (s *Session) Commit(st *store.Store) (domain.Task, store.Snapshot, error) {
	if !s.active {
		return domain.Task{}, store.Snapshot{}, domain.ErrTaskNotFound
	}
	t, snap, err := st.Update(s.taskID, s.draft)
	if err != nil {
		return domain.Task{}, store.Snapshot{}, err
	}
	s.Cancel()
	return t, snap, nil
}
