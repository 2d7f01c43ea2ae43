// Package reorder translates a move gesture expressed in displayed-list
// positions into a mutation of the canonical store order. Displayed positions
// are mapped back to canonical indices by task id before the store is
// touched; reindexing the canonical sequence with view indices corrupts the
// order of hidden tasks whenever a filter, search or sort is active.
package reorder

import (
	"tasktracker/internal/app/store"
	"tasktracker/internal/core/domain"
)

// Move relocates the task at srcDisplayed to dstDisplayed within the
// displayed sequence and reconciles the change into the store. A negative or
// out-of-range destination means the gesture ended outside any drop target
// and is ignored. Returns the pre-mutation snapshot and whether anything moved.
func Move(st *store.Store, displayed []*domain.Task, srcDisplayed, dstDisplayed int) (store.Snapshot, bool) {
	n := len(displayed)
	if srcDisplayed < 0 || srcDisplayed >= n || dstDisplayed < 0 || dstDisplayed >= n {
		return store.Snapshot{}, false
	}
	if srcDisplayed == dstDisplayed {
		return store.Snapshot{}, false
	}

	src := st.IndexOf(displayed[srcDisplayed].ID)
	dst := st.IndexOf(displayed[dstDisplayed].ID)
	if src < 0 || dst < 0 {
		return store.Snapshot{}, false
	}
	return st.Reorder(src, dst)
}
