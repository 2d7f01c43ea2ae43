// Package view derives the displayed task sequence from the canonical store
// order plus the current filter, search, sort and grouping parameters. It is
// pure: it never mutates the store and always returns references, not copies.
package view

import (
	"sort"
	"strings"
	"time"

	"tasktracker/internal/core/domain"
)

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

type Params struct {
	Filter         Filter
	Search         string
	Sort           SortDirection
	GroupByDueDate bool
}

// Bucket is a group of tasks sharing an exact due date. Date is nil for the
// undated bucket, which always sorts last.
type Bucket struct {
	Date  *time.Time
	Label string
	Tasks []*domain.Task
}

func matches(t *domain.Task, p Params) bool {
	switch p.Filter {
	case FilterActive:
		if t.Completed {
			return false
		}
	case FilterCompleted:
		if !t.Completed {
			return false
		}
	}
	if term := strings.TrimSpace(p.Search); term != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// Derive returns the displayed subsequence: filter predicate AND search
// predicate, in the chosen sort order, else store order.
func Derive(tasks []*domain.Task, p Params) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, p) {
			out = append(out, t)
		}
	}

	switch p.Sort {
	case SortAscending:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case SortDescending:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) > strings.ToLower(out[j].Title)
		})
	}
	return out
}

// DeriveGroups buckets the displayed sequence by exact due date, buckets in
// ascending date order with undated tasks last. Within a bucket incomplete
// tasks precede completed ones, otherwise store order is preserved.
func DeriveGroups(tasks []*domain.Task, p Params) []Bucket {
	displayed := Derive(tasks, p)

	byKey := make(map[string]*Bucket)
	var order []string
	for _, t := range displayed {
		key := ""
		if t.DueDate != nil {
			key = t.DueDate.Format("2006-01-02")
		}
		b, ok := byKey[key]
		if !ok {
			b = &Bucket{Label: key}
			if t.DueDate != nil {
				d := domain.DateOnly(*t.DueDate)
				b.Date = &d
			} else {
				b.Label = "no due date"
			}
			byKey[key] = b
			order = append(order, key)
		}
		b.Tasks = append(b.Tasks, t)
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		b := byKey[key]
		sort.SliceStable(b.Tasks, func(i, j int) bool {
			return !b.Tasks[i].Completed && b.Tasks[j].Completed
		})
		buckets = append(buckets, *b)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		switch {
		case buckets[i].Date == nil:
			return false
		case buckets[j].Date == nil:
			return true
		default:
			return buckets[i].Date.Before(*buckets[j].Date)
		}
	})
	return buckets
}

// CompletionRatio is completed over total, 0 for an empty sequence.
func CompletionRatio(tasks []*domain.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks))
}
