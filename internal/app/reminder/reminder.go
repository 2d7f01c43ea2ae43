// Package reminder builds human-readable due-date summaries and fires them
// on a cron schedule so the UI can surface what is overdue or due today.
package reminder

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
)

// Summary reports the incomplete tasks that are overdue or due on the given
// day, nearest deadline first. Empty string when there is nothing to say.
func Summary(tasks []domain.Task, now time.Time) string {
	today := domain.DateOnly(now)

	var overdue, dueToday []domain.Task
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		due := domain.DateOnly(*t.DueDate)
		switch {
		case due.Before(today):
			overdue = append(overdue, t)
		case due.Equal(today):
			dueToday = append(dueToday, t)
		}
	}
	if len(overdue) == 0 && len(dueToday) == 0 {
		return ""
	}

	byDeadline := func(ts []domain.Task) {
		sort.SliceStable(ts, func(i, j int) bool {
			return ts[i].DueDate.Before(*ts[j].DueDate)
		})
	}
	byDeadline(overdue)
	byDeadline(dueToday)

	var b strings.Builder
	if len(overdue) > 0 {
		fmt.Fprintf(&b, "%d overdue", len(overdue))
	}
	if len(dueToday) > 0 {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d due today", len(dueToday))
	}
	b.WriteString(": ")

	names := make([]string, 0, len(overdue)+len(dueToday))
	for _, t := range append(overdue, dueToday...) {
		names = append(names, t.Title)
	}
	const maxNamed = 3
	if len(names) > maxNamed {
		names = append(names[:maxNamed], fmt.Sprintf("and %d more", len(names)-maxNamed))
	}
	b.WriteString(strings.Join(names, ", "))
	return b.String()
}

// Scheduler wraps cron-based summary delivery.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers fn on the given cron spec (standard 5-field format,
// @every syntax accepted) and returns a stopped scheduler.
func NewScheduler(spec string, fn func()) (*Scheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, fn); err != nil {
		return nil, fmt.Errorf("reminder spec %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	zap.L().Info("reminder scheduler started")
}

// Stop waits for any in-flight job before returning.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
