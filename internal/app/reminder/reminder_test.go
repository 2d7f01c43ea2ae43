package reminder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasktracker/internal/app/reminder"
	"tasktracker/internal/core/domain"
)

var now = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func task(title string, due time.Time, completed bool) domain.Task {
	return domain.Task{Title: title, DueDate: &due, Completed: completed}
}

func TestSummary_EmptyWhenNothingDue(t *testing.T) {
	tomorrow := now.AddDate(0, 0, 1)
	tasks := []domain.Task{
		{Title: "undated"},
		task("later", tomorrow, false),
		task("done today", now, true),
	}
	require.Empty(t, reminder.Summary(tasks, now))
}

func TestSummary_ListsOverdueBeforeDueToday(t *testing.T) {
	tasks := []domain.Task{
		task("due today", now, false),
		task("very late", now.AddDate(0, 0, -5), false),
		task("late", now.AddDate(0, 0, -1), false),
	}
	got := reminder.Summary(tasks, now)
	require.Equal(t, "2 overdue, 1 due today: very late, late, due today", got)
}

func TestSummary_TruncatesLongLists(t *testing.T) {
	var tasks []domain.Task
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		tasks = append(tasks, task(title, now, false))
	}
	got := reminder.Summary(tasks, now)
	require.Equal(t, "5 due today: a, b, c, and 2 more", got)
}

func TestNewScheduler_RejectsBadSpec(t *testing.T) {
	_, err := reminder.NewScheduler("not a cron spec", func() {})
	require.Error(t, err)
}

func TestScheduler_FiresOnSchedule(t *testing.T) {
	fired := make(chan struct{}, 1)
	s, err := reminder.NewScheduler("@every 1s", func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduler never fired")
	}
}
