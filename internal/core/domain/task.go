package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Known() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft carries candidate field values before they are validated and
// applied, either for a new task or for an in-progress edit.
type Draft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Completed   bool
}

// DraftOf snapshots a task's editable fields.
func DraftOf(t Task) Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Completed:   t.Completed,
	}
}

// NormalizeTitle trims surrounding whitespace and upper-cases the first rune.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(title)
	return string(unicode.ToUpper(r)) + title[size:]
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
