package domain

import (
	"fmt"
	"strings"
	"time"
)

// Field names reported by Validate. They double as form column identifiers.
const (
	FieldTitle    = "title"
	FieldDueDate  = "due_date"
	FieldPriority = "priority"
)

// Message keys resolved through pkg/translator.
const (
	MsgTitleRequired      = "titleRequired"
	MsgDueDateRequired    = "dueDateRequired"
	MsgDueDatePast        = "dueDatePast"
	MsgDueDateOutsideYear = "dueDateOutsideYear"
	MsgPriorityRequired   = "priorityRequired"
	MsgPriorityUnknown    = "priorityUnknown"
)

// Rules enumerates which optional task fields a given deployment requires.
// It is the single configuration point that replaces per-variant validation.
type Rules struct {
	RequireDueDate  bool
	RequirePriority bool
}

type FieldError struct {
	Field      string
	MessageKey string
}

// ValidationError lists failing fields in form order, first failure first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		keys = append(keys, fmt.Sprintf("%s: %s", f.Field, f.MessageKey))
	}
	return "validation failed: " + strings.Join(keys, ", ")
}

// ByField returns field name to message key for inline form display.
func (e *ValidationError) ByField() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.MessageKey
		}
	}
	return m
}

// First returns the first failing field.
func (e *ValidationError) First() FieldError {
	if len(e.Fields) == 0 {
		return FieldError{}
	}
	return e.Fields[0]
}

// Validate checks a draft against the configured rules. It returns nil when
// the draft is acceptable; otherwise a *ValidationError naming every failing
// field. The same function serves both the add and the edit path.
func Validate(d Draft, rules Rules, now time.Time) error {
	var verr ValidationError

	if strings.TrimSpace(d.Title) == "" {
		verr.Fields = append(verr.Fields, FieldError{FieldTitle, MsgTitleRequired})
	}

	switch {
	case d.DueDate == nil:
		if rules.RequireDueDate {
			verr.Fields = append(verr.Fields, FieldError{FieldDueDate, MsgDueDateRequired})
		}
	case DateOnly(*d.DueDate).Before(DateOnly(now)):
		verr.Fields = append(verr.Fields, FieldError{FieldDueDate, MsgDueDatePast})
	case d.DueDate.Year() != now.Year():
		verr.Fields = append(verr.Fields, FieldError{FieldDueDate, MsgDueDateOutsideYear})
	}

	switch {
	case d.Priority == PriorityNone:
		if rules.RequirePriority {
			verr.Fields = append(verr.Fields, FieldError{FieldPriority, MsgPriorityRequired})
		}
	case !d.Priority.Known():
		verr.Fields = append(verr.Fields, FieldError{FieldPriority, MsgPriorityUnknown})
	}

	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}
