package remote

import (
	"time"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
)

// taskPayload is the wire shape the external task API speaks.
type taskPayload struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    string  `json:"priority,omitempty"`
	Completed   bool    `json:"completed"`
	CreatedAt   *string `json:"created_at,omitempty"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func toPayload(t domain.Task) taskPayload {
	p := taskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
	}
	if t.DueDate != nil {
		value := t.DueDate.Format("2006-01-02")
		p.DueDate = &value
	}
	return p
}

func toDomain(p taskPayload) domain.Task {
	t := domain.Task{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Priority:    domain.Priority(p.Priority),
		Completed:   p.Completed,
	}
	if p.DueDate != nil {
		// Some deployments send timestamps, some bare dates.
		raw := *p.DueDate
		if len(raw) > 10 {
			raw = raw[:10]
		}
		if due, err := time.Parse("2006-01-02", raw); err == nil {
			t.DueDate = &due
		} else {
			zap.L().Debug("dropping malformed due date",
				zap.Int64("task_id", p.ID),
				zap.String("due_date", *p.DueDate),
			)
		}
	}
	if p.CreatedAt != nil {
		if created, err := time.Parse(time.RFC3339, *p.CreatedAt); err == nil {
			t.CreatedAt = created
		}
	}
	if p.UpdatedAt != nil {
		if updated, err := time.Parse(time.RFC3339, *p.UpdatedAt); err == nil {
			t.UpdatedAt = updated
		}
	}
	return t
}
