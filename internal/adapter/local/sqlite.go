// Package local persists the task collection to an embedded sqlite database,
// the durable-storage analog of the browser's local storage. Canonical order
// survives restarts through the position column.
package local

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	due_date    TEXT    NULL,
	priority    TEXT    NOT NULL DEFAULT '',
	completed   INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT    NOT NULL,
	updated_at  TEXT    NOT NULL
);
`

const listTasksQuery = `
SELECT id, title, description, due_date, priority, completed, position, created_at, updated_at
FROM tasks
ORDER BY position ASC, id DESC;
`

type Persistence struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	DueDate     sql.NullString `db:"due_date"`
	Priority    string         `db:"priority"`
	Completed   bool           `db:"completed"`
	Position    int            `db:"position"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

var _ ports.TaskPersistence = (*Persistence)(nil)

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Persistence{db: db}, nil
}

func (p *Persistence) List(ctx context.Context) ([]domain.Task, error) {
	var rows []taskRow
	if err := p.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapRowToTask(row))
	}
	return tasks, nil
}

// Create inserts at the front of the canonical order and returns the task
// with its database-assigned id.
func (p *Persistence) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	res, err := p.db.ExecContext(ctx, `
INSERT INTO tasks (title, description, due_date, priority, completed, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MIN(position), 1) - 1 FROM tasks), ?, ?)`,
		task.Title,
		task.Description,
		dueDateValue(task.DueDate),
		string(task.Priority),
		task.Completed,
		task.CreatedAt.Format(time.RFC3339),
		task.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = id
	return task, nil
}

func (p *Persistence) Replace(ctx context.Context, task domain.Task) error {
	res, err := p.db.ExecContext(ctx, `
UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, completed = ?, updated_at = ?
WHERE id = ?`,
		task.Title,
		task.Description,
		dueDateValue(task.DueDate),
		string(task.Priority),
		task.Completed,
		task.UpdatedAt.Format(time.RFC3339),
		task.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (p *Persistence) Delete(ctx context.Context, id int64) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	return err
}

// SaveOrder rewrites every position to match the given id sequence.
func (p *Persistence) SaveOrder(ctx context.Context, ids []int64) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET position = ? WHERE id = ?`, pos, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (p *Persistence) Close() error { return p.db.Close() }

func dueDateValue(due *time.Time) any {
	if due == nil {
		return nil
	}
	return due.Format("2006-01-02")
}

func mapRowToTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    domain.Priority(row.Priority),
		Completed:   row.Completed,
	}
	if row.DueDate.Valid {
		if due, err := time.Parse("2006-01-02", row.DueDate.String); err == nil {
			task.DueDate = &due
		}
	}
	if created, err := time.Parse(time.RFC3339, row.CreatedAt); err == nil {
		task.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, row.UpdatedAt); err == nil {
		task.UpdatedAt = updated
	}
	return task
}
