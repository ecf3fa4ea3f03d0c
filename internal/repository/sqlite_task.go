package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

const taskColumns = `t.id, t.name, t.project_id, t.status, t.priority, t.assigned_to, t.due_date, t.created_at, t.updated_at`

// UnknownProjectName labels tasks whose project no longer exists.
const UnknownProjectName = "Unknown Project"

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, name, project_id, status, priority, assigned_to, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.ProjectID,
		string(t.Status),
		string(t.Priority),
		t.AssignedTo,
		formatDate(t.DueDate),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns every task with its project name, in insertion order.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]TaskWithProject, error) {
	return r.query(ctx, `SELECT `+taskColumns+`, COALESCE(p.name, '')
		FROM tasks t LEFT JOIN projects p ON p.id = t.project_id
		ORDER BY t.created_at, t.id`)
}

// ListOpen returns tasks that are not Done, soonest due first.
func (r *SQLiteTaskRepo) ListOpen(ctx context.Context) ([]TaskWithProject, error) {
	return r.query(ctx, `SELECT `+taskColumns+`, COALESCE(p.name, '')
		FROM tasks t LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.status != ?
		ORDER BY t.due_date, t.id`, string(domain.StatusDone))
}

func (r *SQLiteTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTimestamp(time.Now()), id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return requireAffected(res, fmt.Errorf("task %s: %w", id, domain.ErrNotFound))
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, fmt.Errorf("task %s: %w", id, domain.ErrNotFound))
}

func (r *SQLiteTaskRepo) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks for project %s: %w", projectID, err)
	}
	return res.RowsAffected()
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]TaskWithProject, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []TaskWithProject
	for rows.Next() {
		var projectName string
		t, err := scanTask(rows, &projectName)
		if err != nil {
			return nil, err
		}
		if projectName == "" {
			projectName = UnknownProjectName
		}
		out = append(out, TaskWithProject{Task: *t, ProjectName: projectName})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

func scanTask(s rowScanner, extra ...any) (*domain.Task, error) {
	var t domain.Task
	var statusStr, priorityStr, dueStr, createdStr, updatedStr string

	dest := []any{&t.ID, &t.Name, &t.ProjectID, &statusStr, &priorityStr, &t.AssignedTo,
		&dueStr, &createdStr, &updatedStr}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.Status(statusStr)
	t.Priority = domain.Priority(priorityStr)
	var err error
	if t.DueDate, err = parseDate(dueStr); err != nil {
		return nil, fmt.Errorf("parsing due_date: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
