package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

// planTaskColumns is the canonical SELECT column list for plan_tasks.
const planTaskColumns = `id, project_id, project_case, parent_id, order_index, name, description,
		assignees, priority, status, start_date, end_date, est_hours, used_hours,
		timesheet_state, created_at, updated_at`

// SQLitePlanTaskRepo implements PlanTaskRepo using a SQLite database.
// Rows are flat; tree shape comes from parent_id and order_index.
type SQLitePlanTaskRepo struct {
	db db.DBTX
}

func NewSQLitePlanTaskRepo(conn db.DBTX) *SQLitePlanTaskRepo {
	return &SQLitePlanTaskRepo{db: conn}
}

func (r *SQLitePlanTaskRepo) Create(ctx context.Context, t *domain.PlanTask) error {
	assignees, err := encodeList(t.Assignees)
	if err != nil {
		return err
	}
	query := `INSERT INTO plan_tasks (` + planTaskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.ProjectCase,
		t.ParentID, // *string: nil becomes SQL NULL
		t.OrderIndex,
		t.Name,
		t.Description,
		assignees,
		string(t.Priority),
		string(t.Status),
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.EstHours,
		t.UsedHours,
		string(t.TimesheetState),
		formatTimestamp(t.CreatedAt),
		formatTimestamp(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan task: %w", err)
	}
	return nil
}

func (r *SQLitePlanTaskRepo) GetByID(ctx context.Context, id string) (*domain.PlanTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planTaskColumns+` FROM plan_tasks WHERE id = ?`, id)
	return scanPlanTask(row)
}

func (r *SQLitePlanTaskRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plan_tasks WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("checking plan task: %w", err)
	}
	return n > 0, nil
}

// ListByProject returns the project's plan tasks flat, ordered so that
// siblings appear in order_index order.
func (r *SQLitePlanTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.PlanTask, error) {
	return r.query(ctx,
		`SELECT `+planTaskColumns+` FROM plan_tasks WHERE project_id = ? ORDER BY order_index, created_at, id`,
		projectID)
}

// ListRoots returns the top-level tasks of every project.
func (r *SQLitePlanTaskRepo) ListRoots(ctx context.Context) ([]*domain.PlanTask, error) {
	return r.query(ctx,
		`SELECT `+planTaskColumns+` FROM plan_tasks WHERE parent_id IS NULL ORDER BY project_id, order_index, id`)
}

func (r *SQLitePlanTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.PlanTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plan tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.PlanTask
	for rows.Next() {
		t, err := scanPlanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan tasks: %w", err)
	}
	return tasks, nil
}

// NextOrderIndex returns the order index that appends after the last sibling
// under parentID (nil for roots).
func (r *SQLitePlanTaskRepo) NextOrderIndex(ctx context.Context, projectID string, parentID *string) (int, error) {
	var next int
	var err error
	if parentID == nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index), -1) + 1 FROM plan_tasks WHERE project_id = ? AND parent_id IS NULL`,
			projectID).Scan(&next)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index), -1) + 1 FROM plan_tasks WHERE parent_id = ?`,
			*parentID).Scan(&next)
	}
	if err != nil {
		return 0, fmt.Errorf("computing next order index: %w", err)
	}
	return next, nil
}

// Update rewrites the mutable fields of a plan task. Tree position is fixed.
func (r *SQLitePlanTaskRepo) Update(ctx context.Context, t *domain.PlanTask) error {
	assignees, err := encodeList(t.Assignees)
	if err != nil {
		return err
	}
	query := `UPDATE plan_tasks SET project_case = ?, name = ?, description = ?, assignees = ?,
		priority = ?, status = ?, start_date = ?, end_date = ?, est_hours = ?, used_hours = ?,
		timesheet_state = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectCase,
		t.Name,
		t.Description,
		assignees,
		string(t.Priority),
		string(t.Status),
		formatDate(t.StartDate),
		formatDate(t.EndDate),
		t.EstHours,
		t.UsedHours,
		string(t.TimesheetState),
		formatTimestamp(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan task: %w", err)
	}
	return requireAffected(res, fmt.Errorf("plan task %s: %w", t.ID, domain.ErrNotFound))
}

// Delete removes a plan task; descendants go with it through the
// parent_id cascade. An unknown id is reported as not found.
func (r *SQLitePlanTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan task: %w", err)
	}
	return requireAffected(res, fmt.Errorf("plan task %s: %w", id, domain.ErrNotFound))
}

// DeleteByProject removes a project's whole plan and reports how many rows
// went.
func (r *SQLitePlanTaskRepo) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plan_tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting plan for project %s: %w", projectID, err)
	}
	return res.RowsAffected()
}

func scanPlanTask(s rowScanner) (*domain.PlanTask, error) {
	var t domain.PlanTask
	var parentID sql.NullString
	var assigneesStr, priorityStr, statusStr, startStr, endStr, stateStr, createdStr, updatedStr string

	err := s.Scan(
		&t.ID, &t.ProjectID, &t.ProjectCase, &parentID, &t.OrderIndex, &t.Name, &t.Description,
		&assigneesStr, &priorityStr, &statusStr, &startStr, &endStr, &t.EstHours, &t.UsedHours,
		&stateStr, &createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan task: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan task: %w", err)
	}

	if parentID.Valid {
		t.ParentID = &parentID.String
	}
	t.Priority = domain.Priority(priorityStr)
	t.Status = domain.Status(statusStr)
	t.TimesheetState = domain.TimesheetState(stateStr)
	if t.Assignees, err = decodeList(assigneesStr); err != nil {
		return nil, fmt.Errorf("plan task %s assignees: %w", t.ID, err)
	}
	if t.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if t.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if t.CreatedAt, err = parseTimestamp(createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTimestamp(updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
