package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
)

type tasksRepo struct {
	db dbtx
}

// Tasks carry no owner column; ownership is resolved through the parent
// project on every query.
const taskViewColumns = `
	t.id, t.title, t.due_date, t.completed, t.project_id,
	p.title AS project_title,
	t.created_at`

func (r *tasksRepo) ListByProject(ctx context.Context, projectID, ownerID string) ([]domain.TaskView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+taskViewColumns+`
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.project_id = ? AND p.owner_id = ?
		ORDER BY t.created_at ASC, t.id ASC`,
		projectID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.TaskView{}
	for rows.Next() {
		tv, err := scanTaskView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tv)
	}
	return out, rows.Err()
}

func (r *tasksRepo) GetByID(ctx context.Context, taskID, ownerID string) (domain.TaskView, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+taskViewColumns+`
		FROM tasks t
		JOIN projects p ON p.id = t.project_id
		WHERE t.id = ? AND p.owner_id = ?`,
		taskID, ownerID)

	tv, err := scanTaskView(row)
	if err != nil {
		return domain.TaskView{}, mapNotFound(err)
	}
	return tv, nil
}

func (r *tasksRepo) CreateTask(ctx context.Context, t domain.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, due_date, completed, project_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, mapOptionalTime(t.DueDate), t.Completed, t.ProjectID, t.CreatedAt)
	return err
}

func (r *tasksRepo) UpdateTask(ctx context.Context, taskID, ownerID, title string, dueDate *time.Time, completed bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, due_date = ?, completed = ?
		WHERE id = ?
		  AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		title, mapOptionalTime(dueDate), completed, taskID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, taskID, ownerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE id = ?
		  AND project_id IN (SELECT id FROM projects WHERE owner_id = ?)`,
		taskID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanTaskView(row rowScanner) (domain.TaskView, error) {
	var (
		tv  domain.TaskView
		due sql.NullTime
	)
	err := row.Scan(&tv.ID, &tv.Title, &due, &tv.Completed, &tv.ProjectID, &tv.ProjectTitle, &tv.CreatedAt)
	if err != nil {
		return domain.TaskView{}, err
	}
	tv.DueDate = mapNullTimePtr(due)
	return tv, nil
}
