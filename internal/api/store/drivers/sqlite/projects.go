package sqlite

import (
	"context"
	"database/sql"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
)

type projectsRepo struct {
	db dbtx
}

// Every query filters on owner_id so a project belonging to someone else scans
// the same as one that was never created.
const projectViewColumns = `
	p.id, p.title, p.description, p.owner_id,
	u.first_name || ' ' || u.last_name AS owner_name,
	p.created_at,
	(SELECT COUNT(*) FROM tasks t WHERE t.project_id = p.id) AS task_count`

func (r *projectsRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.ProjectView, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+projectViewColumns+`
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		WHERE p.owner_id = ?
		ORDER BY p.created_at ASC, p.id ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ProjectView{}
	for rows.Next() {
		pv, err := scanProjectView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, rows.Err()
}

func (r *projectsRepo) GetByID(ctx context.Context, projectID, ownerID string) (domain.ProjectView, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+projectViewColumns+`
		FROM projects p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = ? AND p.owner_id = ?`,
		projectID, ownerID)

	pv, err := scanProjectView(row)
	if err != nil {
		return domain.ProjectView{}, mapNotFound(err)
	}
	return pv, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, title, description, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Title, mapStringNull(p.Description), p.OwnerID, p.CreatedAt)
	return err
}

func (r *projectsRepo) UpdateProject(ctx context.Context, projectID, ownerID, title, description string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET title = ?, description = ?
		WHERE id = ? AND owner_id = ?`,
		title, mapStringNull(description), projectID, ownerID)
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

func (r *projectsRepo) DeleteProject(ctx context.Context, projectID, ownerID string) (bool, error) {
	// tasks go with the project via ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND owner_id = ?`,
		projectID, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProjectView(row rowScanner) (domain.ProjectView, error) {
	var (
		pv   domain.ProjectView
		desc sql.NullString
	)
	err := row.Scan(&pv.ID, &pv.Title, &desc, &pv.OwnerID, &pv.OwnerName, &pv.CreatedAt, &pv.TaskCount)
	if err != nil {
		return domain.ProjectView{}, err
	}
	pv.Description = mapNullString(desc)
	return pv, nil
}
