package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
	"github.com/quollsoft/projecthub/pkg/idx"
	"github.com/quollsoft/projecthub/pkg/slogx"
)

const taskTitleMaxLen = 200

// TasksService is the authorization-scoped surface for tasks. Tasks have no
// owner of their own; every check resolves through the parent project.
type TasksService struct {
	Store store.Store
}

// ListByProject returns the tasks of an owned project. A project the caller
// does not own lists exactly like one that does not exist: empty.
func (s *TasksService) ListByProject(ctx context.Context, projectID, userID string) ([]domain.TaskView, error) {
	return s.Store.Tasks().ListByProject(ctx, projectID, userID)
}

// Get returns a single task when the caller owns its project.
func (s *TasksService) Get(ctx context.Context, taskID, userID string) (domain.TaskView, error) {
	tv, err := s.Store.Tasks().GetByID(ctx, taskID, userID)
	if err != nil {
		return domain.TaskView{}, mapAccess(err)
	}
	return tv, nil
}

// Create inserts a task into an owned project. The ownership check and the
// insert share one transaction so the parent cannot change hands between
// them; a foreign project is ErrAccessDenied with no row written.
func (s *TasksService) Create(ctx context.Context, userID, projectID, title string, dueDate *time.Time) (domain.TaskView, error) {
	l := slogx.FromContext(ctx)

	title = strings.TrimSpace(title)
	if verr := validateTaskFields(title); verr != nil {
		return domain.TaskView{}, verr
	}

	task := domain.Task{
		ID:        idx.New().String(),
		Title:     title,
		DueDate:   dueDate,
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}

	var tv domain.TaskView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Projects().GetByID(ctx, projectID, userID); err != nil {
			return mapAccess(err)
		}
		if err := tx.Tasks().CreateTask(ctx, task); err != nil {
			return err
		}

		var err error
		tv, err = tx.Tasks().GetByID(ctx, task.ID, userID)
		return err
	})
	if err != nil {
		return domain.TaskView{}, err
	}

	l.Info("task created", "task_id", task.ID, "project_id", projectID, "user_id", userID)

	return tv, nil
}

// Update rewrites title, due date and completion state; ownership is
// re-resolved through the project join at update time.
func (s *TasksService) Update(ctx context.Context, taskID, userID, title string, dueDate *time.Time, completed bool) (domain.TaskView, error) {
	title = strings.TrimSpace(title)
	if verr := validateTaskFields(title); verr != nil {
		return domain.TaskView{}, verr
	}

	if err := s.Store.Tasks().UpdateTask(ctx, taskID, userID, title, dueDate, completed); err != nil {
		return domain.TaskView{}, mapAccess(err)
	}
	return s.Get(ctx, taskID, userID)
}

// Delete removes an owned task. Reports whether anything was deleted.
func (s *TasksService) Delete(ctx context.Context, taskID, userID string) (bool, error) {
	l := slogx.FromContext(ctx)

	deleted, err := s.Store.Tasks().DeleteTask(ctx, taskID, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		l.Info("task deleted", "task_id", taskID, "user_id", userID)
	}
	return deleted, nil
}

func validateTaskFields(title string) *ValidationError {
	var problems []string

	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		problems = append(problems, "title is required")
	case n > taskTitleMaxLen:
		problems = append(problems, "title must be at most 200 characters")
	}

	if len(problems) > 0 {
		return newValidationError(problems...)
	}
	return nil
}
