package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
	"github.com/quollsoft/projecthub/pkg/idx"
	"github.com/quollsoft/projecthub/pkg/slogx"
)

const (
	projectTitleMinLen = 3
	projectTitleMaxLen = 100
	descriptionMaxLen  = 500
)

// ProjectsService is the authorization-scoped surface for projects. Every
// method takes the requesting user's id and never returns, mutates or
// acknowledges a project that user does not own.
type ProjectsService struct {
	Store store.Store
}

// List returns the caller's projects, oldest first.
func (s *ProjectsService) List(ctx context.Context, userID string) ([]domain.ProjectView, error) {
	return s.Store.Projects().ListByOwner(ctx, userID)
}

// Get returns a single owned project, or ErrAccessDenied.
func (s *ProjectsService) Get(ctx context.Context, projectID, userID string) (domain.ProjectView, error) {
	pv, err := s.Store.Projects().GetByID(ctx, projectID, userID)
	if err != nil {
		return domain.ProjectView{}, mapAccess(err)
	}
	return pv, nil
}

// Create validates and persists a new project owned by userID.
func (s *ProjectsService) Create(ctx context.Context, userID, title, description string) (domain.ProjectView, error) {
	l := slogx.FromContext(ctx)

	title = strings.TrimSpace(title)
	if verr := validateProjectFields(title, description); verr != nil {
		return domain.ProjectView{}, verr
	}

	p := domain.Project{
		ID:          idx.New().String(),
		Title:       title,
		Description: description,
		OwnerID:     userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Projects().CreateProject(ctx, p); err != nil {
		return domain.ProjectView{}, fmt.Errorf("create project: %w", err)
	}

	l.Info("project created", "project_id", p.ID, "user_id", userID)

	return s.Get(ctx, p.ID, userID)
}

// Update rewrites title and description; the ownership check rides in the
// UPDATE predicate itself.
func (s *ProjectsService) Update(ctx context.Context, projectID, userID, title, description string) (domain.ProjectView, error) {
	title = strings.TrimSpace(title)
	if verr := validateProjectFields(title, description); verr != nil {
		return domain.ProjectView{}, verr
	}

	if err := s.Store.Projects().UpdateProject(ctx, projectID, userID, title, description); err != nil {
		return domain.ProjectView{}, mapAccess(err)
	}
	return s.Get(ctx, projectID, userID)
}

// Delete removes an owned project and, through the schema cascade, its
// tasks. Reports whether anything was deleted; a repeat call is a clean
// false, never an error.
func (s *ProjectsService) Delete(ctx context.Context, projectID, userID string) (bool, error) {
	l := slogx.FromContext(ctx)

	deleted, err := s.Store.Projects().DeleteProject(ctx, projectID, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		l.Info("project deleted", "project_id", projectID, "user_id", userID)
	}
	return deleted, nil
}

func validateProjectFields(title, description string) *ValidationError {
	var problems []string

	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		problems = append(problems, "title is required")
	case n < projectTitleMinLen:
		problems = append(problems, "title must be at least 3 characters")
	case n > projectTitleMaxLen:
		problems = append(problems, "title must be at most 100 characters")
	}

	if utf8.RuneCountInString(description) > descriptionMaxLen {
		problems = append(problems, "description must be at most 500 characters")
	}

	if len(problems) > 0 {
		return newValidationError(problems...)
	}
	return nil
}
