package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/pkg/httpx"
	"github.com/quollsoft/projecthub/pkg/slogx"
)

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ValidateRequest struct {
	Token string `json:"token"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ValidateResponse struct {
	IsValid bool `json:"isValid"`
}

type ProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	CreatedAt   time.Time `json:"createdAt"`
	TaskCount   int       `json:"taskCount"`
}

type CreateTaskRequest struct {
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"dueDate"`
	ProjectID string     `json:"projectId"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted bool       `json:"isCompleted"`
}

type TaskResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DueDate      *time.Time `json:"dueDate"`
	IsCompleted  bool       `json:"isCompleted"`
	ProjectID    string     `json:"projectId"`
	ProjectTitle string     `json:"projectTitle"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ErrorResponse is the single error shape for the whole API.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

func projectResponse(pv domain.ProjectView) ProjectResponse {
	return ProjectResponse{
		ID:          pv.ID,
		Title:       pv.Title,
		Description: pv.Description,
		OwnerID:     pv.OwnerID,
		OwnerName:   pv.OwnerName,
		CreatedAt:   pv.CreatedAt,
		TaskCount:   pv.TaskCount,
	}
}

func projectResponses(pvs []domain.ProjectView) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(pvs))
	for _, pv := range pvs {
		out = append(out, projectResponse(pv))
	}
	return out
}

func taskResponse(tv domain.TaskView) TaskResponse {
	return TaskResponse{
		ID:           tv.ID,
		Title:        tv.Title,
		DueDate:      tv.DueDate,
		IsCompleted:  tv.Completed,
		ProjectID:    tv.ProjectID,
		ProjectTitle: tv.ProjectTitle,
		CreatedAt:    tv.CreatedAt,
	}
}

func taskResponses(tvs []domain.TaskView) []TaskResponse {
	out := make([]TaskResponse, 0, len(tvs))
	for _, tv := range tvs {
		out = append(out, taskResponse(tv))
	}
	return out
}

// writeServiceError maps a service failure onto the API's status scheme.
// The merged not-found/not-owned outcome is always a plain 404 so callers
// cannot probe for the existence of other tenants' resources.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrAccessDenied):
		httpx.WriteMessage(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteMessage(w, http.StatusBadRequest, "user with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteMessage(w, http.StatusBadRequest, "invalid email or password")
	default:
		// detail goes to the log only
		log.Error("request failed", "err", err)
		httpx.WriteMessage(w, http.StatusBadRequest, "request could not be processed")
	}
}
