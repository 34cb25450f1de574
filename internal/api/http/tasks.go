package http

import (
	"encoding/json"
	"net/http"

	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/pkg/httpx"
)

type TasksHandler struct {
	TasksService *service.TasksService
}

// HandleListByProject godoc
//
//	@Summary		List tasks in a project
//	@Description	Returns the tasks of an owned project. A foreign or unknown
//	@Description	project yields an empty list.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			projectId	path		string	true	"Project id"
//	@Success		200			{array}		TaskResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/api/v1/tasks/project/{projectId} [get].
func (h *TasksHandler) HandleListByProject(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	tvs, err := h.TasksService.ListByProject(r.Context(), r.PathValue("projectId"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponses(tvs))
}

// HandleGet godoc
//
//	@Summary		Get a task
//	@Description	Returns one task from an owned project. Tasks in other users' projects are a 404.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Task id"
//	@Success		200	{object}	TaskResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	tv, err := h.TasksService.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(tv))
}

// HandleCreate godoc
//
//	@Summary		Create a task
//	@Description	Creates a task in an owned project. Targeting another user's
//	@Description	project is a 404 with nothing written.
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateTaskRequest	true	"Task fields"
//	@Success		201		{object}	TaskResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tv, err := h.TasksService.Create(r.Context(), userID, req.ProjectID, req.Title, req.DueDate)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/tasks/"+tv.ID)
	httpx.WriteJSON(w, http.StatusCreated, taskResponse(tv))
}

// HandleUpdate godoc
//
//	@Summary		Update a task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Task id"
//	@Param			request	body		UpdateTaskRequest	true	"Task fields"
//	@Success		200		{object}	TaskResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/v1/tasks/{id} [put].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tv, err := h.TasksService.Update(r.Context(), r.PathValue("id"), userID, req.Title, req.DueDate, req.IsCompleted)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taskResponse(tv))
}

// HandleDelete godoc
//
//	@Summary		Delete a task
//	@Tags			Tasks
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Task id"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	deleted, err := h.TasksService.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !deleted {
		httpx.WriteMessage(w, http.StatusNotFound, "resource not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
