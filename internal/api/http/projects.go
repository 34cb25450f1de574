package http

import (
	"encoding/json"
	"net/http"

	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/pkg/httpx"
)

type ProjectsHandler struct {
	ProjectsService *service.ProjectsService
}

// HandleList godoc
//
//	@Summary		List projects
//	@Description	Returns every project owned by the authenticated user, oldest first.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		ProjectResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/v1/projects [get].
func (h *ProjectsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	pvs, err := h.ProjectsService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectResponses(pvs))
}

// HandleGet godoc
//
//	@Summary		Get a project
//	@Description	Returns one owned project. A project owned by someone else is a 404.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Project id"
//	@Success		200	{object}	ProjectResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/v1/projects/{id} [get].
func (h *ProjectsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	pv, err := h.ProjectsService.Get(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectResponse(pv))
}

// HandleCreate godoc
//
//	@Summary		Create a project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ProjectRequest	true	"Project fields"
//	@Success		201		{object}	ProjectResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/v1/projects [post].
func (h *ProjectsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	pv, err := h.ProjectsService.Create(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/projects/"+pv.ID)
	httpx.WriteJSON(w, http.StatusCreated, projectResponse(pv))
}

// HandleUpdate godoc
//
//	@Summary		Update a project
//	@Tags			Projects
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Project id"
//	@Param			request	body		ProjectRequest	true	"Project fields"
//	@Success		200		{object}	ProjectResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/v1/projects/{id} [put].
func (h *ProjectsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	pv, err := h.ProjectsService.Update(r.Context(), r.PathValue("id"), userID, req.Title, req.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, projectResponse(pv))
}

// HandleDelete godoc
//
//	@Summary		Delete a project
//	@Description	Deletes an owned project and all of its tasks.
//	@Tags			Projects
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Project id"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/v1/projects/{id} [delete].
func (h *ProjectsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	deleted, err := h.ProjectsService.Delete(r.Context(), r.PathValue("id"), userID)
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
