package http

import (
	"encoding/json"
	"net/http"

	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user account and returns a signed identity token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"Registration details"
//	@Success		200		{object}	TokenResponse
//	@Failure		400		{object}	ErrorResponse	"Validation failure or duplicate email"
//	@Router			/api/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := h.AuthService.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a signed identity token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	TokenResponse
//	@Failure		400		{object}	ErrorResponse	"Invalid credentials"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// HandleValidate godoc
//
//	@Summary		Validate a token
//	@Description	Reports whether the supplied token is currently valid. Never explains why.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ValidateRequest	true	"Token to check"
//	@Success		200		{object}	ValidateResponse
//	@Router			/api/v1/auth/validate [post].
func (h *AuthHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	valid := h.AuthService.Validate(r.Context(), req.Token)

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, ValidateResponse{IsValid: valid})
}
