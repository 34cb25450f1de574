package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/internal/api/store/drivers/sqlite"
	"github.com/quollsoft/projecthub/pkg/cryptox"
	"github.com/quollsoft/projecthub/pkg/jwtx"
	"github.com/quollsoft/projecthub/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewEphemeralSigner()
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	issuer := "projecthub-test"
	aud := []string{"projecthub"}
	verifier := jwtx.NewVerifierEdDSA(keys, issuer, aud)

	logger := slogx.New(slogx.Config{
		Service: "projecthub-api",
		Version: "test",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := NewRouter(keys, verifier, "test", st, logger)
	router.AuthService = &service.AuthService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   issuer,
		Audience: aud,
		TokenTTL: time.Minute,
	}
	router.ProjectsService = &service.ProjectsService{Store: st}
	router.TasksService = &service.TasksService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T, srv *httptest.Server, first, last, email string) string {
	t.Helper()

	var tok TokenResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  "s3cret-pass",
	}, &tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

func TestEndToEndFlow(t *testing.T) {
	srv := newTestServer(t)

	alice := registerUser(t, srv, "Alice", "Nguyen", "alice@example.com")

	t.Run("login returns a working token", func(t *testing.T) {
		var tok TokenResponse
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		}, &tok)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var val ValidateResponse
		resp = doJSON(t, srv, http.MethodPost, "/api/v1/auth/validate", "", ValidateRequest{Token: tok.Token}, &val)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, val.IsValid)
	})

	var project ProjectResponse
	t.Run("create project", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/projects", alice, ProjectRequest{
			Title:       "Travel Plans",
			Description: "autumn trip",
		}, &project)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "/api/v1/projects/"+project.ID, resp.Header.Get("Location"))
		require.Equal(t, "Alice Nguyen", project.OwnerName)
		require.Zero(t, project.TaskCount)
	})

	var task TaskResponse
	t.Run("create task", func(t *testing.T) {
		due := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/tasks", alice, CreateTaskRequest{
			Title:     "Book flight",
			DueDate:   &due,
			ProjectID: project.ID,
		}, &task)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.Equal(t, "/api/v1/tasks/"+task.ID, resp.Header.Get("Location"))
		require.Equal(t, "Travel Plans", task.ProjectTitle)
		require.False(t, task.IsCompleted)
	})

	t.Run("list tasks shows exactly the new task", func(t *testing.T) {
		var tasks []TaskResponse
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/tasks/project/"+project.ID, alice, nil, &tasks)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, tasks, 1)
		require.Equal(t, "Book flight", tasks[0].Title)
		require.False(t, tasks[0].IsCompleted)
	})

	t.Run("project task count reflects the task", func(t *testing.T) {
		var got ProjectResponse
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/projects/"+project.ID, alice, nil, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, 1, got.TaskCount)
	})

	t.Run("complete the task", func(t *testing.T) {
		var got TaskResponse
		resp := doJSON(t, srv, http.MethodPut, "/api/v1/tasks/"+task.ID, alice, UpdateTaskRequest{
			Title:       "Book flight",
			IsCompleted: true,
		}, &got)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, got.IsCompleted)
		require.Nil(t, got.DueDate)
	})

	t.Run("delete task then project", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodDelete, "/api/v1/tasks/"+task.ID, alice, nil, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodDelete, "/api/v1/projects/"+project.ID, alice, nil, nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		// repeat deletes are 404s
		resp = doJSON(t, srv, http.MethodDelete, "/api/v1/projects/"+project.ID, alice, nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCrossTenantIsolationOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	alice := registerUser(t, srv, "Alice", "Nguyen", "alice@example.com")
	bob := registerUser(t, srv, "Bob", "Reyes", "bob@example.com")

	var project ProjectResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/v1/projects", alice, ProjectRequest{Title: "Mine"}, &project)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("foreign project reads as 404 on every verb", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/projects/"+project.ID, bob, nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodPut, "/api/v1/projects/"+project.ID, bob, ProjectRequest{Title: "Hijacked"}, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = doJSON(t, srv, http.MethodDelete, "/api/v1/projects/"+project.ID, bob, nil, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("task creation against a foreign project is a 404", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/tasks", bob, CreateTaskRequest{
			Title:     "Sneaky",
			ProjectID: project.ID,
		}, nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		// no side effect visible to the owner
		var tasks []TaskResponse
		resp = doJSON(t, srv, http.MethodGet, "/api/v1/tasks/project/"+project.ID, alice, nil, &tasks)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, tasks)
	})

	t.Run("foreign project lists as empty", func(t *testing.T) {
		var projects []ProjectResponse
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/projects", bob, nil, &projects)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Empty(t, projects)
	})
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/projects", "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodGet, "/api/v1/projects", "not-a-jwt", nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAuthEndpointFailures(t *testing.T) {
	srv := newTestServer(t)

	registerUser(t, srv, "Alice", "Nguyen", "alice@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		var errResp ErrorResponse
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
			FirstName: "Alice",
			LastName:  "Again",
			Email:     "alice@example.com",
			Password:  "another-pass",
		}, &errResp)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.NotEmpty(t, errResp.Message)
	})

	t.Run("bad credentials", func(t *testing.T) {
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation problems are spelled out", func(t *testing.T) {
		var errResp ErrorResponse
		resp := doJSON(t, srv, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
			Email:    "not-an-email",
			Password: "short",
		}, &errResp)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Contains(t, errResp.Message, "first name is required")
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	var live HealthResponse
	resp := doJSON(t, srv, http.MethodGet, "/livez", "", nil, &live)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", live.Status)

	var ready HealthResponse
	resp = doJSON(t, srv, http.MethodGet, "/readyz", "", nil, &ready)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)
}
