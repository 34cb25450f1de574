package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quollsoft/projecthub/internal/api/service"
	"github.com/quollsoft/projecthub/internal/api/store"
	"github.com/quollsoft/projecthub/pkg/httpx"
	"github.com/quollsoft/projecthub/pkg/jwtx"
	"github.com/quollsoft/projecthub/pkg/slogx"

	_ "github.com/quollsoft/projecthub/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	ProjectsService *service.ProjectsService
	TasksService    *service.TasksService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProjects()
	r.registerTasks()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ProjectHub API
//	@version		0.1.0
//	@description	Multi-tenant project and task management API. Every project
//	@description	and task is scoped to the authenticated owner; resources
//	@description	belonging to other users are indistinguishable from missing ones.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT identity token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints get the strict IP limit to slow brute force
	r.Mux.Handle("POST /api/v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/v1/auth/validate",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProjects() {
	h := &ProjectsHandler{ProjectsService: r.ProjectsService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/projects", secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/projects", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/projects/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/projects/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/projects/{id}", secured(h.HandleDelete))
}

func (r *Router) registerTasks() {
	h := &TasksHandler{TasksService: r.TasksService}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/tasks/project/{projectId}", secured(h.HandleListByProject))
	r.Mux.Handle("POST /api/v1/tasks", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/tasks/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/tasks/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/tasks/{id}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
