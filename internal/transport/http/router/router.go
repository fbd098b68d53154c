package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health   HealthHandler
	Accounts AccountHandler

	// Metrics serves /metrics; nil means promhttp.Handler().
	Metrics http.Handler

	// APIPrefix mounts the account routes; "" means DefaultAPIPrefix.
	// Use "/" to serve them at the root.
	APIPrefix    string
	MaxBodyBytes int64

	// HSTS adds Strict-Transport-Security; set outside dev.
	HSTS bool
	// CORSOrigins lists browser origins allowed to call the API; empty disables CORS.
	CORSOrigins []string
}

const DefaultAPIPrefix = "/api/auth"

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Accounts == nil {
		return nil, fmt.Errorf("nil Accounts handler")
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders(deps.HSTS))
	r.Use(middleware.CORS(deps.CORSOrigins))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", metrics)

	prefix := deps.APIPrefix
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}

	// health checks and /metrics stay at the root for the orchestrator and scraper
	r.Route(prefix, func(r chi.Router) {
		r.Use(middleware.BodyLimit(deps.MaxBodyBytes))

		r.Post("/register", deps.Accounts.Register)
		r.Post("/login", deps.Accounts.Login)
		r.Get("/users", deps.Accounts.ListUsers)
		r.Delete("/user/{id}", deps.Accounts.DeleteUser)
	})

	return r, nil
}
