package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leadflowhq/leadflow-backend/api/controllers"
	"github.com/leadflowhq/leadflow-backend/api/docs"
	"github.com/leadflowhq/leadflow-backend/api/middleware"
	"github.com/leadflowhq/leadflow-backend/api/responses"
	"github.com/leadflowhq/leadflow-backend/internal/applications"
	"github.com/leadflowhq/leadflow-backend/internal/auth"
	"github.com/leadflowhq/leadflow-backend/pkg/config"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
	"github.com/leadflowhq/leadflow-backend/pkg/logger"
	"github.com/leadflowhq/leadflow-backend/pkg/metrics"
	"github.com/leadflowhq/leadflow-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	userResolver middleware.UserResolver,
	authService auth.Service,
	applicationsService applications.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// Without Redis the auth endpoints run unthrottled.
	authThrottle := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return middleware.AuthRateLimit(policy, nil, logg)
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Get("/health", controllers.Health())
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/api-docs", func(r chi.Router) {
		r.Get("/", docs.ViewerHandler())
		r.Get("/openapi.json", docs.SpecHandler())
	})

	r.Post("/api/applications", controllers.CreateApplication(applicationsService, logg))

	r.Route("/api/auth", func(r chi.Router) {
		r.With(authThrottle(registerPolicy)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(authThrottle(loginPolicy)).Post("/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, userResolver, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, userResolver, logg))
		r.Use(middleware.RequireRole(logg, enums.RoleAdmin, enums.RoleManager))
		r.Route("/applications", func(r chi.Router) {
			r.Get("/", controllers.ListApplications(applicationsService, logg))
			r.Get("/{id}", controllers.GetApplication(applicationsService, logg))
			r.Patch("/{id}", controllers.UpdateApplicationStatus(applicationsService, logg))
		})
		r.Get("/stats", controllers.GetStats(applicationsService, logg))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(
			pkgerrors.CodeNotFound,
			fmt.Sprintf("route %s not found", req.URL.Path),
		))
	})

	return r
}
