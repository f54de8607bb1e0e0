package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/surveyops/surveyops-backend/api/controllers"
	"github.com/surveyops/surveyops-backend/api/middleware"
	"github.com/surveyops/surveyops-backend/internal/auth"
	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/pkg/config"
	"github.com/surveyops/surveyops-backend/pkg/db"
	"github.com/surveyops/surveyops-backend/pkg/enums"
	"github.com/surveyops/surveyops-backend/pkg/logger"
	"github.com/surveyops/surveyops-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	authService auth.Service,
	rolesService roles.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(authService, logg))
			r.Get("/me", controllers.AuthMe(authService, logg))
		})
	})

	r.Route("/api/v1/roles", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.With(middleware.RequireModuleAccess(rolesService, enums.ModuleRoles, enums.AccessLevelView, logg)).
			Get("/", controllers.RoleList(rolesService, logg))
		r.With(middleware.RequireModuleAccess(rolesService, enums.ModuleRoles, enums.AccessLevelFull, logg)).
			Post("/", controllers.RoleCreate(rolesService, logg))
		r.With(middleware.RequireModuleAccess(rolesService, enums.ModuleRoles, enums.AccessLevelView, logg)).
			Get("/{roleID}", controllers.RoleDetail(rolesService, logg))
		r.With(middleware.RequireModuleAccess(rolesService, enums.ModuleRoles, enums.AccessLevelEdit, logg)).
			Put("/{roleID}/module-access", controllers.RoleReplaceModuleAccess(rolesService, logg))
	})

	return r
}
