package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/surveyops/surveyops-backend/api/routes"
	"github.com/surveyops/surveyops-backend/internal/auth"
	"github.com/surveyops/surveyops-backend/internal/roles"
	"github.com/surveyops/surveyops-backend/internal/users"
	"github.com/surveyops/surveyops-backend/pkg/config"
	"github.com/surveyops/surveyops-backend/pkg/db"
	"github.com/surveyops/surveyops-backend/pkg/logger"
	"github.com/surveyops/surveyops-backend/pkg/migrate"
	"github.com/surveyops/surveyops-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	rolesService := roles.NewService(roles.ServiceParams{
		TxRunner:    dbClient,
		Repo:        roles.NewRepository(dbClient.DB()),
		RepoFactory: func(tx *gorm.DB) roles.Repo { return roles.NewRepository(tx) },
		Logger:      logg,
	})

	if cfg.FeatureFlags.SeedPredefinedRoles {
		if err := rolesService.SeedPredefined(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed predefined roles", err)
			os.Exit(1)
		}
	}

	authService := auth.NewService(auth.ServiceParams{
		TxRunner:        dbClient,
		Users:           users.NewRepository(dbClient.DB()),
		UserRepoFactory: func(tx *gorm.DB) auth.UserRepo { return users.NewRepository(tx) },
		RoleRepoFactory: func(tx *gorm.DB) roles.Repo { return roles.NewRepository(tx) },
		JWT:             cfg.JWT,
		Password:        cfg.Password,
		Logger:          logg,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, authService, rolesService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
