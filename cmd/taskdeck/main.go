package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/api"
	"github.com/taskdeck/taskdeck/config"
	"github.com/taskdeck/taskdeck/flow"
	"github.com/taskdeck/taskdeck/internal/logger"
	"github.com/taskdeck/taskdeck/persistence"
	"github.com/taskdeck/taskdeck/session"
	"github.com/taskdeck/taskdeck/todo"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting Taskdeck",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.StoreType),
	)

	store, err := persistence.NewStorage(context.Background(), cfg.StoreType, cfg.DSN)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}

	sessions, err := session.NewJWTStrategy(cfg.JWTSecret, session.DefaultExpiry)
	if err != nil {
		logger.Log.Fatal("failed to initialize sessions", zap.Error(err))
	}

	hasher := flow.NewBcryptHasher(cfg.BcryptCost)
	generator := uuid.NewString

	h := api.NewHandler(
		flow.NewRegistrationManager(store, hasher, generator),
		flow.NewLoginManager(store, hasher),
		flow.NewRecoveryManager(store, hasher),
		todo.NewManager(store, generator),
		sessions,
		store,
		cfg.FrontendURL,
	)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h.RegisterRoutes(e)

	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server failed to start", zap.Error(err))
	}
}
