package app

import (
	"context"
	"fmt"
	"os"
	"time"

	appHTTP "github.com/Yamier22/motion-library/internal/http"
	"github.com/Yamier22/motion-library/internal/http/handlers"
	"github.com/Yamier22/motion-library/internal/observability"
	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/storage"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Store  *storage.Store
	Server *appHTTP.Server

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.Init(context.Background(), log, observability.Config{
		ServiceName: "motion-library",
		Environment: logMode,
		Version:     "1.0.0",
	})

	store, err := storage.New(log, cfg.ModelsDir, cfg.TrajectoriesDir, cfg.ThumbnailsDir)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	server := appHTTP.NewServer(appHTTP.RouterConfig{
		Log:               log,
		CORSOrigins:       cfg.CORSOrigins,
		HealthHandler:     handlers.NewHealthHandler(),
		ModelHandler:      handlers.NewModelHandler(log, store),
		TrajectoryHandler: handlers.NewTrajectoryHandler(log, store),
	})

	return &App{
		Log:          log,
		Cfg:          cfg,
		Store:        store,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := fmt.Sprintf("%s:%d", a.Cfg.Host, a.Cfg.Port)
	a.Log.Info("Starting server", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("Otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
