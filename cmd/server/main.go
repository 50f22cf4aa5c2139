package main

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"scentboard/internal/api"
	"scentboard/internal/config"
	"scentboard/internal/engine"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config error: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	// The API binds immediately; data routes answer 503 until the store
	// is published below.
	h := api.NewHandler(cfg)
	h.RegisterRoutes(e)

	go func() {
		t0 := time.Now()
		store, err := engine.Load(cfg.DatasetPath)
		if err != nil {
			sugar.Fatalf("dataset load failed: %v", err)
		}
		h.SetStore(store)
		sugar.Infow("dashboard ready", "rows", store.Len(), "elapsed", time.Since(t0))
	}()

	sugar.Infow("listening", "addr", cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil {
		sugar.Fatalf("server error: %v", err)
	}
}
