package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/config"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/database"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/logger"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/middleware"
	"github.com/MarcinProgramista/smart-inventory-ai-backend/internal/router"
)

func main() {
	_ = godotenv.Load()

	lg := logger.New()
	defer lg.Sync()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		lg.Fatalw("database open failed", "error", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		cancel()
		lg.Fatalw("migrations failed", "error", err)
	}
	cancel()

	// Missing Redis degrades gracefully: the auth routes simply run
	// without the rate limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		lg.Warnw("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(lg))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	router.Register(e, router.Deps{Cfg: cfg, DB: db, Redis: rdb, Log: lg})

	go func() {
		addr := ":" + cfg.Port
		lg.Infow("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			lg.Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("shutdown failed", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	lg.Infow("server stopped")
}
