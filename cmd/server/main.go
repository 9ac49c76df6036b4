package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"joblit/docs"
	"joblit/internal/auth"
	"joblit/internal/cache"
	"joblit/internal/config"
	"joblit/internal/db"
	"joblit/internal/handler"
	"joblit/internal/logger"
	"joblit/internal/repository"
	"joblit/internal/router"
	"joblit/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Joblit API
// @version 1.0
// @description Job board API for job seekers and employers with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnvironment()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cacheClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr, "error", err)
	}

	repos := repository.New(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	accountService := service.NewAccountService(repos, cacheClient, log)
	jobService := service.NewJobService(repos, cacheClient, log)
	applicationService := service.NewApplicationService(repos, log)
	authService := service.NewAuthService(accountService, jwtService, tokenStore)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(authService, accountService),
		Account:     handler.NewAccountHandler(accountService),
		Job:         handler.NewJobHandler(jobService, applicationService),
		Application: handler.NewApplicationHandler(applicationService),
		Tokens:      authService,
		HealthChecks: []func(c echo.Context) error{
			func(c echo.Context) error { return sqlDB.PingContext(c.Request().Context()) },
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", "addr", addr, "swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
