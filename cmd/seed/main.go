package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"joblit/internal/cache"
	"joblit/internal/config"
	"joblit/internal/db"
	"joblit/internal/logger"
	"joblit/internal/repository"
	"joblit/internal/service"
)

func main() {
	fixturePath := flag.String("fixture", "cmd/seed/fixture.yaml", "path to the YAML fixture")
	flag.Parse()

	cfg, err := config.FromEnvironment()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	file, err := os.Open(*fixturePath)
	if err != nil {
		log.Error("open fixture", "path", *fixturePath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	fixture, err := ParseFixture(file)
	if err != nil {
		log.Error("parse fixture", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Error("connect database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Error("migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	repos := repository.New(gormDB)
	accounts := service.NewAccountService(repos, cacheClient, log)
	jobs := service.NewJobService(repos, cacheClient, log)

	res, err := Seed(context.Background(), fixture, accounts, jobs, log)
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete",
		"users_created", res.UsersCreated,
		"users_skipped", res.UsersSkipped,
		"jobs_posted", res.JobsPosted,
	)
}
