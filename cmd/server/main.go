package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/biblioteca/library-system/internal/api"
	"github.com/biblioteca/library-system/internal/core/service"
	"github.com/biblioteca/library-system/internal/infrastructure/config"
	"github.com/biblioteca/library-system/internal/infrastructure/db/postgres"
	redisdb "github.com/biblioteca/library-system/internal/infrastructure/db/redis"
	"github.com/biblioteca/library-system/internal/infrastructure/worker"
	"github.com/biblioteca/library-system/migrations"
	"github.com/biblioteca/library-system/pkg/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// @title           Library Management API
// @version         1.0
// @description     REST backend for managing a library catalog: users, authors, books and loans.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	printBuildInfo()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "library-system",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to postgres")
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatal().Err(err).Msg("running migrations")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer rdb.Close()

	codec, err := service.NewTokenCodec(cfg.JWT.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("building token codec")
	}

	sweeper := worker.NewOverdueSweeper(postgres.NewLoanRepository(db), time.Hour, log)
	sweeper.Start(ctx)

	e := api.NewRouter(api.RouterDeps{
		DB:       db,
		Redis:    rdb,
		Codec:    codec,
		TokenTTL: time.Duration(cfg.JWT.ExpirationMS) * time.Millisecond,
		Logger:   log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
