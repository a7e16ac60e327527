package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dtroode/passkeeper/internal/api/http/router"
	httpServer "github.com/dtroode/passkeeper/internal/api/http/server"
	"github.com/dtroode/passkeeper/internal/config"
	"github.com/dtroode/passkeeper/internal/logger"
	"github.com/dtroode/passkeeper/internal/metrics"
	"github.com/dtroode/passkeeper/internal/model"
	"github.com/dtroode/passkeeper/internal/repository/postgres"
	"github.com/dtroode/passkeeper/internal/server"
	"github.com/dtroode/passkeeper/internal/service"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	conn, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.MaxConnections)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer conn.Close()

	appMetrics := metrics.New()

	recordRepo := postgres.NewRecordRepository(conn.DB())
	recordService := service.NewRecord(
		recordRepo,
		service.Pagination{
			DefaultSize: cfg.Pagination.DefaultSize,
			MaxSize:     cfg.Pagination.MaxSize,
		},
		appMetrics,
		logger.With("component", "record_service"),
	)

	r := router.New(recordService, appMetrics, logger, router.Options{
		Version:        buildVersion,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})
	srv := httpServer.NewHTTPServer(r.Register(ctx), cfg.HTTP.Address())
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
