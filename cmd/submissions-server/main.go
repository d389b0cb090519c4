// Package main provides the submission backend server entry point. It
// hosts the public form endpoints and the admin API in a single process.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/clavisnova/submissions/pkg/config"
	"github.com/clavisnova/submissions/pkg/export"
	"github.com/clavisnova/submissions/pkg/gateway"
	"github.com/clavisnova/submissions/pkg/query"
	"github.com/clavisnova/submissions/pkg/server"
	"github.com/clavisnova/submissions/pkg/store"
	"github.com/clavisnova/submissions/pkg/syslog"
)

func main() {
	var (
		listenAddr   string
		configPath   string
		databaseType string
		databaseDSN  string
	)

	flag.StringVar(&listenAddr, "listen", "", "Address to listen on")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&databaseType, "db-type", "", "Database type (sqlite, postgres, or mysql)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string")
	flag.Parse()

	_ = flag.Set("logtostderr", "true")

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		glog.Fatalf("Failed to load config: %v", err)
	}

	// Flags override file and environment settings.
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	if databaseType != "" {
		cfg.DatabaseType = databaseType
	}
	if databaseDSN != "" {
		cfg.DatabaseDSN = databaseDSN
	}

	logger.Info("starting submissions server",
		"listen", cfg.Listen,
		"database", cfg.DatabaseType,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := store.Open(cfg.DatabaseType, cfg.DatabaseDSN)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}

	local := store.NewLocalStore(db)
	remote := store.NewRemoteStore(cfg.RemoteURL, cfg.RemoteServiceRole)
	sink := syslog.NewSink(local, logger)
	gw := gateway.New(local, remote, cfg.RemoteCreates, sink, logger)
	querySvc := query.NewService(local)
	exporter := export.NewExporter(local, logger)

	retention := syslog.NewRetentionWorker(sink, cfg.LogRetain, logger)
	go retention.Run(ctx)

	router := server.NewRouter(server.Deps{
		Gateway:     gw,
		Query:       querySvc,
		Store:       local,
		Exporter:    exporter,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("HTTP server error: %v", err)
		}
	}()

	logger.Info("submissions server ready", "listen", cfg.Listen, "remote_creates", cfg.RemoteCreates())

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("submissions server stopped")
}
