package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "farmwatch/docs"
	"farmwatch/internal/alerts"
	"farmwatch/internal/config"
	"farmwatch/internal/handlers"
	"farmwatch/internal/logger"
	"farmwatch/internal/notify"
	"farmwatch/internal/oracle"
	"farmwatch/internal/policy"
	"farmwatch/internal/repository"
	"farmwatch/internal/repository/db"
	"farmwatch/internal/server"
	"farmwatch/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title           Farmwatch API
// @version         1.0
// @description     Decision and alert-dispatch engine for environmental sensor readings.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		// Config errors predate the logger's level setting; a bare logger
		// at info is good enough to die loudly.
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := buildServices(ctx, cfg, sqlDB, log)
	if err != nil {
		log.Fatalw("failed to wire services", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log)

	if cfg.Simulator.Enabled {
		log.Infow("starting reading simulator", "tick", cfg.Simulator.Tick)
		go services.Simulator.Run(ctx, cfg.Simulator.Tick)
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("farmwatch started", "port", cfg.Port, "sms_enabled", cfg.SMS.Enabled)

	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "farmwatch.db")
		path = "farmwatch.db"
	}
	return db.Init(path)
}

// buildServices wires the full dependency graph: repositories, oracle
// adapter, optional SMS dispatcher, and the composed service layer.
func buildServices(ctx context.Context, cfg *config.Config, sqlDB *sql.DB, log *logger.Logger) (*service.Service, error) {
	repos := repository.NewRepository(sqlDB)
	rules := policy.New(cfg.Thresholds)
	adapter := oracle.NewAdapter(oracle.NewGeminiClient(cfg.Gemini), rules, log)

	var dispatcher *alerts.Dispatcher
	if cfg.SMS.Enabled {
		var err error
		dispatcher, err = alerts.NewDispatcher(
			ctx,
			repos.AlertState,
			notify.NewATClient(cfg.SMS),
			cfg.Thresholds,
			cfg.SMS,
			log,
		)
		if err != nil {
			return nil, err
		}
	} else {
		log.Infow("sms alerting disabled; decisions will not page anyone")
	}

	return service.NewService(service.Deps{
		Repos:      repos,
		Adapter:    adapter,
		Dispatcher: dispatcher,
		Config:     cfg,
		Log:        log,
	}), nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
