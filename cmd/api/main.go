package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/punchamoorthee/revenueops/internal/api"
	"github.com/punchamoorthee/revenueops/internal/config"
	"github.com/punchamoorthee/revenueops/internal/engine"
	"github.com/punchamoorthee/revenueops/internal/logging"
	"github.com/punchamoorthee/revenueops/internal/service"
	"github.com/punchamoorthee/revenueops/internal/store"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Layers
	eng := engine.New(engine.WithStrictConsistency(cfg.Strict))

	var scenarios api.Scenarios
	if cfg.DBSource != "" {
		db, err := store.NewStore(ctx, cfg.DBSource)
		if err != nil {
			logger.Fatal("unable to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		scenarios = service.NewScenarioService(db, eng)
	} else {
		logger.Info("DB_SOURCE not set, scenario routes disabled")
	}

	handler := api.NewHandler(eng, scenarios, logger)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.Bool("strict", cfg.Strict))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
