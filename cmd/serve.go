package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/valeriaulyamaeva/daily-reports/internal/config"
	"github.com/valeriaulyamaeva/daily-reports/internal/database"
	"github.com/valeriaulyamaeva/daily-reports/internal/routes"
	"github.com/valeriaulyamaeva/daily-reports/internal/snapshot"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// bootstrap loads configuration, builds the logger and opens the store.
func bootstrap(ctx context.Context) (config.Config, *zap.Logger, database.ReportStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := config.NewLogger(cfg)
	if err != nil {
		return cfg, nil, nil, err
	}

	store, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		log.Error("ошибка подключения к БД", zap.String("driver", cfg.Driver), zap.Error(err))
		_ = log.Sync()
		return cfg, nil, nil, err
	}
	log.Info("store connected", zap.String("driver", cfg.Driver))
	return cfg, log, store, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Warn("ошибка закрытия БД", zap.Error(err))
		}
	}()

	var scheduler *snapshot.Scheduler
	if cfg.Export.Schedule != "" {
		sink, err := snapshot.NewSink(ctx, cfg.Export)
		if err != nil {
			return err
		}
		scheduler, err = snapshot.Schedule(cfg.Export.Schedule, snapshot.NewExporter(store, sink, log), log)
		if err != nil {
			return err
		}
	}

	if cfg.Development() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.SetupRouter(store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}
