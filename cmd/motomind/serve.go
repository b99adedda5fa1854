package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"motomind/internal/common/config"
	"motomind/internal/common/database"
	"motomind/internal/common/logger"
	"motomind/internal/common/observability"
	"motomind/internal/govcheck"
	"motomind/internal/pipeline"
	"motomind/internal/server"
	"motomind/internal/store"
)

var (
	servePort  int
	configPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation API server",
	Long:  `Start the HTTP API on the configured port and the Prometheus metrics endpoint on the metrics port.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	var outputs []string
	if cfg.Logging.Output != "" {
		outputs = append(outputs, cfg.Logging.Output)
	}
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, outputs...)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"env":     cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLog.Info("Starting MotoMind", zap.String("version", version), zap.Int("port", cfg.Server.Port))

	obs := observability.New(cfg.App.Name)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(shutdownCtx)
	}()

	// --- PostgreSQL with retry ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	if err := retryWithBackoff(ctx, pg.Ping, 15, 2*time.Second, zapLog, "PostgreSQL connection"); err != nil {
		return err
	}
	zapLog.Info("PostgreSQL connected successfully")

	readiness := map[string]server.Pinger{"postgres": pg}
	deps := server.Deps{
		Recommender: pipeline.New(cfg.Recommendation,
			store.NewPostgresListingStore(pg.DB, log),
			log,
			pipeline.WithObservability(obs),
		),
		Readiness: readiness,
	}

	// --- Redis (gov records) with retry ---
	if cfg.GovCheck.Enabled {
		rdb := database.NewRedis(cfg.Database.Redis)
		defer rdb.Close()
		if err := retryWithBackoff(ctx, rdb.Ping, 10, 2*time.Second, zapLog, "Redis connection"); err != nil {
			return err
		}
		zapLog.Info("Redis connected successfully")

		readiness["redis"] = rdb
		deps.GovCheck = govcheck.NewHandler(govcheck.LoadConfig(cfg.GovCheck), rdb.Client, log)
	}

	api := server.New(cfg.Server, deps, log)
	metricsSrv := server.NewMetricsServer(cfg.Server)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(gCtx)
	})
	g.Go(func() error {
		return server.RunMetrics(gCtx, metricsSrv, config.GetDuration(cfg.Server.ShutdownTimeout), log)
	})

	if err := g.Wait(); err != nil {
		zapLog.Error("server stopped with error", zap.Error(err))
		return err
	}
	zapLog.Info("MotoMind stopped")
	return nil
}
