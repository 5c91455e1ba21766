package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/api"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/api/handlers"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/picks"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/database"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP server.

Endpoints:
  GET  /health                  - Health check
  GET  /api/v1/picks/latest     - Latest persisted run
  GET  /api/v1/picks/history    - Trailing pick lists per strategy
  GET  /api/v1/scores/{strategy}- Latest scored cohort
  POST /api/v1/run              - Trigger a pipeline run
  WS   /ws/progress             - Live batch progress

Example:
  go run ./cmd/aipick api
  go run ./cmd/aipick api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	application, err := bootstrap()
	if err != nil {
		return err
	}
	if apiPort != "" {
		application.cfg.Port = apiPort
	}

	var repo *picks.Repository
	if application.cfg.Database.Enabled() {
		db, err := database.New(application.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		repo = picks.NewRepository(db.Pool)
		application.log.Info("Connected to database")
	} else {
		application.log.Warn("No database configured, read endpoints disabled")
	}

	hub := handlers.NewProgressHub(application.log)
	picksHandler := handlers.NewPicksHandler(repo, application.orchestrator, hub, application.cfg.Symbols, application.log)
	router := api.NewRouter(picksHandler, hub, application.log)
	server := api.New(application.cfg, application.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		application.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
