package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/picks"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scheduler"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/scheduler/jobs"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/database"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the daily pick scheduler",
	Long: `Starts the cron scheduler with the daily pick job. The job runs the
full pipeline after the close on weekdays and persists the result.

Example:
  go run ./cmd/aipick scheduler
  PICK_SCHEDULE="0 0 17 * * 1-5" go run ./cmd/aipick scheduler`,
	RunE: runScheduler,
}

var runNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&runNow, "run-now", false, "run the daily pick job immediately on start")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	application, err := bootstrap()
	if err != nil {
		return err
	}

	var repo *picks.Repository
	if application.cfg.Database.Enabled() {
		db, err := database.New(application.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		repo = picks.NewRepository(db.Pool)
	} else {
		application.log.Warn("No database configured, runs will not be persisted")
	}

	sched := scheduler.New(application.log)

	job := jobs.NewDailyPickJob(application.orchestrator, repo, application.cfg.Symbols, application.cfg.PickSchedule, application.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if runNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	application.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	return nil
}
