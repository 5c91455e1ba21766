package jobs

import (
	"context"
	"fmt"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/picks"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/pipeline"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/logger"
)

// DailyPickJob runs the dual scoring pipeline after the close and persists
// the result.
type DailyPickJob struct {
	orchestrator *pipeline.Orchestrator
	repo         *picks.Repository // nil skips persistence
	symbols      []string
	schedule     string
	logger       *logger.Logger
}

// NewDailyPickJob creates the job. An empty schedule defaults to 16:30
// local on weekdays.
func NewDailyPickJob(orchestrator *pipeline.Orchestrator, repo *picks.Repository, symbols []string, schedule string, log *logger.Logger) *DailyPickJob {
	if schedule == "" {
		schedule = "0 30 16 * * 1-5"
	}
	return &DailyPickJob{
		orchestrator: orchestrator,
		repo:         repo,
		symbols:      symbols,
		schedule:     schedule,
		logger:       log.WithField("job", "daily_pick"),
	}
}

func (j *DailyPickJob) Name() string { return "daily_pick" }

func (j *DailyPickJob) Schedule() string { return j.schedule }

// Run executes one full pipeline pass over the configured universe.
func (j *DailyPickJob) Run(ctx context.Context) error {
	if len(j.symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}

	result, err := j.orchestrator.Run(ctx, j.symbols, pipeline.RunOptions{})
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	if j.repo != nil {
		if err := j.repo.SaveRun(ctx, result); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"momentum_picks":     len(result.MomentumPicks),
		"conservative_picks": len(result.ConservativePicks),
		"regime":             result.Market.Regime,
	}).Info("Daily pick run persisted")

	return nil
}
