package picks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
)

// ErrNotFound marks an empty picks table or an unknown run date.
var ErrNotFound = errors.New("picks: not found")

// Repository persists dual scoring runs. One row per run date, per-strategy
// score details as JSONB, pick lists as text arrays.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a picks repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveRun upserts one run keyed by its cutoff date. Re-running a day
// replaces that day's row.
func (r *Repository) SaveRun(ctx context.Context, result *contracts.DualScoringResult) error {
	momentumJSON, err := json.Marshal(result.MomentumScores)
	if err != nil {
		return fmt.Errorf("marshal momentum scores: %w", err)
	}
	conservativeJSON, err := json.Marshal(result.ConservativeScores)
	if err != nil {
		return fmt.Errorf("marshal conservative scores: %w", err)
	}

	query := `
		INSERT INTO picks.daily_runs (
			run_date, cutoff_at, vix, regime,
			momentum_scores, conservative_scores,
			momentum_picks, conservative_picks,
			momentum_ai_picks, conservative_ai_picks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_date) DO UPDATE SET
			cutoff_at = EXCLUDED.cutoff_at,
			vix = EXCLUDED.vix,
			regime = EXCLUDED.regime,
			momentum_scores = EXCLUDED.momentum_scores,
			conservative_scores = EXCLUDED.conservative_scores,
			momentum_picks = EXCLUDED.momentum_picks,
			conservative_picks = EXCLUDED.conservative_picks,
			momentum_ai_picks = EXCLUDED.momentum_ai_picks,
			conservative_ai_picks = EXCLUDED.conservative_ai_picks,
			created_at = NOW()
	`

	_, err = r.pool.Exec(ctx, query,
		result.CutoffAt.Truncate(24*time.Hour), result.CutoffAt,
		result.Market.VIX, result.Market.Regime,
		momentumJSON, conservativeJSON,
		result.MomentumPicks, result.ConservativePicks,
		result.MomentumAIPicks, result.ConservativeAIPicks,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	return nil
}

// LatestRun returns the most recent persisted run.
func (r *Repository) LatestRun(ctx context.Context) (*contracts.DualScoringResult, error) {
	query := `
		SELECT cutoff_at, vix, regime,
		       momentum_scores, conservative_scores,
		       momentum_picks, conservative_picks,
		       momentum_ai_picks, conservative_ai_picks
		FROM picks.daily_runs
		ORDER BY run_date DESC
		LIMIT 1
	`

	var (
		result           contracts.DualScoringResult
		momentumJSON     []byte
		conservativeJSON []byte
	)

	err := r.pool.QueryRow(ctx, query).Scan(
		&result.CutoffAt, &result.Market.VIX, &result.Market.Regime,
		&momentumJSON, &conservativeJSON,
		&result.MomentumPicks, &result.ConservativePicks,
		&result.MomentumAIPicks, &result.ConservativeAIPicks,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest run: %w", err)
	}

	if err := json.Unmarshal(momentumJSON, &result.MomentumScores); err != nil {
		return nil, fmt.Errorf("decode momentum scores: %w", err)
	}
	if err := json.Unmarshal(conservativeJSON, &result.ConservativeScores); err != nil {
		return nil, fmt.Errorf("decode conservative scores: %w", err)
	}
	result.Market.AsOf = result.CutoffAt

	return &result, nil
}

// PickHistory returns the pick lists for the trailing n run dates, newest
// first.
func (r *Repository) PickHistory(ctx context.Context, strategy contracts.Strategy, n int) (map[time.Time][]string, error) {
	column := "momentum_picks"
	if strategy == contracts.StrategyConservative {
		column = "conservative_picks"
	}

	query := fmt.Sprintf(`
		SELECT run_date, %s
		FROM picks.daily_runs
		ORDER BY run_date DESC
		LIMIT $1
	`, column)

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("load pick history: %w", err)
	}
	defer rows.Close()

	history := make(map[time.Time][]string)
	for rows.Next() {
		var date time.Time
		var symbols []string
		if err := rows.Scan(&date, &symbols); err != nil {
			return nil, fmt.Errorf("scan pick history: %w", err)
		}
		history[date] = symbols
	}

	return history, rows.Err()
}
