package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/contracts"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/picks"
	"github.com/daito-dot/AI-Pick-Daily-sub001/internal/pipeline"
	"github.com/daito-dot/AI-Pick-Daily-sub001/pkg/database"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Run the dual-strategy pipeline once",
	Long: `Runs the full pipeline over the symbol universe: fetch, score both
strategies, normalize, select, and print the pick lists. Persists the run
when a database is configured.

Example:
  go run ./cmd/aipick pick
  go run ./cmd/aipick pick --symbols AAPL,MSFT,GOOGL --timeout 5m`,
	RunE: runPick,
}

var (
	pickSymbols string
	pickTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(pickCmd)

	pickCmd.Flags().StringVar(&pickSymbols, "symbols", "", "comma-separated symbols (default: SYMBOLS env)")
	pickCmd.Flags().DurationVar(&pickTimeout, "timeout", 10*time.Minute, "overall run timeout")
}

func runPick(cmd *cobra.Command, args []string) error {
	application, err := bootstrap()
	if err != nil {
		return err
	}

	symbols := application.cfg.Symbols
	if pickSymbols != "" {
		symbols = splitSymbols(pickSymbols)
	}
	if len(symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), pickTimeout)
	defer cancel()

	result, err := application.orchestrator.Run(ctx, symbols, pipeline.RunOptions{
		Progress: func(symbol string, completed, total int) {
			fmt.Printf("  [%d/%d] %s\n", completed, total, symbol)
		},
	})
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	printResult(result)

	if application.cfg.Database.Enabled() {
		db, err := database.New(application.cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := picks.NewRepository(db.Pool).SaveRun(ctx, result); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		fmt.Println("\nRun persisted.")
	}

	return nil
}

// printResult renders one run for the terminal.
func printResult(result *contracts.DualScoringResult) {
	fmt.Printf("\nMarket: VIX %.1f (%s), cutoff %s\n",
		result.Market.VIX, result.Market.Regime, result.CutoffAt.Format("2006-01-02 15:04"))

	printStrategy("Momentum", result.MomentumScores, result.MomentumPicks, result.MomentumAIPicks)
	printStrategy("Conservative", result.ConservativeScores, result.ConservativePicks, result.ConservativeAIPicks)
}

func printStrategy(title string, scores []contracts.CompositeResult, picked, aiPicked []string) {
	fmt.Printf("\n=== %s ===\n", title)
	for _, s := range scores {
		marker := "  "
		if contains(picked, s.Symbol) {
			marker = "* "
		}
		fmt.Printf("%s%-6s composite %3d  percentile %3d  %s\n",
			marker, s.Symbol, s.Composite, s.Percentile, s.Explanation)
	}
	fmt.Printf("Picks: %s\n", strings.Join(picked, ", "))
	if len(aiPicked) > 0 {
		fmt.Printf("AI picks: %s\n", strings.Join(aiPicked, ", "))
	}
}

func splitSymbols(raw string) []string {
	var symbols []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			symbols = append(symbols, strings.ToUpper(part))
		}
	}
	return symbols
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
